package tui

import (
	"fmt"
	"strings"

	"codeberg.org/llamaquill/quill/internal/blog"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🪶 LlamaQuill · Blog Generator"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("audience-tuned blog posts from a local model"))
	b.WriteString("\n")

	b.WriteString(m.label(fieldTopic, "Blog topic"))
	b.WriteString("\n")
	b.WriteString(m.topic.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldWordCount, "Desired word count"))
	b.WriteString("\n")
	b.WriteString(m.wordCount.View())
	b.WriteString("\n\n")

	b.WriteString(m.selector(fieldAudience, "Target audience", string(blog.Audiences[m.audience])))
	b.WriteString("\n")

	b.WriteString(m.advancedView())

	b.WriteString("\n")
	if m.focus == fieldGenerate {
		b.WriteString(buttonFocusedStyle.Render("Generate Blog"))
	} else {
		b.WriteString(buttonStyle.Render("Generate Blog"))
	}
	b.WriteString("\n")

	b.WriteString(m.statusView())

	b.WriteString(helpStyle.Render("[Tab: Next] [←/→: Change] [Ctrl+A: Advanced] [Ctrl+G: Generate] [PgUp/PgDn: Scroll] [Ctrl+C: Exit]"))

	return b.String()
}

func (m *Model) label(f field, text string) string {
	if m.focus == f {
		return labelFocusedStyle.Render("▸ " + text)
	}

	return labelStyle.Render("  " + text)
}

func (m *Model) selector(f field, text, value string) string {
	return fmt.Sprintf("%s  %s", m.label(f, fmt.Sprintf("%-20s", text)), valueStyle.Render("‹ "+value+" ›"))
}

func (m *Model) advancedView() string {
	if !m.advanced {
		return sectionStyle.Render("▸ Advanced (ctrl+a)") + "\n"
	}

	model := ""
	if len(m.models) > 0 {
		model = m.models[m.model]
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("▾ Advanced (ctrl+a)"))
	b.WriteString("\n")
	b.WriteString(m.selector(fieldModel, "Model", model))
	b.WriteString("\n")
	b.WriteString(m.selector(fieldTemperature, "Temperature", fmt.Sprintf("%.2f", m.temperature)))
	b.WriteString("\n")
	b.WriteString(m.selector(fieldTopP, "top_p", fmt.Sprintf("%.2f", m.topP)))
	b.WriteString("\n")
	b.WriteString(m.selector(fieldMaxTokens, "Max tokens", fmt.Sprintf("%d", m.maxTokens)))
	b.WriteString("\n")
	b.WriteString(m.label(fieldEndpoint, "Endpoint"))
	b.WriteString("\n")
	b.WriteString(m.endpoint.View())
	b.WriteString("\n")

	return b.String()
}

// the area under the button: inline validation error, spinner or outcome
func (m *Model) statusView() string {
	var b strings.Builder

	if err := m.cycle.ValidationErr(); err != nil {
		b.WriteString(invalidStyle.Render("⚠ " + err.Error()))
		b.WriteString("\n")
	}

	switch m.cycle.State() {
	case blog.StateCalling:
		b.WriteString(m.spinner.View())
		b.WriteString(infoStyle.Render(" Generating with " + m.cycle.Request().Model() + "…"))
		b.WriteString("\n")

	case blog.StateRendered:
		b.WriteString(headingStyle.Render("📜 Generated Blog"))
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(m.viewport.View()))
		b.WriteString("\n")

	case blog.StateErrored:
		failure := m.cycle.Result().Failure
		b.WriteString(errorStyle.Render("Generation failed: " + failure.Message))
		b.WriteString("\n")
		for _, hint := range failure.Hints {
			b.WriteString(hintStyle.Render("• " + hint))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// puts the markdown into the viewport. the raw text is shown when the
// renderer is unavailable.
func (m *Model) renderResult() {
	if m.cycle.State() != blog.StateRendered {
		return
	}

	text := m.cycle.Result().Text
	content := text

	if r := m.renderer(); r != nil {
		if out, err := r.Render(text); err == nil {
			content = out
		}
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// reuses the renderer until the wrap width changes
func (m *Model) renderer() *glamour.TermRenderer {
	width := max(20, m.viewport.Width-lipgloss.Width(borderStyle.Render(""))-2)

	if m.glamourRenderer != nil && m.rendererWidth == width {
		return m.glamourRenderer
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	m.glamourRenderer = r
	m.rendererWidth = width

	return r
}
