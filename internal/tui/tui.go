package tui

import (
	"slices"

	"codeberg.org/llamaquill/quill/internal/blog"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func NewApp(generator Generator, models []string, endpoint string) *Model {
	defaults := blog.DefaultForm(models, endpoint)

	topic := newInput("e.g., Top 5 AI Trends to Watch in 2025")
	topic.Focus()

	wordCount := newInput("50-2000")
	wordCount.CharLimit = 12
	wordCount.SetValue(defaults.WordCount)

	endpointInput := newInput("http://localhost:11434")
	endpointInput.SetValue(defaults.Settings.Endpoint)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	m := &Model{
		generator:   generator,
		cycle:       blog.NewCycle(generator.Prepare),
		topic:       topic,
		wordCount:   wordCount,
		endpoint:    endpointInput,
		audience:    slices.Index(blog.Audiences, defaults.Audience),
		models:      models,
		temperature: defaults.Settings.Temperature,
		topP:        defaults.Settings.TopP,
		maxTokens:   defaults.Settings.MaxTokens,
		spinner:     sp,
		viewport:    viewport.New(defaultWidth-4, defaultHeight/2),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.resize()

	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = defaultWidth - 20
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	return ti
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderResult()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.cycle.Busy() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GenerationDoneMsg:
		if err := m.cycle.Finish(msg.result); err != nil {
			return m, nil
		}

		m.renderResult()
		return m, nil
	}

	return m.updateInput(msg)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// the form is frozen while a call is outstanding
	if m.cycle.Busy() {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+g":
		return m.submit()

	case "enter":
		if m.focus == fieldGenerate {
			return m.submit()
		}

		return m, m.moveFocus(1)

	case "tab", "down":
		return m, m.moveFocus(1)

	case "shift+tab", "up":
		return m, m.moveFocus(-1)

	case "ctrl+a":
		m.advanced = !m.advanced
		if !m.advanced && isAdvanced(m.focus) {
			return m, m.setFocus(fieldGenerate)
		}
		return m, nil

	case "left", "right":
		dir := 1
		if msg.String() == "left" {
			dir = -1
		}

		if m.step(dir) {
			return m, nil
		}

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m.updateInput(msg)
}

// forwards msg to the focused text input, if any
func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case fieldTopic:
		m.topic, cmd = m.topic.Update(msg)
	case fieldWordCount:
		m.wordCount, cmd = m.wordCount.Update(msg)
	case fieldEndpoint:
		m.endpoint, cmd = m.endpoint.Update(msg)
	}

	return m, cmd
}

// starts a submission. validation failures stay on the form and issue no call.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.cycle.Busy() {
		return m, nil
	}

	req, err := m.cycle.Begin(m.form())
	if err != nil {
		return m, nil
	}

	return m, tea.Batch(m.spinner.Tick, generateCmd(m.generator, req))
}

// snapshot of the current field values
func (m *Model) form() blog.Form {
	f := blog.Form{
		Topic:     m.topic.Value(),
		WordCount: m.wordCount.Value(),
		Audience:  blog.Audiences[m.audience],
		Settings: blog.Settings{
			Temperature: m.temperature,
			TopP:        m.topP,
			MaxTokens:   m.maxTokens,
			Endpoint:    m.endpoint.Value(),
		},
	}
	if len(m.models) > 0 {
		f.Settings.Model = m.models[m.model]
	}

	return f
}

// changes the focused selector or stepper. reports whether one was focused.
func (m *Model) step(dir int) bool {
	switch m.focus {
	case fieldAudience:
		m.audience = cycleIndex(m.audience, dir, len(blog.Audiences))
	case fieldModel:
		m.model = cycleIndex(m.model, dir, len(m.models))
	case fieldTemperature:
		m.temperature = blog.TemperatureRange.Move(m.temperature, dir)
	case fieldTopP:
		m.topP = blog.TopPRange.Move(m.topP, dir)
	case fieldMaxTokens:
		m.maxTokens = blog.MaxTokensRange.Move(m.maxTokens, dir)
	default:
		return false
	}

	return true
}

func cycleIndex(i, dir, n int) int {
	if n == 0 {
		return 0
	}

	return ((i+dir)%n + n) % n
}

func isAdvanced(f field) bool {
	return f >= fieldModel && f <= fieldEndpoint
}

// moves focus by dir, skipping the advanced controls while they are hidden
func (m *Model) moveFocus(dir int) tea.Cmd {
	next := m.focus
	for {
		next = field((int(next) + dir + int(fieldGenerate) + 1) % (int(fieldGenerate) + 1))
		if m.advanced || !isAdvanced(next) {
			break
		}
	}

	return m.setFocus(next)
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f

	m.topic.Blur()
	m.wordCount.Blur()
	m.endpoint.Blur()

	switch f {
	case fieldTopic:
		return m.topic.Focus()
	case fieldWordCount:
		return m.wordCount.Focus()
	case fieldEndpoint:
		return m.endpoint.Focus()
	}

	return nil
}

func (m *Model) resize() {
	inputWidth := max(20, m.width-20)
	m.topic.Width = inputWidth
	m.endpoint.Width = inputWidth

	m.viewport.Width = max(20, m.width-4)
	m.viewport.Height = max(6, m.height/2)
}
