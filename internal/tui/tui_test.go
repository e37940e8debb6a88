package tui

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/llamaquill/quill/internal/blog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	prepared int
	calls    int
	requests []blog.Request
	result   blog.Result
}

func (g *mockGenerator) Prepare(f blog.Form) (blog.Request, error) {
	g.prepared++
	return blog.NewRequest(f)
}

func (g *mockGenerator) Generate(_ context.Context, req blog.Request) blog.Result {
	g.calls++
	g.requests = append(g.requests, req)
	return g.result
}

func newTestApp(g *mockGenerator) *Model {
	return NewApp(g, []string{"llama3", "mistral", "phi3", "qwen2.5"}, "http://localhost:11434")
}

func press(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// runs a batched command and returns the generation message it produced
func runGeneration(t *testing.T, cmd tea.Cmd) GenerationDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(GenerationDoneMsg); ok {
			return done
		}
	}

	t.Fatal("no generation command in batch")
	return GenerationDoneMsg{}
}

func TestNewApp_Defaults(t *testing.T) {
	m := newTestApp(&mockGenerator{})

	f := m.form()
	assert.Equal(t, "", f.Topic)
	assert.Equal(t, "500", f.WordCount)
	assert.Equal(t, blog.AudienceGeneral, f.Audience)
	assert.Equal(t, "llama3", f.Settings.Model)
	assert.Equal(t, 0.2, f.Settings.Temperature)
	assert.Equal(t, 0.9, f.Settings.TopP)
	assert.Equal(t, 700, f.Settings.MaxTokens)
	assert.Equal(t, "http://localhost:11434", f.Settings.Endpoint)
	assert.False(t, m.advanced)
	assert.Equal(t, fieldTopic, m.focus)
}

func TestSubmit_EmptyTopicShowsInlineErrorWithoutCall(t *testing.T) {
	g := &mockGenerator{}
	m := newTestApp(g)

	cmd := press(m, tea.KeyCtrlG)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, g.calls)
	assert.Equal(t, blog.StateIdle, m.cycle.State())
	assert.Contains(t, m.View(), "topic required")
}

func TestSubmit_BadWordCount(t *testing.T) {
	g := &mockGenerator{}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	press(m, tea.KeyTab)
	m.wordCount.SetValue("lots")

	cmd := press(m, tea.KeyCtrlG)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, g.calls)
	assert.Contains(t, m.View(), "word count must be an integer")
}

func TestSubmit_SuccessRendersResult(t *testing.T) {
	g := &mockGenerator{result: blog.Succeeded("Hello world")}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	cmd := press(m, tea.KeyCtrlG)

	assert.True(t, m.cycle.Busy())
	assert.Contains(t, m.View(), "Generating with llama3…")

	done := runGeneration(t, cmd)
	m.Update(done)

	assert.Equal(t, 1, g.calls)
	assert.Equal(t, "Edge AI", g.requests[0].Topic())
	assert.Equal(t, blog.StateRendered, m.cycle.State())
	assert.Equal(t, "Hello world", m.cycle.Result().Text)
	assert.Contains(t, m.View(), "Generated Blog")
}

func TestSubmit_FailureShowsMessageAndHints(t *testing.T) {
	g := &mockGenerator{result: blog.Failed(errors.New("connection refused"))}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	m.Update(runGeneration(t, press(m, tea.KeyCtrlG)))

	view := m.View()
	assert.Equal(t, blog.StateErrored, m.cycle.State())
	assert.Contains(t, view, "Generation failed: connection refused")
	assert.Contains(t, view, blog.FailureHints[0])
	assert.Contains(t, view, blog.FailureHints[1])
	assert.NotContains(t, view, "Generated Blog")
}

func TestSubmit_IgnoredWhileCalling(t *testing.T) {
	g := &mockGenerator{result: blog.Succeeded("first")}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	first := press(m, tea.KeyCtrlG)
	require.NotNil(t, first)

	assert.Nil(t, press(m, tea.KeyCtrlG))
	assert.Equal(t, 1, g.prepared)

	m.Update(runGeneration(t, first))
	assert.Equal(t, 1, g.calls)

	// a new submission is accepted once the first one is done
	assert.NotNil(t, press(m, tea.KeyCtrlG))
}

func TestEnterOnButtonSubmits(t *testing.T) {
	g := &mockGenerator{result: blog.Succeeded("ok")}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	press(m, tea.KeyEnter) // word count
	press(m, tea.KeyEnter) // audience
	press(m, tea.KeyEnter) // button, advanced is collapsed
	require.Equal(t, fieldGenerate, m.focus)

	cmd := press(m, tea.KeyEnter)
	runGeneration(t, cmd)
	assert.Equal(t, 1, g.calls)
}

func TestAudienceSelector(t *testing.T) {
	m := newTestApp(&mockGenerator{})

	m.setFocus(fieldAudience)
	press(m, tea.KeyRight)
	assert.Equal(t, blog.AudienceResearchers, m.form().Audience)

	press(m, tea.KeyLeft)
	press(m, tea.KeyLeft)
	assert.Equal(t, blog.AudienceDataScientists, m.form().Audience)
}

func TestAdvancedSteppers(t *testing.T) {
	g := &mockGenerator{result: blog.Succeeded("ok")}
	m := newTestApp(g)

	press(m, tea.KeyCtrlA)
	require.True(t, m.advanced)

	m.setFocus(fieldModel)
	press(m, tea.KeyRight)
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	press(m, tea.KeyTab)
	press(m, tea.KeyLeft)
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)

	f := m.form()
	assert.Equal(t, "mistral", f.Settings.Model)
	assert.Equal(t, 0.25, f.Settings.Temperature)
	assert.Equal(t, 0.85, f.Settings.TopP)
	assert.Equal(t, 750, f.Settings.MaxTokens)

	m.topic.SetValue("Edge AI")
	runGeneration(t, press(m, tea.KeyCtrlG))

	require.Len(t, g.requests, 1)
	assert.Equal(t, "mistral", g.requests[0].Model())
	assert.Equal(t, 750, g.requests[0].MaxTokens())
}

func TestSteppersClampAtBounds(t *testing.T) {
	m := newTestApp(&mockGenerator{})
	press(m, tea.KeyCtrlA)

	m.setFocus(fieldMaxTokens)
	for i := 0; i < 100; i++ {
		press(m, tea.KeyRight)
	}
	assert.Equal(t, 4096, m.maxTokens)

	m.setFocus(fieldTopP)
	for i := 0; i < 30; i++ {
		press(m, tea.KeyLeft)
	}
	assert.Equal(t, 0.1, m.topP)
}

func TestFocusSkipsHiddenAdvancedFields(t *testing.T) {
	m := newTestApp(&mockGenerator{})

	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	assert.Equal(t, fieldGenerate, m.focus)

	press(m, tea.KeyTab)
	assert.Equal(t, fieldTopic, m.focus)

	press(m, tea.KeyShiftTab)
	assert.Equal(t, fieldGenerate, m.focus)

	press(m, tea.KeyCtrlA)
	press(m, tea.KeyShiftTab)
	assert.Equal(t, fieldEndpoint, m.focus)

	press(m, tea.KeyCtrlA)
	assert.Equal(t, fieldGenerate, m.focus)
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestApp(&mockGenerator{})

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSubmit_RetryAfterFailureClearsError(t *testing.T) {
	g := &mockGenerator{result: blog.Failed(errors.New("connection refused"))}
	m := newTestApp(g)

	typeText(m, "Edge AI")
	m.Update(runGeneration(t, press(m, tea.KeyCtrlG)))
	require.Equal(t, blog.StateErrored, m.cycle.State())

	g.result = blog.Succeeded("Second try")
	cmd := press(m, tea.KeyCtrlG)
	require.NotNil(t, cmd)

	assert.Equal(t, blog.StateCalling, m.cycle.State())
	assert.Nil(t, m.cycle.Result().Failure)
	view := m.View()
	assert.Contains(t, view, "Generating with llama3…")
	assert.NotContains(t, view, "Generation failed")
	assert.NotContains(t, view, blog.FailureHints[0])

	m.Update(runGeneration(t, cmd))

	assert.Equal(t, 2, g.calls)
	assert.Equal(t, blog.StateRendered, m.cycle.State())
	view = m.View()
	assert.Contains(t, view, "Generated Blog")
	assert.NotContains(t, view, "Generation failed")
}
