package tui

import (
	"context"

	"codeberg.org/llamaquill/quill/internal/blog"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// validates forms and runs generations. *blog.Service satisfies it.
type Generator interface {
	Prepare(f blog.Form) (blog.Request, error)
	Generate(ctx context.Context, req blog.Request) blog.Result
}

// a focusable control on the form
type field int

const (
	fieldTopic field = iota
	fieldWordCount
	fieldAudience
	fieldModel
	fieldTemperature
	fieldTopP
	fieldMaxTokens
	fieldEndpoint
	fieldGenerate
)

// main TUI application model
type Model struct {
	generator Generator
	cycle     *blog.Cycle

	topic     textinput.Model
	wordCount textinput.Model
	endpoint  textinput.Model

	audience    int
	models      []string
	model       int
	temperature float64
	topP        float64
	maxTokens   int

	advanced bool
	focus    field

	spinner         spinner.Model
	viewport        viewport.Model
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	width  int
	height int
}

// sent when the generation call returns
type GenerationDoneMsg struct {
	result blog.Result
}
