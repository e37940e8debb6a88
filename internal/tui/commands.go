package tui

import (
	"context"

	"codeberg.org/llamaquill/quill/internal/blog"
	tea "github.com/charmbracelet/bubbletea"
)

// runs the single blocking call off the update loop
func generateCmd(generator Generator, req blog.Request) tea.Cmd {
	return func() tea.Msg {
		return GenerationDoneMsg{result: generator.Generate(context.Background(), req)}
	}
}
