package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/parallax/internal/pbx"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea browser over a decoded project.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(source string, project *pbx.Project, opts ...tea.ProgramOption) *Program {
	model := NewModel(source, project)

	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, opts...)

	return tea.NewProgram(model, allOpts...)
}

// Run creates and runs a browser program, blocking until it exits.
// Returns an error if the program encounters a fatal error.
func Run(source string, project *pbx.Project) error {
	p := NewProgram(source, project)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
