package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the terminal full screen until the user quits or ctx ends.
func Run(ctx context.Context, runner Runner, opts ...Option) error {
	p := tea.NewProgram(New(ctx, runner, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
