// Package tui implements the interactive subscription dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoStore is returned when Run is called without a record store.
var ErrNoStore = errors.New("tui: store is required")

// Run starts the dashboard and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		return ErrNoStore
	}

	p := tea.NewProgram(
		newModel(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
