package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/unroll/internal/model"
)

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// mutate runs a store operation off the event loop and reports its outcome.
func mutate(ctx context.Context, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) addSubscription(draft model.Draft) tea.Cmd {
	return mutate(m.ctx, "add", func(ctx context.Context) error {
		_, err := m.store.Add(ctx, draft)
		return err
	})
}

func (m Model) removeSubscription(id int64) tea.Cmd {
	return mutate(m.ctx, "remove", func(ctx context.Context) error {
		return m.store.Remove(ctx, id)
	})
}

func (m Model) removeSubscriptions(ids []int64) tea.Cmd {
	return mutate(m.ctx, "remove_many", func(ctx context.Context) error {
		return m.store.RemoveMany(ctx, ids)
	})
}

func (m Model) updateSetting(key model.SettingKey, value string) tea.Cmd {
	return mutate(m.ctx, "update_setting", func(ctx context.Context) error {
		return m.store.UpdateSetting(ctx, key, value)
	})
}
