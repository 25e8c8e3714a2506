package tui

import (
	"context"
	"time"

	"github.com/Veraticus/unroll/internal/model"
)

// Store is the subset of the record store the dashboard drives.
type Store interface {
	Subscriptions() []model.Subscription
	Settings() model.UserSettings
	Add(ctx context.Context, draft model.Draft) (*model.Subscription, error)
	Remove(ctx context.Context, id int64) error
	RemoveMany(ctx context.Context, ids []int64) error
	UpdateSetting(ctx context.Context, key model.SettingKey, value string) error
}

// Notifications is the toast source rendered in the overlay.
type Notifications interface {
	List() []model.Notification
	Dismiss(id string) bool
}

// Config holds TUI configuration.
type Config struct {
	Store           Store
	Feed            Notifications
	ThemeOverride   model.Theme
	Width           int
	Height          int
	RefreshInterval time.Duration
	ShowHelp        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Width:           80,
		Height:          24,
		RefreshInterval: 250 * time.Millisecond,
		ShowHelp:        true,
	}
}

// WithStore sets the record store.
func WithStore(s Store) Option {
	return func(c *Config) {
		c.Store = s
	}
}

// WithFeed sets the notification feed.
func WithFeed(f Notifications) Option {
	return func(c *Config) {
		c.Feed = f
	}
}

// WithSize sets the initial terminal dimensions.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithThemeOverride pins the theme regardless of the stored setting.
// An empty value follows the setting.
func WithThemeOverride(t model.Theme) Option {
	return func(c *Config) {
		c.ThemeOverride = t
	}
}

// WithRefreshInterval sets how often toasts are re-read from the feed.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RefreshInterval = d
		}
	}
}

// WithHelp toggles the short help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
