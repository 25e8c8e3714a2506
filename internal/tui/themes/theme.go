package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/unroll/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Card          lipgloss.Style
	Modal         lipgloss.Style
	Toast         lipgloss.Style
	ToastError    lipgloss.Style
	Bar           lipgloss.Style
	BarEmpty      lipgloss.Style
	StatusActive  lipgloss.Style
	StatusTrial   lipgloss.Style
	StatusPaused  lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	Border        lipgloss.Color
	MutedColor    lipgloss.Color
	Name          model.Theme
}

type palette struct {
	primary, secondary, success, warning, danger lipgloss.Color
	background, foreground, border, muted        lipgloss.Color
	highlight                                    lipgloss.Color
}

func build(name model.Theme, p palette) Theme {
	return Theme{
		Name:       name,
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.danger,
		Background: p.background,
		Foreground: p.foreground,
		Border:     p.border,
		MutedColor: p.muted,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(p.highlight).
			Foreground(p.foreground),

		// Navigation
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(p.primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		// Component styles
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(p.success).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(p.danger).
			Padding(0, 1),
		Bar: lipgloss.NewStyle().
			Foreground(p.primary),
		BarEmpty: lipgloss.NewStyle().
			Foreground(p.border),

		// Status styles
		StatusActive: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusTrial: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusPaused: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Light is the default theme.
var Light = build(model.ThemeLight, palette{
	primary:    lipgloss.Color("#4f46e5"),
	secondary:  lipgloss.Color("#818cf8"),
	success:    lipgloss.Color("#059669"),
	warning:    lipgloss.Color("#d97706"),
	danger:     lipgloss.Color("#dc2626"),
	background: lipgloss.Color("#f8fafc"),
	foreground: lipgloss.Color("#0f172a"),
	border:     lipgloss.Color("#cbd5e1"),
	muted:      lipgloss.Color("#64748b"),
	highlight:  lipgloss.Color("#e0e7ff"),
})

// Dark mirrors Light on a slate background.
var Dark = build(model.ThemeDark, palette{
	primary:    lipgloss.Color("#6366f1"),
	secondary:  lipgloss.Color("#a5b4fc"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	danger:     lipgloss.Color("#ef4444"),
	background: lipgloss.Color("#0f172a"),
	foreground: lipgloss.Color("#f1f5f9"),
	border:     lipgloss.Color("#334155"),
	muted:      lipgloss.Color("#94a3b8"),
	highlight:  lipgloss.Color("#1e293b"),
})

// For returns the theme matching the settings selector. Unknown values get Light.
func For(t model.Theme) Theme {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}

// Status returns the style used for a subscription status label.
func (t Theme) Status(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusTrial:
		return t.StatusTrial
	case model.StatusPaused:
		return t.StatusPaused
	default:
		return t.StatusActive
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[string]string{
	"Entertainment": "🎬",
	"Music":         "🎵",
	"Software":      "💻",
	"Utilities":     "💡",
	"Shopping":      "🛍️",
	"Security":      "🛡️",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
