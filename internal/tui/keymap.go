package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Dashboard key.Binding
	Wallet    key.Binding
	Savings   key.Binding
	Settings  key.Binding

	// Actions
	Add          key.Binding
	Remove       key.Binding
	Search       key.Binding
	Filter       key.Binding
	ToggleSelect key.Binding
	CutSelected  key.Binding
	Activate     key.Binding
	CancelTrial  key.Binding
	Dismiss      key.Binding
	Confirm      key.Binding
	Back         key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("Tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("Shift+Tab", "previous view"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Wallet: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "wallet"),
		),
		Savings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "savings"),
		),
		Settings: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "settings"),
		),

		// Actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add service"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status filter"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "toggle selection"),
		),
		CutSelected: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cut selected"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "change setting"),
		),
		CancelTrial: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel trial"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "dismiss toast"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("Esc/n", "back"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Add, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Wallet, k.Savings, k.Settings},
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Add, k.Remove, k.Search, k.Filter},
		{k.ToggleSelect, k.CutSelected, k.Activate, k.CancelTrial},
		{k.Dismiss, k.Help, k.Quit},
	}
}
