package tui

import (
	"context"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/unroll/internal/insights"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/tui/components"
	"github.com/Veraticus/unroll/internal/tui/themes"
)

// Tab is one of the top-level views.
type Tab int

const (
	TabDashboard Tab = iota
	TabWallet
	TabSavings
	TabSettings
	tabCount
)

var tabTitles = [...]string{"Dashboard", "Wallet", "Savings", "Settings"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return ""
	}
	return tabTitles[t]
}

// Mode tells which input handler owns the keyboard.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeAdd
	ModeConfirm
	ModeEditName
	ModeHelp
)

// statusFilters is the order the wallet filter cycles through.
var statusFilters = []model.Status{"", model.StatusActive, model.StatusTrial, model.StatusPaused}

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	store     Store
	feed      Notifications
	selected  map[int64]bool
	theme     themes.Theme
	config    Config
	keymap    KeyMap
	help      help.Model
	search    textinput.Model
	nameInput textinput.Model
	addForm   components.AddFormModel
	settings  model.UserSettings
	subs      []model.Subscription
	toasts    []model.Notification
	filter    model.Status
	cursors   [tabCount]int
	width     int
	height    int
	tab       Tab
	mode      Mode
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "Search service, category..."
	search.Prompt = "/ "
	search.CharLimit = 64

	nameInput := textinput.New()
	nameInput.Prompt = ""
	nameInput.CharLimit = 80

	m := Model{
		ctx:       ctx,
		store:     cfg.Store,
		feed:      cfg.Feed,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		nameInput: nameInput,
		selected:  make(map[int64]bool),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.refresh()
	return m
}

// Init starts the toast refresh loop.
func (m Model) Init() tea.Cmd {
	return tick(m.config.RefreshInterval)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refreshToasts()
		return m, tick(m.config.RefreshInterval)

	case mutationDoneMsg:
		if msg.err != nil {
			slog.Warn("Dashboard mutation failed", "op", msg.op, "error", msg.err)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeAdd {
		var cmd tea.Cmd
		m.addForm, cmd = m.addForm.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh re-reads the store snapshot and the feed.
func (m *Model) refresh() {
	if m.store != nil {
		m.subs = m.store.Subscriptions()
		m.settings = m.store.Settings()
	}
	m.theme = themes.For(m.settings.Theme)
	if m.config.ThemeOverride != "" {
		m.theme = themes.For(m.config.ThemeOverride)
	}

	// Drop selections whose records are gone.
	for id := range m.selected {
		if !slices.ContainsFunc(m.subs, func(s model.Subscription) bool { return s.ID == id }) {
			delete(m.selected, id)
		}
	}
	m.clampCursors()
	m.refreshToasts()
}

func (m *Model) refreshToasts() {
	if m.feed == nil {
		m.toasts = nil
		return
	}
	m.toasts = m.feed.List()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeAdd:
		return m.handleAddKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeEditName:
		return m.handleEditNameKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.mode = ModeBrowse
		m.help.ShowAll = false
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil
	case key.Matches(msg, m.keymap.Dashboard):
		m.tab = TabDashboard
		return m, nil
	case key.Matches(msg, m.keymap.Wallet):
		m.tab = TabWallet
		return m, nil
	case key.Matches(msg, m.keymap.Savings):
		m.tab = TabSavings
		return m, nil
	case key.Matches(msg, m.keymap.Settings):
		m.tab = TabSettings
		return m, nil
	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keymap.Dismiss):
		if n := len(m.toasts); n > 0 && m.feed != nil {
			m.feed.Dismiss(m.toasts[n-1].ID)
			m.refreshToasts()
		}
		return m, nil
	case key.Matches(msg, m.keymap.Add) && m.tab != TabSettings:
		m.mode = ModeAdd
		m.addForm = components.NewAddFormModel(m.theme)
		return m, m.addForm.Init()
	}

	switch m.tab {
	case TabDashboard:
		if key.Matches(msg, m.keymap.CancelTrial) {
			if trial := insights.TrialAlert(m.subs); trial != nil {
				return m, m.removeSubscription(trial.ID)
			}
		}
	case TabWallet:
		return m.handleWalletKey(msg)
	case TabSavings:
		return m.handleSavingsKey(msg)
	case TabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleWalletKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keymap.Filter):
		i := slices.Index(statusFilters, m.filter)
		m.filter = statusFilters[(i+1)%len(statusFilters)]
		m.clampCursors()
		return m, nil
	case key.Matches(msg, m.keymap.Remove):
		visible := m.visibleSubscriptions()
		if len(visible) == 0 {
			return m, nil
		}
		return m, m.removeSubscription(visible[m.cursors[TabWallet]].ID)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursors[TabWallet] = 0
	return m, cmd
}

func (m Model) handleSavingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ToggleSelect):
		if len(m.subs) == 0 {
			return m, nil
		}
		id := m.subs[m.cursors[TabSavings]].ID
		if m.selected[id] {
			delete(m.selected, id)
		} else {
			m.selected[id] = true
		}
	case key.Matches(msg, m.keymap.CutSelected):
		if len(m.selected) > 0 {
			m.mode = ModeConfirm
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		ids := m.selectedIDs()
		m.mode = ModeBrowse
		m.selected = make(map[int64]bool)
		return m, m.removeSubscriptions(ids)
	case key.Matches(msg, m.keymap.Back):
		m.mode = ModeBrowse
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keymap.Activate) {
		return m, nil
	}

	switch model.SettingKeys[m.cursors[TabSettings]] {
	case model.SettingName:
		m.mode = ModeEditName
		m.nameInput.SetValue(m.settings.Name)
		m.nameInput.CursorEnd()
		return m, m.nameInput.Focus()
	case model.SettingCurrency:
		i := slices.Index(model.Currencies, m.settings.Currency)
		next := model.Currencies[(i+1)%len(model.Currencies)]
		return m, m.updateSetting(model.SettingCurrency, string(next))
	case model.SettingNotifications:
		value := "true"
		if m.settings.Notifications {
			value = "false"
		}
		return m, m.updateSetting(model.SettingNotifications, value)
	case model.SettingTheme:
		next := model.ThemeDark
		if m.settings.Theme == model.ThemeDark {
			next = model.ThemeLight
		}
		return m, m.updateSetting(model.SettingTheme, string(next))
	}
	return m, nil
}

func (m Model) handleEditNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.nameInput.Blur()
		return m, m.updateSetting(model.SettingName, m.nameInput.Value())
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.addForm, cmd = m.addForm.Update(msg)

	switch {
	case m.addForm.Submitted():
		m.mode = ModeBrowse
		return m, m.addSubscription(m.addForm.Draft())
	case m.addForm.Cancelled():
		m.mode = ModeBrowse
		return m, nil
	}
	return m, cmd
}

// visibleSubscriptions applies the wallet search and status filter.
func (m Model) visibleSubscriptions() []model.Subscription {
	return insights.Search(m.subs, m.search.Value(), m.filter)
}

func (m Model) selectedIDs() []int64 {
	ids := make([]int64, 0, len(m.selected))
	for _, sub := range m.subs {
		if m.selected[sub.ID] {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}

func (m Model) rowCount(t Tab) int {
	switch t {
	case TabWallet:
		return len(m.visibleSubscriptions())
	case TabSavings:
		return len(m.subs)
	case TabSettings:
		return len(model.SettingKeys)
	default:
		return 0
	}
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount(m.tab)
	if n == 0 {
		return
	}
	m.cursors[m.tab] = min(max(m.cursors[m.tab]+delta, 0), n-1)
}

func (m *Model) clampCursors() {
	for t := Tab(0); t < tabCount; t++ {
		n := m.rowCount(t)
		m.cursors[t] = min(m.cursors[t], max(n-1, 0))
	}
}
