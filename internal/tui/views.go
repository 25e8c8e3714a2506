package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/unroll/internal/currency"
	"github.com/Veraticus/unroll/internal/insights"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/tui/components"
	"github.com/Veraticus/unroll/internal/tui/themes"
)

const barWidth = 24

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case ModeAdd:
		body = m.addForm.View()
	case ModeConfirm:
		body = m.renderConfirm()
	case ModeHelp:
		body = m.help.View(m.keymap)
	default:
		body = m.renderTab()
	}

	sections := []string{m.renderHeader(), m.renderTabs(), body}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	if m.config.ShowHelp && m.mode == ModeBrowse {
		sections = append(sections, m.theme.Muted.Render(m.help.ShortHelpView(m.keymap.ShortHelp())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	first, _, _ := strings.Cut(strings.TrimSpace(m.settings.Name), " ")
	title := "Workspace"
	if first != "" {
		title = first + "'s Workspace"
	}
	return m.theme.Title.Render("unroll") + "  " + m.theme.Subtitle.Render(title)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderTab() string {
	switch m.tab {
	case TabWallet:
		return m.renderWallet()
	case TabSavings:
		return m.renderSavings()
	case TabSettings:
		return m.renderSettings()
	default:
		return m.renderDashboard()
	}
}

func (m Model) money(amount float64) string {
	return currency.Format(amount, m.settings.Currency)
}

func (m Model) renderDashboard() string {
	summary := insights.Dashboard(m.subs)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Monthly Burn", m.money(summary.MonthlyBurn)),
		m.card("Active Services", strconv.Itoa(summary.ActiveCount)),
		m.card("Potential Savings", m.money(summary.PotentialSavings)),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")

	if summary.Trial != nil {
		trial := m.theme.Card.BorderForeground(m.theme.Warning).Render(
			m.theme.StatusTrial.Render("Trial Ending Soon") + "\n" +
				fmt.Sprintf("%s will charge you %s", summary.Trial.Name, m.money(summary.Trial.Price)) + "\n" +
				m.theme.Muted.Render("x Cancel Now"),
		)
		b.WriteString(trial)
		b.WriteString("\n\n")
	}

	b.WriteString(m.theme.Bold.Render("Spending Trend"))
	b.WriteString(" " + m.theme.Muted.Render("Last 6 months"))
	b.WriteString("\n")
	symbol := currency.Symbol(m.settings.Currency)
	trend := insights.Trend(currency.Rate(m.settings.Currency))
	bars := make([]components.Bar, len(trend))
	for i, p := range trend {
		bars[i] = components.Bar{Label: p.Month, Value: p.Spend, Display: symbol + currency.Number(p.Spend)}
	}
	b.WriteString(components.RenderBars(bars, barWidth, m.theme))
	b.WriteString("\n\n")

	if len(summary.Categories) > 0 {
		b.WriteString(m.theme.Bold.Render("By Category"))
		b.WriteString("\n")
		bars = bars[:0]
		for _, c := range summary.Categories {
			bars = append(bars, components.Bar{
				Label:   themes.GetCategoryIcon(c.Category) + " " + c.Category,
				Value:   c.Monthly,
				Display: m.money(c.Monthly),
			})
		}
		b.WriteString(components.RenderBars(bars, barWidth, m.theme))
		b.WriteString("\n\n")
	}

	b.WriteString(m.theme.Bold.Render("Upcoming Renewals"))
	b.WriteString("\n")
	if len(summary.Upcoming) == 0 {
		b.WriteString(m.theme.Muted.Render("Nothing scheduled. Press a to add a service."))
	}
	for _, sub := range summary.Upcoming {
		fmt.Fprintf(&b, "%s %-22s %-8s %s\n",
			m.theme.Bold.Render(sub.Icon),
			sub.Name,
			sub.NextBill.Format("Jan 2"),
			m.money(sub.Price),
		)
	}
	return b.String()
}

func (m Model) card(label, value string) string {
	return m.theme.Card.Width(24).Render(m.theme.Muted.Render(label) + "\n" + m.theme.Title.Render(value))
}

func (m Model) renderWallet() string {
	var b strings.Builder

	filter := "All"
	if m.filter != "" {
		filter = string(m.filter)
	}
	b.WriteString(m.search.View())
	b.WriteString("  " + m.theme.Muted.Render("Status: "+filter))
	b.WriteString("\n\n")

	visible := m.visibleSubscriptions()
	if len(visible) == 0 {
		b.WriteString(m.theme.Muted.Render("No matches found"))
		return b.String()
	}

	for i, sub := range visible {
		line := fmt.Sprintf("%s %-22s %-14s %-8s %12s  %s",
			sub.Icon,
			sub.Name,
			sub.Category,
			sub.Cycle,
			m.money(sub.Price),
			sub.NextBill.Format("2006-01-02"),
		)
		status := m.theme.Status(sub.Status).Render(string(sub.Status))
		if i == m.cursors[TabWallet] {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line + "  " + status + "\n")
	}
	return b.String()
}

func (m Model) renderSavings() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Simulate Your Savings"))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Select services you're considering cutting."))
	b.WriteString("\n\n")

	for i, sub := range m.subs {
		box := "[ ]"
		if m.selected[sub.ID] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %-22s %12s/mo", box, sub.Name, m.money(sub.MonthlyCost()))
		if i == m.cursors[TabSavings] {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	savings := insights.Simulate(m.subs, m.selectedIDs())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Yearly Savings", m.money(savings.Yearly)),
		m.card("Monthly Impact", m.money(savings.Monthly)),
		m.card("Invested (7% APY)", m.money(savings.ProjectedInvested)),
	))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("c Cut Selected (%d)", len(m.selected))))
	return b.String()
}

func (m Model) renderConfirm() string {
	n := len(m.selected)
	noun := "subscriptions"
	if n == 1 {
		noun = "subscription"
	}
	content := m.theme.Title.Render("Confirm Cancellation") + "\n\n" +
		fmt.Sprintf("You are about to cancel %d %s.\nThis action cannot be undone automatically.", n, noun) + "\n\n" +
		m.theme.Muted.Render("n Keep Them") + "    " + m.theme.StatusTrial.Render("y Yes, Cut Them")
	return m.theme.Modal.Render(content)
}

func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Preferences"))
	b.WriteString("\n\n")

	for i, k := range model.SettingKeys {
		var label, value string
		switch k {
		case model.SettingName:
			label, value = "Display Name", m.settings.Name
			if m.mode == ModeEditName {
				value = m.nameInput.View()
			}
		case model.SettingCurrency:
			label = "Currency"
			value = string(m.settings.Currency) + " (" + currency.Symbol(m.settings.Currency) + ")"
		case model.SettingNotifications:
			label, value = "Notifications", "Off"
			if m.settings.Notifications {
				value = "On"
			}
		case model.SettingTheme:
			label, value = "Theme", "Light"
			if m.settings.Theme == model.ThemeDark {
				value = "Dark"
			}
		}

		line := fmt.Sprintf("%-14s %s", label, value)
		if i == m.cursors[TabSettings] && m.mode != ModeEditName {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, n := range m.toasts {
		style := m.theme.Toast
		if n.Kind == model.KindError {
			style = m.theme.ToastError
		}
		lines = append(lines, style.Render(n.Message))
	}
	return "\n" + strings.Join(lines, "\n")
}
