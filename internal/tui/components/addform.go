// Package components holds reusable bubbletea widgets for the dashboard.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/tui/themes"
)

type formField int

const (
	fieldName formField = iota
	fieldPrice
	fieldCycle
	fieldCategory
	fieldCount
)

var formCycles = []model.Cycle{model.CycleMonthly, model.CycleYearly}

// AddFormModel collects the fields of a new subscription.
type AddFormModel struct {
	theme     themes.Theme
	name      textinput.Model
	price     textinput.Model
	focus     formField
	cycle     int
	category  int
	submitted bool
	cancelled bool
}

// NewAddFormModel creates an empty form with the name field focused.
func NewAddFormModel(theme themes.Theme) AddFormModel {
	name := textinput.New()
	name.Placeholder = "e.g. Netflix"
	name.CharLimit = 80
	name.Prompt = ""
	name.Focus()

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 12
	price.Prompt = ""

	return AddFormModel{
		theme: theme,
		name:  name,
		price: price,
	}
}

// Init starts the cursor blink.
func (m AddFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles form input.
func (m AddFormModel) Update(msg tea.Msg) (AddFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		m.cancelled = true
		return m, nil
	case "enter":
		m.submitted = true
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "left", "right":
		step := 1
		if keyMsg.String() == "left" {
			step = -1
		}
		switch m.focus {
		case fieldCycle:
			m.cycle = wrap(m.cycle+step, len(formCycles))
			return m, nil
		case fieldCategory:
			m.category = wrap(m.category+step, len(model.FormCategories))
			return m, nil
		}
	}
	return m.updateInputs(msg)
}

func (m AddFormModel) updateInputs(msg tea.Msg) (AddFormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldPrice:
		m.price, cmd = m.price.Update(msg)
	}
	return m, cmd
}

func (m *AddFormModel) setFocus(f formField) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.price.Blur()
	switch f {
	case fieldName:
		return m.name.Focus()
	case fieldPrice:
		return m.price.Focus()
	}
	return nil
}

// Draft returns the form contents as store input.
func (m AddFormModel) Draft() model.Draft {
	return model.Draft{
		Name:     m.name.Value(),
		Price:    m.price.Value(),
		Cycle:    string(formCycles[m.cycle]),
		Category: model.FormCategories[m.category],
	}
}

// Submitted reports whether the user confirmed the form.
func (m AddFormModel) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user closed the form without saving.
func (m AddFormModel) Cancelled() bool {
	return m.cancelled
}

// View renders the form.
func (m AddFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Add New Service"))
	b.WriteString("\n\n")

	row := func(f formField, label, value string) {
		marker := "  "
		style := m.theme.Normal
		if m.focus == f {
			marker = "▸ "
			style = m.theme.Bold
		}
		b.WriteString(marker)
		b.WriteString(m.theme.Muted.Render(padRight(label, 10)))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	row(fieldName, "Name", m.name.View())
	row(fieldPrice, "Price", m.price.View())
	row(fieldCycle, "Cycle", "‹ "+string(formCycles[m.cycle])+" ›")
	row(fieldCategory, "Category", "‹ "+model.FormCategories[m.category]+" ›")

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Tab next field · ←/→ change · Enter save · Esc cancel"))
	return m.theme.Modal.Render(b.String())
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
