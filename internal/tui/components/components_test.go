package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/tui/themes"
)

func send(m AddFormModel, msgs ...tea.KeyMsg) AddFormModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddForm_Draft(t *testing.T) {
	tests := []struct {
		want model.Draft
		name string
		keys []tea.KeyMsg
	}{
		{
			name: "defaults",
			keys: []tea.KeyMsg{runes("Hulu"), {Type: tea.KeyTab}, runes("7.99")},
			want: model.Draft{Name: "Hulu", Price: "7.99", Cycle: "Monthly", Category: "Entertainment"},
		},
		{
			name: "yearly software",
			keys: []tea.KeyMsg{
				runes("JetBrains"), {Type: tea.KeyTab}, runes("249"),
				{Type: tea.KeyTab}, {Type: tea.KeyRight},
				{Type: tea.KeyTab}, {Type: tea.KeyRight},
			},
			want: model.Draft{Name: "JetBrains", Price: "249", Cycle: "Yearly", Category: "Software"},
		},
		{
			name: "category wraps backwards",
			keys: []tea.KeyMsg{
				runes("Costco"), {Type: tea.KeyShiftTab}, {Type: tea.KeyLeft},
			},
			want: model.Draft{Name: "Costco", Cycle: "Monthly", Category: "Shopping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(NewAddFormModel(themes.Light), tt.keys...)
			assert.Equal(t, tt.want, m.Draft())
			assert.False(t, m.Submitted())
		})
	}
}

func TestAddForm_SubmitAndCancel(t *testing.T) {
	m := send(NewAddFormModel(themes.Light), runes("Hulu"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Submitted())
	assert.False(t, m.Cancelled())

	m = send(NewAddFormModel(themes.Dark), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Cancelled())
	assert.False(t, m.Submitted())
}

func TestAddForm_View(t *testing.T) {
	view := NewAddFormModel(themes.Light).View()
	for _, want := range []string{"Add New Service", "Name", "Price", "Monthly", "Entertainment"} {
		assert.Contains(t, view, want)
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		width int
		want  int
	}{
		{name: "largest fills", value: 420, max: 420, width: 20, want: 20},
		{name: "half", value: 210, max: 420, width: 20, want: 10},
		{name: "tiny still visible", value: 0.01, max: 420, width: 20, want: 1},
		{name: "zero value", value: 0, max: 420, width: 20, want: 0},
		{name: "zero max", value: 5, max: 0, width: 20, want: 0},
		{name: "no room", value: 5, max: 5, width: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BarWidth(tt.value, tt.max, tt.width))
		})
	}
}

func TestRenderBars(t *testing.T) {
	out := RenderBars([]Bar{
		{Label: "Jan", Value: 320, Display: "$320.00"},
		{Label: "Jun", Value: 420, Display: "$420.00"},
	}, 10, themes.Light)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Jan")
	assert.Contains(t, lines[0], "$320.00")
	assert.Contains(t, lines[1], strings.Repeat("█", 10))
	assert.Empty(t, RenderBars(nil, 10, themes.Light))
}
