// Package daylist renders the day selector with per-day spot badges.
package daylist

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpriestly/slotbook/internal/models"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	fullDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	spotsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type Model struct {
	Days     []models.Day
	Selected string
}

func New(days []models.Day, selected string) Model {
	return Model{Days: days, Selected: selected}
}

func (m *Model) SetDays(days []models.Day, selected string) {
	m.Days = days
	m.Selected = selected
}

// Next returns the day name after the selection, wrapping around.
func (m Model) Next() string {
	return m.step(1)
}

// Prev returns the day name before the selection, wrapping around.
func (m Model) Prev() string {
	return m.step(-1)
}

func (m Model) step(delta int) string {
	if len(m.Days) == 0 {
		return m.Selected
	}
	idx := 0
	for i, d := range m.Days {
		if d.Name == m.Selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.Days)) % len(m.Days)
	return m.Days[idx].Name
}

func (m Model) View() string {
	var tabs []string
	for _, day := range m.Days {
		label := fmt.Sprintf("%s %s", day.Name, spotsStyle.Render(fmt.Sprintf("(%d)", day.Spots)))
		switch {
		case day.Name == m.Selected:
			tabs = append(tabs, selectedStyle.Render(label))
		case day.Spots == 0:
			tabs = append(tabs, fullDayStyle.Render(label))
		default:
			tabs = append(tabs, dayStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
