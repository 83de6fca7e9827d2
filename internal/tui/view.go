package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpriestly/slotbook/internal/cli"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interview Scheduler"))
	b.WriteString("\n\n")
	b.WriteString(m.dayList.View())
	b.WriteString("\n\n")

	if m.loadErr != "" {
		b.WriteString(errorBannerStyle.Render(m.loadErr))
		b.WriteString("\n\n")
	}

	appointments := m.dayAppointments()
	if len(appointments) == 0 {
		b.WriteString(offlineStyle.Render("No slots on this day."))
		b.WriteString("\n")
	}
	for i, appt := range appointments {
		w := m.widgets[appt.ID]
		if w == nil {
			continue
		}
		b.WriteString(w.View(i == m.selected))
		b.WriteString("\n")
	}

	if w := m.focusedWidget(); w != nil && w.Form() != nil {
		b.WriteString("\n")
		b.WriteString(w.Form().View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m))

	return docStyle.Render(b.String())
}

// footerView summarizes the selected day's availability and whether live
// updates are flowing.
func (m Model) footerView() string {
	summary := ""
	if day := m.state.DayByName(m.state.Day); day != nil {
		summary = spotsSummaryStyle.Render(fmt.Sprintf("%s: %s", day.Name, cli.FormatSpots(day.Spots)))
	}

	sync := offlineStyle.Render("● local only")
	if m.state.LiveSyncActive {
		sync = liveStyle.Render("● live")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, summary, "  ", sync)
}
