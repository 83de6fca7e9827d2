package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpriestly/slotbook/internal/selectors"
)

var (
	dayNameStyle = lipgloss.NewStyle().Bold(true).Width(12)
	spotsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fullStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type DaysCmd struct {
	Offline bool `help:"Read from the local snapshot cache instead of the API."`
}

func (c *DaysCmd) Run(appCtx *Context) error {
	if c.Offline {
		if err := appCtx.LoadOffline(); err != nil {
			return err
		}
	} else if err := appCtx.LoadSchedule(context.Background()); err != nil {
		return err
	}

	state := appCtx.Store.Snapshot()
	for _, day := range state.Days {
		spots := FormatSpots(day.Spots)
		line := spotsStyle.Render(spots)
		if day.Spots == 0 {
			line = fullStyle.Render(spots)
		}
		fmt.Printf("%s %s\n", dayNameStyle.Render(day.Name), line)
	}
	return nil
}

type DayCmd struct {
	Name    string `arg:"" help:"Day name, e.g. Monday."`
	Offline bool   `help:"Read from the local snapshot cache instead of the API."`
}

func (c *DayCmd) Run(appCtx *Context) error {
	if c.Offline {
		if err := appCtx.LoadOffline(); err != nil {
			return err
		}
	} else if err := appCtx.LoadSchedule(context.Background()); err != nil {
		return err
	}
	appCtx.Store.SelectDay(c.Name)

	state := appCtx.Store.Snapshot()
	appointments := selectors.AppointmentsForDay(state, c.Name)
	if len(appointments) == 0 {
		fmt.Printf("No appointments for %s.\n", c.Name)
		return nil
	}

	for _, appt := range appointments {
		resolved := selectors.ResolveInterview(state, appt.Interview)
		if resolved == nil {
			fmt.Printf("%4d  %-6s  (free)\n", appt.ID, appt.Time)
			continue
		}
		fmt.Printf("%4d  %-6s  %s with %s\n", appt.ID, appt.Time, resolved.Student, resolved.Interviewer.Name)
	}
	fmt.Println()
	fmt.Println(FormatSpots(state.DayByName(c.Name).Spots))
	return nil
}
