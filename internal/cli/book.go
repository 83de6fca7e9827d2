package cli

import (
	"context"
	"fmt"

	"github.com/mpriestly/slotbook/internal/models"
	"github.com/mpriestly/slotbook/internal/selectors"
)

type BookCmd struct {
	Appointment int    `arg:"" help:"Appointment slot id."`
	Student     string `short:"s" help:"Student name." required:""`
	Interviewer int    `short:"i" help:"Interviewer id." required:""`
}

func (c *BookCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.LoadSchedule(ctx); err != nil {
		return err
	}

	interview := models.Interview{Student: c.Student, InterviewerID: c.Interviewer}
	if err := appCtx.Store.BookInterview(ctx, c.Appointment, interview); err != nil {
		return err
	}

	state := appCtx.Store.Snapshot()
	resolved := selectors.ResolveInterview(state, &interview)
	if day := state.OwningDay(c.Appointment); day != nil {
		fmt.Printf("Booked %s with %s (slot %d, %s, %s)\n",
			resolved.Student, resolved.Interviewer.Name, c.Appointment, day.Name, FormatSpots(day.Spots))
	} else {
		fmt.Printf("Booked %s with %s (slot %d)\n", resolved.Student, resolved.Interviewer.Name, c.Appointment)
	}
	return nil
}

type CancelCmd struct {
	Appointment int  `arg:"" help:"Appointment slot id."`
	Yes         bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CancelCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.LoadSchedule(ctx); err != nil {
		return err
	}

	state := appCtx.Store.Snapshot()
	appt, ok := state.Appointments[c.Appointment]
	if !ok {
		return fmt.Errorf("unknown appointment %d", c.Appointment)
	}
	if appt.Interview == nil {
		return fmt.Errorf("appointment %d has no interview to cancel", c.Appointment)
	}

	if !c.Yes {
		resolved := selectors.ResolveInterview(state, appt.Interview)
		fmt.Printf("Cancel %s's interview with %s at %s? [y/N] ",
			resolved.Student, resolved.Interviewer.Name, appt.Time)
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || (answer != "y" && answer != "Y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := appCtx.Store.CancelInterview(ctx, c.Appointment); err != nil {
		return err
	}

	if day := appCtx.Store.Snapshot().OwningDay(c.Appointment); day != nil {
		fmt.Printf("Cancelled slot %d (%s, %s)\n", c.Appointment, day.Name, FormatSpots(day.Spots))
	} else {
		fmt.Printf("Cancelled slot %d\n", c.Appointment)
	}
	return nil
}
