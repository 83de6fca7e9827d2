package system

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpriestly/slotbook/internal/cli"
	"github.com/mpriestly/slotbook/internal/gateway"
	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.LoadSchedule(context.Background()); err != nil {
		return err
	}

	// The live feed is optional: without a configured URL, or if the dial
	// fails, the client falls back to local-only updates.
	var stream *gateway.PushStream
	if appCtx.WSURL != "" {
		var err error
		stream, err = gateway.DialPush(appCtx.WSURL)
		if err != nil {
			logger.Warn("live feed unavailable", "url", appCtx.WSURL, "error", err)
			stream = nil
		} else {
			appCtx.Store.SetLiveSync(true)
			defer stream.Close()
		}
	}

	p := tea.NewProgram(tui.NewModel(appCtx.Store, stream), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
