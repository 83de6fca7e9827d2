package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mpriestly/slotbook/internal/cli"
	"github.com/mpriestly/slotbook/internal/cli/system"
	"github.com/mpriestly/slotbook/internal/constants"
	"github.com/mpriestly/slotbook/internal/gateway"
	"github.com/mpriestly/slotbook/internal/keyring"
	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/storage"
	"github.com/mpriestly/slotbook/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	APIURL  string `help:"Scheduling API base URL." env:"SLOTBOOK_API_URL" default:"${api_url}"`
	WSURL   string `help:"Live update feed URL (ws:// or wss://). Empty disables live updates." env:"SLOTBOOK_WS_URL"`
	Cache   string `help:"Snapshot cache path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." env:"SLOTBOOK_CACHE" default:"${cache_path}"`
	Debug   bool   `help:"Enable debug logging to stderr." env:"SLOTBOOK_DEBUG"`

	Tui    system.TuiCmd  `cmd:"" help:"Launch the interactive scheduler." default:"1"`
	Days   cli.DaysCmd    `cmd:"" help:"List days with remaining spots."`
	Day    cli.DayCmd     `cmd:"" help:"Show one day's appointment slots."`
	Book   cli.BookCmd    `cmd:"" help:"Book or rebook an appointment slot."`
	Cancel cli.CancelCmd  `cmd:"" help:"Cancel a booked appointment."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Token  struct {
		Set   system.SetTokenCmd   `cmd:"" help:"Store the API token in the OS keyring."`
		Clear system.ClearTokenCmd `cmd:"" help:"Remove the API token from the OS keyring."`
	} `cmd:"" help:"Manage the API token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Interview scheduling client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"api_url":    constants.DefaultAPIURL,
			"cache_path": constants.DefaultCachePath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}

	if strings.HasPrefix(CLI.Cache, "postgres://") || strings.HasPrefix(CLI.Cache, "postgresql://") {
		if storage.HasEmbeddedCredentials(CLI.Cache) {
			fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
			fmt.Fprintf(os.Stderr, "       1. Environment:   export SLOTBOOK_CACHE=\"postgresql://user@host:5432/slotbook\" with PGPASSWORD set\n")
			fmt.Fprintf(os.Stderr, "       2. .pgpass file:  Use a connection string without a password\n")
			os.Exit(1)
		}
	}

	token := apiToken()
	gw := gateway.NewClient(CLI.APIURL, token)

	appCtx := &cli.Context{
		Store:   store.New(gw),
		Gateway: gw,
		Cache:   storage.NewProvider(CLI.Cache),
		APIURL:  CLI.APIURL,
		WSURL:   CLI.WSURL,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// apiToken resolves the API token: environment first, then the OS keyring.
// A missing token is fine against development servers that skip auth.
func apiToken() string {
	if token := os.Getenv("SLOTBOOK_TOKEN"); token != "" {
		return token
	}
	token, err := keyring.GetToken()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("keyring unavailable", "error", err)
		}
		return ""
	}
	return token
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", constants.AppName)
}
