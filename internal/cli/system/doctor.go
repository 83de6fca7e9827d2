package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/mpriestly/slotbook/internal/cli"
	"github.com/mpriestly/slotbook/internal/constants"
	"github.com/mpriestly/slotbook/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(appCtx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: API reachable
	if err := checkAPIReachable(appCtx); err != nil {
		fmt.Printf("❌ API reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API reachable: OK\n")
	}

	// Check 2: Snapshot cache usable
	if err := checkCache(appCtx); err != nil {
		fmt.Printf("⚠ Snapshot cache: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Snapshot cache: OK\n")
	}

	// Check 3: Keyring available
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; pass the API token via SLOTBOOK_TOKEN instead\n")
	}

	// Check 4: Duplicate running instance
	if n, err := countOtherInstances(); err != nil {
		fmt.Printf("⚠ Process check: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else if n > 0 {
		fmt.Printf("⚠ Process check: WARNING\n")
		fmt.Printf("   %d other %s process(es) running\n", n, constants.AppName)
	} else {
		fmt.Printf("✓ Process check: OK\n")
	}

	// Check 5: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkAPIReachable(appCtx *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := appCtx.Gateway.GetDays(ctx)
	return err
}

func checkCache(appCtx *cli.Context) error {
	if appCtx.Cache == nil {
		return fmt.Errorf("no cache configured")
	}
	if err := appCtx.Cache.Init(); err != nil {
		return err
	}
	return nil
}

func countOtherInstances() (int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	count := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p.Executable()), ".exe")
		if name == constants.AppName {
			count++
		}
	}
	return count, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("timezone %q not loadable: %w", now.Location(), err)
	}
	return nil
}
