package system

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mpriestly/slotbook/internal/keyring"
)

type SetTokenCmd struct{}

func (c *SetTokenCmd) Run() error {
	fmt.Print("API token: ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	if err := keyring.SetToken(string(token)); err != nil {
		return err
	}
	fmt.Println("Token stored in OS keyring.")
	return nil
}

type ClearTokenCmd struct{}

func (c *ClearTokenCmd) Run() error {
	if err := keyring.DeleteToken(); err != nil {
		return err
	}
	fmt.Println("Token removed from OS keyring.")
	return nil
}
