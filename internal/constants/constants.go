package constants

const (
	AppName = "slotbook"
	Version = "v0.2.0"

	// DefaultKeyringUser is the account name the API token is stored under in
	// the OS keyring.
	DefaultKeyringUser = "api-token"

	// DefaultCachePath is where the SQLite snapshot cache lives unless
	// overridden by --cache or SLOTBOOK_CACHE.
	DefaultCachePath = "~/.config/slotbook/slotbook.db"

	// DefaultAPIURL matches the scheduler API's development default.
	DefaultAPIURL = "http://localhost:8001"
)
