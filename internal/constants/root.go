package constants

import "time"

// ControllerState represents where the ticker controller is in its lifecycle
type ControllerState int

const (
	AppName            = "paytick"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/paytick/paytick.db"
	DefaultSettingsDir = "~/.config/paytick"
	SettingsFileName   = "config.yaml"
	Version            = "v0.1.0"

	// EnvDBConnection overrides --config with a PostgreSQL connection string
	EnvDBConnection = "PAYTICK_DB_CONNECTION"

	// TickInterval is the period of the earnings poll loop
	TickInterval = time.Second

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "paytick-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.paytick"
	TrayAppExecutable      = "paytick-tray"

	// Reuse choice options
	ChoiceReuse = "Reuse last shift"
	ChoiceReset = "Enter a new shift"
)

// Controller states
const (
	StateIdle ControllerState = iota
	StateAwaitingInput
	StateValidating
	StateRunning
	StateDraining
)

func (s ControllerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateValidating:
		return "validating"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}
