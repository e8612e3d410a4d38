package models

import (
	"time"

	"github.com/julianstephens/paytick/internal/constants"
)

// DefaultSettings returns settings populated with default values
func DefaultSettings() Settings {
	return Settings{
		AnnualWorkdays:       constants.DefaultAnnualWorkdays,
		DaysOff:              constants.DefaultDaysOff,
		CooldownMin:          constants.DefaultCooldownMin,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// DaysActivelyWorking is annual workdays minus days off
func (s Settings) DaysActivelyWorking() int {
	return s.AnnualWorkdays - s.DaysOff
}

// Cooldown is how long the final amount stays on screen after the shift
func (s Settings) Cooldown() time.Duration {
	return time.Duration(s.CooldownMin) * time.Minute
}
