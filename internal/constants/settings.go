package constants

// Default Settings Values
const (
	DefaultAnnualWorkdays       = 261
	DefaultDaysOff              = 26
	DefaultCooldownMin          = 10
	DefaultNotificationsEnabled = true
)
