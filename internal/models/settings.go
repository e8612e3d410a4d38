package models

// Settings represents user-editable settings loaded from config.yaml
type Settings struct {
	AnnualWorkdays       int  `yaml:"annual_workdays"`       // approximate working days in a year
	DaysOff              int  `yaml:"days_off"`              // vacation, holidays and sick days
	CooldownMin          int  `yaml:"cooldown_min"`          // minutes the final amount stays up after the shift ends
	NotificationsEnabled bool `yaml:"notifications_enabled"` // send a desktop notification when the shift ends
	Debug                bool `yaml:"debug"`                 // verbose logging
}
