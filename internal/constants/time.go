package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayTimeFormat is the 12-hour format shown to users and accepted in prompts
	DisplayTimeFormat = "3:04 PM"
)
