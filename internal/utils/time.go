package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
)

// clockPattern accepts "9:05 AM", "09:05pm", "12:00 am": an hour of 1-12, two minute digits,
// an optional space and a meridiem in either case.
var clockPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]) ?([AaPp][Mm])$`)

// ParseTimeOfDay parses a 12-hour clock string into a 24-hour TimeOfDay.
func ParseTimeOfDay(text string) (models.TimeOfDay, error) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return models.TimeOfDay{}, &errors.FormatError{Input: text}
	}

	// The pattern guarantees both groups are small decimal numbers
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	switch strings.ToUpper(match[3]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return models.TimeOfDay{Hour: hour, Minute: minute}, nil
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
