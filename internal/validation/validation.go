package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/utils"
)

// ValidateSalary parses an annual salary such as "52000", "52,000" or "$52,000.50".
func ValidateSalary(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimLeftFunc(cleaned, func(r rune) bool {
		return unicode.Is(unicode.Sc, r)
	})
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), ",", "")
	if cleaned == "" {
		return decimal.Zero, &errors.InvalidSalaryError{Input: text}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, &errors.InvalidSalaryError{Input: text}
	}
	return amount, nil
}

// ValidateCurrency normalizes a currency label. Any non-empty label is accepted.
func ValidateCurrency(text string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(text))
	if code == "" {
		return "", errors.ErrInvalidCurrency
	}
	return code, nil
}

// ValidateTimeWindow parses both ends of a shift and requires end to be after start
func ValidateTimeWindow(startText, endText string) (models.TimeOfDay, models.TimeOfDay, error) {
	start, err := utils.ParseTimeOfDay(startText)
	if err != nil {
		return models.TimeOfDay{}, models.TimeOfDay{}, err
	}
	end, err := utils.ParseTimeOfDay(endText)
	if err != nil {
		return models.TimeOfDay{}, models.TimeOfDay{}, err
	}
	if end.Minutes() <= start.Minutes() {
		return models.TimeOfDay{}, models.TimeOfDay{}, &errors.InvertedWindowError{
			Start: start.String(),
			End:   end.String(),
		}
	}
	return start, end, nil
}

// ValidateSettings checks that workday settings leave at least one working day
// and a usable cooldown.
func ValidateSettings(s models.Settings) error {
	if s.AnnualWorkdays <= 0 {
		return fmt.Errorf("%w: annual workdays must be positive, got %d", errors.ErrInvalidSettings, s.AnnualWorkdays)
	}
	if s.DaysOff < 0 {
		return fmt.Errorf("%w: days off cannot be negative, got %d", errors.ErrInvalidSettings, s.DaysOff)
	}
	if s.DaysActivelyWorking() <= 0 {
		return fmt.Errorf("%w: %d workdays minus %d days off leaves no working days",
			errors.ErrInvalidSettings, s.AnnualWorkdays, s.DaysOff)
	}
	if s.CooldownMin <= 0 {
		return fmt.Errorf("%w: cooldown must be at least one minute, got %d", errors.ErrInvalidSettings, s.CooldownMin)
	}
	return nil
}
