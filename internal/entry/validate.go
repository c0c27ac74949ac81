package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

// ValidateCount accepts a positive whole number.
func ValidateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("please enter a whole number")
	}
	if n <= 0 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// ValidateOffDays accepts any integer. Values outside 0-5 are allowed and simply
// produce no schedules.
func ValidateOffDays(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("please enter a valid number for OFF days")
	}
	return nil
}

// ValidateSlot accepts a slot string or the "-" placeholder for a group that does
// not meet.
func ValidateSlot(s string) error {
	if strings.TrimSpace(s) == models.PlaceholderPattern {
		return nil
	}
	if _, err := validation.ParseSlot(s); err != nil {
		return fmt.Errorf("invalid format, please enter as: %s", validation.FormatHint)
	}
	return nil
}

// ValidateCourseName rejects blank names and names already used in the draft.
func ValidateCourseName(taken []string) func(string) error {
	return func(s string) error {
		name := strings.TrimSpace(s)
		if name == "" {
			return fmt.Errorf("course name cannot be empty")
		}
		for _, t := range taken {
			if strings.TrimSpace(t) == name {
				return fmt.Errorf("course %q was already entered", name)
			}
		}
		return nil
	}
}
