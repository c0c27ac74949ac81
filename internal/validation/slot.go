package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/scheduler"
)

var (
	ErrInvalidFormat = errors.New("invalid slot format")
	ErrInvalidRange  = errors.New("slot ends before it starts")
)

// FormatHint is shown to users whenever a slot string is rejected.
const FormatHint = "Day - StartTime / EndTime (e.g., Monday - 8:00AM / 10:00AM)"

var slotPattern = regexp.MustCompile(
	`(?i)^(Sunday|Monday|Tuesday|Wednesday|Thursday)\s*-\s*(\d{1,2}:\d{2}[AP]M)\s*/\s*(\d{1,2}:\d{2}[AP]M)$`,
)

// NormalizeSlot checks raw against the slot grammar and returns it in canonical form,
// e.g. "monday-8:00am/10:00am" becomes "Monday - 8:00AM / 10:00AM".
func NormalizeSlot(raw string) (string, error) {
	m := slotPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", fmt.Errorf("%w: %q, expected %s", ErrInvalidFormat, raw, FormatHint)
	}
	day, err := models.ParseWeekday(m[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fmt.Sprintf("%s - %s / %s", day, strings.ToUpper(m[2]), strings.ToUpper(m[3])), nil
}

// ParseSlot normalises raw and converts it to a TimeSlot.
func ParseSlot(raw string) (models.TimeSlot, error) {
	m := slotPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return models.TimeSlot{}, fmt.Errorf("%w: %q, expected %s", ErrInvalidFormat, raw, FormatHint)
	}

	day, err := models.ParseWeekday(m[1])
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	start, err := scheduler.ParseClockTime(strings.ToUpper(m[2]))
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	end, err := scheduler.ParseClockTime(strings.ToUpper(m[3]))
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if start >= end {
		return models.TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
	}

	return models.TimeSlot{Day: day, Start: start, End: end}, nil
}

// ParsePattern builds a group from its raw slot strings. An empty pattern, or one
// containing the "-" sentinel anywhere, yields a placeholder group that the search
// never selects.
func ParsePattern(id models.GroupID, raw []string) (models.Group, error) {
	g := models.Group{ID: id}
	if isPlaceholder(raw) {
		g.Placeholder = true
		return g, nil
	}

	g.Slots = make([]models.TimeSlot, 0, len(raw))
	for i, entry := range raw {
		slot, err := ParseSlot(entry)
		if err != nil {
			return models.Group{}, fmt.Errorf("group %s, slot %d: %w", id, i+1, err)
		}
		g.Slots = append(g.Slots, slot)
	}
	return g, nil
}

// FormatPattern is the inverse of ParsePattern.
func FormatPattern(g models.Group) []string {
	if g.Placeholder {
		return []string{models.PlaceholderPattern}
	}
	out := make([]string, len(g.Slots))
	for i, s := range g.Slots {
		out[i] = s.String()
	}
	return out
}

func isPlaceholder(raw []string) bool {
	if len(raw) == 0 {
		return true
	}
	for _, entry := range raw {
		if strings.TrimSpace(entry) == models.PlaceholderPattern {
			return true
		}
	}
	return false
}
