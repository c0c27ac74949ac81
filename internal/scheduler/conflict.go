package scheduler

import "github.com/julianstephens/offday/internal/models"

// HasConflict reports whether any two slots on the same day overlap.
// Each slot is compared with the slots already seen for its day, so the cost is
// quadratic in the number of slots per day.
func HasConflict(slots []models.TimeSlot) bool {
	daily := make(map[models.Weekday][]models.Interval, len(models.Weekdays))
	for _, slot := range slots {
		iv := slot.Interval()
		for _, accepted := range daily[slot.Day] {
			if Overlaps(iv, accepted) {
				return true
			}
		}
		daily[slot.Day] = append(daily[slot.Day], iv)
	}
	return false
}
