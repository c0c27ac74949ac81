package scheduler

import "github.com/julianstephens/offday/internal/models"

// CountOffDays returns how many weekdays carry no slot at all.
func CountOffDays(slots []models.TimeSlot) int {
	used := make(map[models.Weekday]struct{}, len(models.Weekdays))
	for _, slot := range slots {
		if slot.Day.Valid() {
			used[slot.Day] = struct{}{}
		}
	}
	return len(models.Weekdays) - len(used)
}

// OffDays lists the free weekdays in week order.
func OffDays(slots []models.TimeSlot) []models.Weekday {
	used := make(map[models.Weekday]bool, len(models.Weekdays))
	for _, slot := range slots {
		used[slot.Day] = true
	}
	var off []models.Weekday
	for _, d := range models.Weekdays {
		if !used[d] {
			off = append(off, d)
		}
	}
	return off
}
