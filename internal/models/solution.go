package models

// Choice records the group picked for one course.
type Choice struct {
	Course CourseID `json:"course"`
	Group  GroupID  `json:"group"`
}

// Assignment is an ordered course to group mapping. Order follows the search's course order.
type Assignment []Choice

// With returns a copy of a extended by one choice. The receiver is never modified.
func (a Assignment) With(course CourseID, group GroupID) Assignment {
	next := make(Assignment, len(a), len(a)+1)
	copy(next, a)
	return append(next, Choice{Course: course, Group: group})
}

func (a Assignment) Get(course CourseID) (GroupID, bool) {
	for _, c := range a {
		if c.Course == course {
			return c.Group, true
		}
	}
	return "", false
}

// Map returns the assignment keyed by course.
func (a Assignment) Map() map[CourseID]GroupID {
	m := make(map[CourseID]GroupID, len(a))
	for _, c := range a {
		m[c.Course] = c.Group
	}
	return m
}

// Solution is a complete, conflict-free assignment together with the slots it schedules.
type Solution struct {
	Schedule   []TimeSlot `json:"schedule"`
	Assignment Assignment `json:"assignment"`
}
