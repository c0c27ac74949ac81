package models

type CourseID string

type GroupID string

// PlaceholderPattern is the raw pattern entered for a group that has no fixed meetings.
const PlaceholderPattern = "-"

// Group is one section of a course with its weekly meeting pattern.
type Group struct {
	ID          GroupID    `json:"id"`
	Slots       []TimeSlot `json:"slots"`
	Placeholder bool       `json:"placeholder,omitempty"`
}

// Usable reports whether the group may be selected by the search.
func (g Group) Usable() bool {
	return !g.Placeholder
}

type Course struct {
	ID     CourseID `json:"id"`
	Groups []Group  `json:"groups"`
}

// UsableGroups returns the selectable groups in catalog order.
func (c Course) UsableGroups() []Group {
	groups := make([]Group, 0, len(c.Groups))
	for _, g := range c.Groups {
		if g.Usable() {
			groups = append(groups, g)
		}
	}
	return groups
}

// Catalog holds every course offered for a term, in the order they were entered.
type Catalog struct {
	Name    string   `json:"name"`
	Courses []Course `json:"courses"`
}

// CourseOrder returns the course IDs in catalog order.
func (c Catalog) CourseOrder() []CourseID {
	order := make([]CourseID, len(c.Courses))
	for i, course := range c.Courses {
		order[i] = course.ID
	}
	return order
}

func (c Catalog) Course(id CourseID) (Course, bool) {
	for _, course := range c.Courses {
		if course.ID == id {
			return course, true
		}
	}
	return Course{}, false
}

func (c Catalog) Group(course CourseID, group GroupID) (Group, bool) {
	crs, ok := c.Course(course)
	if !ok {
		return Group{}, false
	}
	for _, g := range crs.Groups {
		if g.ID == group {
			return g, true
		}
	}
	return Group{}, false
}
