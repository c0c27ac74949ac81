package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

// Draft is the raw text collected by the entry forms. Every course gets the same
// number of groups, named G1, G2, and so on.
type Draft struct {
	Name    string
	Courses []CourseDraft
}

type CourseDraft struct {
	Name string
	// Groups holds one slot string per lecture or lab for every group.
	Groups [][]string
}

// GroupID names the i-th group (zero based) of a course.
func GroupID(i int) models.GroupID {
	return models.GroupID("G" + strconv.Itoa(i+1))
}

// NewCourseDraft sizes a course for the given number of groups and lectures.
func NewCourseDraft(name string, groups, lectures int) CourseDraft {
	c := CourseDraft{Name: name, Groups: make([][]string, groups)}
	for i := range c.Groups {
		c.Groups[i] = make([]string, lectures)
	}
	return c
}

// Catalog converts the draft into a catalog, normalising every slot string.
func (d Draft) Catalog() (models.Catalog, error) {
	cat := models.Catalog{Name: strings.TrimSpace(d.Name), Courses: make([]models.Course, 0, len(d.Courses))}
	for _, cd := range d.Courses {
		course := models.Course{ID: models.CourseID(strings.TrimSpace(cd.Name))}
		for i, raw := range cd.Groups {
			g, err := validation.ParsePattern(GroupID(i), raw)
			if err != nil {
				return models.Catalog{}, fmt.Errorf("course %s: %w", course.ID, err)
			}
			course.Groups = append(course.Groups, g)
		}
		cat.Courses = append(cat.Courses, course)
	}
	return cat, nil
}
