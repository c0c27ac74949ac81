package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

// TimeFormat is the layout used for every timestamp column.
const TimeFormat = time.RFC3339Nano

const patternSeparator = "; "

// CourseRow and GroupRow mirror the catalog_courses and catalog_groups tables.
type CourseRow struct {
	Position int
	CourseID string
}

type GroupRow struct {
	CoursePosition int
	Position       int
	GroupID        string
	Pattern        string
}

// EncodePattern renders a group's meetings as the slot strings users type, joined by "; ".
func EncodePattern(g models.Group) string {
	return strings.Join(validation.FormatPattern(g), patternSeparator)
}

// DecodePattern is the inverse of EncodePattern.
func DecodePattern(id models.GroupID, pattern string) (models.Group, error) {
	var raw []string
	if strings.TrimSpace(pattern) != "" {
		raw = strings.Split(pattern, patternSeparator)
	}
	return validation.ParsePattern(id, raw)
}

// FlattenCatalog converts cat to table rows.
func FlattenCatalog(cat models.Catalog) ([]CourseRow, []GroupRow) {
	courses := make([]CourseRow, 0, len(cat.Courses))
	var groups []GroupRow
	for i, c := range cat.Courses {
		courses = append(courses, CourseRow{Position: i, CourseID: string(c.ID)})
		for j, g := range c.Groups {
			groups = append(groups, GroupRow{
				CoursePosition: i,
				Position:       j,
				GroupID:        string(g.ID),
				Pattern:        EncodePattern(g),
			})
		}
	}
	return courses, groups
}

// AssembleCatalog rebuilds a catalog from rows ordered by position.
func AssembleCatalog(name string, courses []CourseRow, groups []GroupRow) (models.Catalog, error) {
	cat := models.Catalog{Name: name, Courses: make([]models.Course, 0, len(courses))}
	index := make(map[int]int, len(courses))
	for _, row := range courses {
		index[row.Position] = len(cat.Courses)
		cat.Courses = append(cat.Courses, models.Course{ID: models.CourseID(row.CourseID)})
	}

	for _, row := range groups {
		i, ok := index[row.CoursePosition]
		if !ok {
			return models.Catalog{}, fmt.Errorf("group %s references missing course position %d", row.GroupID, row.CoursePosition)
		}
		g, err := DecodePattern(models.GroupID(row.GroupID), row.Pattern)
		if err != nil {
			return models.Catalog{}, fmt.Errorf("course %s: %w", cat.Courses[i].ID, err)
		}
		cat.Courses[i].Groups = append(cat.Courses[i].Groups, g)
	}
	return cat, nil
}

// ParseTime parses a timestamp column. Empty strings yield the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(TimeFormat, s)
}
