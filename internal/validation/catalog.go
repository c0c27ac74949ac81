package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/scheduler"
)

// ProblemType identifies the kind of catalog problem.
type ProblemType string

const (
	ProblemEmptyCatalog    ProblemType = "empty_catalog"
	ProblemMissingID       ProblemType = "missing_id"
	ProblemDuplicateCourse ProblemType = "duplicate_course"
	ProblemDuplicateGroup  ProblemType = "duplicate_group"
	ProblemNoUsableGroups  ProblemType = "no_usable_groups"
	ProblemInvalidSlot     ProblemType = "invalid_slot"
	ProblemSelfConflict    ProblemType = "self_conflict"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding about a catalog.
type Problem struct {
	Type        ProblemType
	Severity    Severity
	Description string
	Course      models.CourseID
	Group       models.GroupID
}

// Result collects every problem found in a catalog.
type Result struct {
	Problems []Problem
}

func (r *Result) add(p Problem) {
	r.Problems = append(r.Problems, p)
}

// HasProblems returns true if anything was reported, warnings included.
func (r Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// HasErrors returns true if at least one problem would make the catalog unusable.
func (r Result) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all problems.
func (r Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "- [%s] %s\n", p.Severity, p.Description)
	}
	return b.String()
}

// ValidateCatalog reports structural problems in catalog. A catalog whose result has no
// errors is safe to hand to the scheduler. Courses without a usable group are warnings
// because the search handles them by returning no solutions.
func ValidateCatalog(catalog models.Catalog) Result {
	result := Result{}

	if len(catalog.Courses) == 0 {
		result.add(Problem{
			Type:        ProblemEmptyCatalog,
			Severity:    SeverityError,
			Description: "Catalog has no courses",
		})
		return result
	}

	seenCourses := make(map[models.CourseID]bool, len(catalog.Courses))
	for i, course := range catalog.Courses {
		if strings.TrimSpace(string(course.ID)) == "" {
			result.add(Problem{
				Type:        ProblemMissingID,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Course #%d has no name", i+1),
			})
		} else if seenCourses[course.ID] {
			result.add(Problem{
				Type:        ProblemDuplicateCourse,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Duplicate course: %q", course.ID),
				Course:      course.ID,
			})
		}
		seenCourses[course.ID] = true

		validateGroups(&result, course)
	}

	return result
}

func validateGroups(result *Result, course models.Course) {
	usable := 0
	seenGroups := make(map[models.GroupID]bool, len(course.Groups))

	for i, group := range course.Groups {
		if strings.TrimSpace(string(group.ID)) == "" {
			result.add(Problem{
				Type:        ProblemMissingID,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Course %q: group #%d has no name", course.ID, i+1),
				Course:      course.ID,
			})
		} else if seenGroups[group.ID] {
			result.add(Problem{
				Type:        ProblemDuplicateGroup,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Course %q: duplicate group %q", course.ID, group.ID),
				Course:      course.ID,
				Group:       group.ID,
			})
		}
		seenGroups[group.ID] = true

		if !group.Usable() {
			continue
		}
		usable++

		for _, slot := range group.Slots {
			if !slot.Valid() {
				result.add(Problem{
					Type:     ProblemInvalidSlot,
					Severity: SeverityError,
					Description: fmt.Sprintf("Course %q group %q: invalid slot (day %d, %d-%d)",
						course.ID, group.ID, int(slot.Day), int(slot.Start), int(slot.End)),
					Course: course.ID,
					Group:  group.ID,
				})
			}
		}

		// A group that overlaps itself can never be scheduled.
		if scheduler.HasConflict(group.Slots) {
			result.add(Problem{
				Type:        ProblemSelfConflict,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Course %q group %q has overlapping meetings and will never be selected", course.ID, group.ID),
				Course:      course.ID,
				Group:       group.ID,
			})
		}
	}

	if usable == 0 {
		result.add(Problem{
			Type:        ProblemNoUsableGroups,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("Course %q has no selectable groups; no schedule can include it", course.ID),
			Course:      course.ID,
		})
	}
}
