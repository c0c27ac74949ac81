package entry

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = huh.ErrUserAborted

// Options tunes how forms are displayed.
type Options struct {
	// Accessible switches huh to plain line prompts, for screen readers and
	// terminals without cursor control.
	Accessible bool
}

func (o Options) run(ctx context.Context, form *huh.Form) error {
	return form.
		WithTheme(huh.ThemeDracula()).
		WithAccessible(o.Accessible).
		RunWithContext(ctx)
}

// NewCatalog walks the user through entering a catalog: course and group counts
// first, then each course's name and lecture count, then every slot string.
func NewCatalog(ctx context.Context, name string, opts Options) (models.Catalog, error) {
	var numCourses, numGroups string
	err := opts.run(ctx, huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("New catalog %q", name)).
				Description("Enter times in format: "+validation.FormatHint),
			huh.NewInput().
				Title("Number of courses").
				Value(&numCourses).
				Validate(ValidateCount),
			huh.NewInput().
				Title("Number of groups per course").
				Value(&numGroups).
				Validate(ValidateCount),
		),
	))
	if err != nil {
		return models.Catalog{}, err
	}

	courses, _ := strconv.Atoi(strings.TrimSpace(numCourses))
	groups, _ := strconv.Atoi(strings.TrimSpace(numGroups))
	draft := Draft{Name: name}

	for i := 0; i < courses; i++ {
		cd, err := promptCourse(ctx, opts, i+1, groups, draft)
		if err != nil {
			return models.Catalog{}, err
		}
		draft.Courses = append(draft.Courses, cd)
		logger.Debug("Course entered", "course", cd.Name, "groups", groups)
	}

	return draft.Catalog()
}

func promptCourse(ctx context.Context, opts Options, n, groups int, draft Draft) (CourseDraft, error) {
	taken := make([]string, len(draft.Courses))
	for i, c := range draft.Courses {
		taken[i] = c.Name
	}

	var name, numLectures string
	err := opts.run(ctx, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Course %d name", n)).
				Value(&name).
				Validate(ValidateCourseName(taken)),
			huh.NewInput().
				Title("Number of separate lectures/labs").
				Value(&numLectures).
				Validate(ValidateCount),
		),
	))
	if err != nil {
		return CourseDraft{}, err
	}

	lectures, _ := strconv.Atoi(strings.TrimSpace(numLectures))
	cd := NewCourseDraft(strings.TrimSpace(name), groups, lectures)

	fields := make([]*huh.Group, 0, groups)
	for g := range cd.Groups {
		inputs := make([]huh.Field, 0, lectures)
		for l := range cd.Groups[g] {
			inputs = append(inputs, huh.NewInput().
				Title(fmt.Sprintf("Lecture/Lab %d", l+1)).
				Placeholder("Monday - 8:00AM / 10:00AM").
				Value(&cd.Groups[g][l]).
				Validate(ValidateSlot))
		}
		fields = append(fields, huh.NewGroup(inputs...).
			Title(fmt.Sprintf("%s: times for group %s", cd.Name, GroupID(g))).
			Description("Enter - if this group is not offered"))
	}
	if err := opts.run(ctx, huh.NewForm(fields...)); err != nil {
		return CourseDraft{}, err
	}
	return cd, nil
}

// OffDays asks for the number of OFF days wanted, re-prompting until the answer is a
// number.
func OffDays(ctx context.Context, opts Options) (int, error) {
	var raw string
	err := opts.run(ctx, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of OFF days desired").
				Value(&raw).
				Validate(ValidateOffDays),
		),
	))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

// Again asks whether to try another number of OFF days.
func Again(ctx context.Context, opts Options) (bool, error) {
	again := true
	err := opts.run(ctx, huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Try another number of OFF days?").
				Affirmative("Yes").
				Negative("Quit").
				Value(&again),
		),
	))
	return again, err
}
