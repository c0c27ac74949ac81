package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/julianstephens/offday/internal/logger"
	"github.com/julianstephens/offday/internal/models"
)

var (
	ErrUnknownCourse   = errors.New("unknown course")
	ErrDuplicateCourse = errors.New("course listed more than once")
	ErrInvalidSlot     = errors.New("invalid time slot")
)

// Result is the outcome of a search. Truncated is set when a branch cap, timeout or
// cancellation stopped the search before the whole space was explored; Solutions then
// holds what was found up to that point.
type Result struct {
	Solutions []models.Solution
	Truncated bool
	Branches  int64
}

type Option func(*Scheduler)

// WithMaxBranches caps the number of search nodes visited. Zero means no cap.
func WithMaxBranches(n int64) Option {
	return func(s *Scheduler) {
		s.maxBranches = n
	}
}

// WithTimeout bounds the wall-clock time of a single search. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// WithParallel explores the first course's groups with up to n goroutines.
// Values below 2 keep the search on the calling goroutine.
func WithParallel(n int) Option {
	return func(s *Scheduler) {
		s.workers = n
	}
}

type Scheduler struct {
	maxBranches int64
	timeout     time.Duration
	workers     int
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search enumerates every assignment of one usable group per course, taken in the given
// course order, that has no overlapping slots and leaves exactly targetOffDays weekdays free.
// Courses and groups are visited in caller order, so identical inputs yield identical output.
// An empty result is not an error.
func (s *Scheduler) Search(ctx context.Context, catalog models.Catalog, order []models.CourseID, targetOffDays int) (Result, error) {
	courses, err := resolveCourses(catalog, order)
	if err != nil {
		return Result{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	run := &search{
		ctx:         ctx,
		courses:     courses,
		target:      targetOffDays,
		maxBranches: s.maxBranches,
	}

	start := time.Now()
	var solutions []models.Solution
	if s.workers > 1 && len(courses) > 0 {
		solutions = run.parallel(s.workers)
	} else {
		solutions = run.build(0, nil, nil)
	}

	res := Result{
		Solutions: solutions,
		Truncated: run.truncated.Load(),
		Branches:  run.branches.Load(),
	}
	logger.Debug("Schedule search finished",
		"courses", len(courses),
		"target", targetOffDays,
		"solutions", len(res.Solutions),
		"branches", res.Branches,
		"truncated", res.Truncated,
		"elapsed", time.Since(start),
	)
	return res, nil
}

// resolveCourses looks up the courses named in order, keeping only usable groups, and checks
// every slot reaching the search.
func resolveCourses(catalog models.Catalog, order []models.CourseID) ([]models.Course, error) {
	seen := make(map[models.CourseID]bool, len(order))
	courses := make([]models.Course, 0, len(order))
	for _, id := range order {
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCourse, id)
		}
		seen[id] = true

		course, ok := catalog.Course(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCourse, id)
		}
		groups := course.UsableGroups()
		for _, g := range groups {
			for _, slot := range g.Slots {
				if !slot.Valid() {
					return nil, fmt.Errorf("%w: %s %s has %+v", ErrInvalidSlot, course.ID, g.ID, slot)
				}
			}
		}
		courses = append(courses, models.Course{ID: course.ID, Groups: groups})
	}
	return courses, nil
}

type search struct {
	ctx         context.Context
	courses     []models.Course
	target      int
	maxBranches int64

	branches  atomic.Int64
	truncated atomic.Bool
}

// visit counts a search node and reports whether the search may continue.
func (r *search) visit() bool {
	if r.truncated.Load() {
		return false
	}
	n := r.branches.Add(1)
	if r.maxBranches > 0 && n > r.maxBranches {
		r.truncated.Store(true)
		return false
	}
	if r.ctx.Err() != nil {
		r.truncated.Store(true)
		return false
	}
	return true
}

// build explores every completion of the branch described by schedule and assignment,
// starting at courses[depth]. Both arguments belong to the caller's branch and are never
// modified; extensions are always fresh copies.
func (r *search) build(depth int, schedule []models.TimeSlot, assignment models.Assignment) []models.Solution {
	if !r.visit() {
		return nil
	}

	if depth == len(r.courses) {
		if CountOffDays(schedule) == r.target {
			return []models.Solution{{Schedule: schedule, Assignment: assignment}}
		}
		return nil
	}

	course := r.courses[depth]
	var solutions []models.Solution
	for _, group := range course.Groups {
		solutions = append(solutions, r.choose(depth, schedule, assignment, group)...)
		if r.truncated.Load() {
			break
		}
	}
	return solutions
}

// choose tries group for courses[depth]; a conflict prunes the whole branch.
func (r *search) choose(depth int, schedule []models.TimeSlot, assignment models.Assignment, group models.Group) []models.Solution {
	next := extend(schedule, group.Slots)
	if HasConflict(next) {
		return nil
	}
	return r.build(depth+1, next, assignment.With(r.courses[depth].ID, group.ID))
}

// parallel fans the first course's groups out to workers and concatenates their results
// in group order.
func (r *search) parallel(workers int) []models.Solution {
	if !r.visit() {
		return nil
	}
	mapper := iter.Mapper[models.Group, []models.Solution]{MaxGoroutines: workers}
	parts := mapper.Map(r.courses[0].Groups, func(g *models.Group) []models.Solution {
		return r.choose(0, nil, nil, *g)
	})

	var solutions []models.Solution
	for _, part := range parts {
		solutions = append(solutions, part...)
	}
	return solutions
}

func extend(schedule, slots []models.TimeSlot) []models.TimeSlot {
	next := make([]models.TimeSlot, 0, len(schedule)+len(slots))
	next = append(next, schedule...)
	return append(next, slots...)
}
