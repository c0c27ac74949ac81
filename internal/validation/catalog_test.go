package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/offday/internal/models"
)

func sampleCatalog() models.Catalog {
	return models.Catalog{
		Name: "fall",
		Courses: []models.Course{
			{ID: "Math", Groups: []models.Group{
				{ID: "G1", Slots: []models.TimeSlot{{Day: models.Sunday, Start: 480, End: 600}}},
				{ID: "G2", Slots: []models.TimeSlot{{Day: models.Monday, Start: 480, End: 600}}},
			}},
			{ID: "Physics Lab", Groups: []models.Group{
				{ID: "G1", Slots: []models.TimeSlot{{Day: models.Tuesday, Start: 600, End: 720}}},
				{ID: "G2", Placeholder: true},
			}},
		},
	}
}

func hasProblem(r Result, typ ProblemType) bool {
	for _, p := range r.Problems {
		if p.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateCatalog_Clean(t *testing.T) {
	result := ValidateCatalog(sampleCatalog())
	if result.HasProblems() {
		t.Errorf("expected no problems, got:\n%s", result.FormatReport())
	}
	if result.FormatReport() != "No problems detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *models.Catalog)
		want     ProblemType
		severity Severity
	}{
		{
			name:     "empty catalog",
			mutate:   func(c *models.Catalog) { c.Courses = nil },
			want:     ProblemEmptyCatalog,
			severity: SeverityError,
		},
		{
			name: "duplicate course",
			mutate: func(c *models.Catalog) {
				c.Courses = append(c.Courses, c.Courses[0])
			},
			want:     ProblemDuplicateCourse,
			severity: SeverityError,
		},
		{
			name:     "unnamed course",
			mutate:   func(c *models.Catalog) { c.Courses[0].ID = "  " },
			want:     ProblemMissingID,
			severity: SeverityError,
		},
		{
			name:     "duplicate group",
			mutate:   func(c *models.Catalog) { c.Courses[0].Groups[1].ID = "G1" },
			want:     ProblemDuplicateGroup,
			severity: SeverityError,
		},
		{
			name: "inverted slot",
			mutate: func(c *models.Catalog) {
				c.Courses[0].Groups[0].Slots[0] = models.TimeSlot{Day: models.Sunday, Start: 600, End: 480}
			},
			want:     ProblemInvalidSlot,
			severity: SeverityError,
		},
		{
			name: "no usable groups",
			mutate: func(c *models.Catalog) {
				c.Courses[1].Groups[0].Placeholder = true
			},
			want:     ProblemNoUsableGroups,
			severity: SeverityWarning,
		},
		{
			name: "self conflicting group",
			mutate: func(c *models.Catalog) {
				c.Courses[0].Groups[0].Slots = append(c.Courses[0].Groups[0].Slots,
					models.TimeSlot{Day: models.Sunday, Start: 540, End: 660})
			},
			want:     ProblemSelfConflict,
			severity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := sampleCatalog()
			tt.mutate(&catalog)

			result := ValidateCatalog(catalog)
			if !hasProblem(result, tt.want) {
				t.Fatalf("expected %s, got:\n%s", tt.want, result.FormatReport())
			}
			if got := result.HasErrors(); got != (tt.severity == SeverityError) {
				t.Errorf("HasErrors() = %v for a %s", got, tt.severity)
			}
		})
	}
}

func TestResult_FormatReport(t *testing.T) {
	catalog := sampleCatalog()
	catalog.Courses[1].Groups[0].Placeholder = true

	report := ValidateCatalog(catalog).FormatReport()
	if !strings.HasPrefix(report, "Problems detected:") {
		t.Errorf("report should start with a heading, got %q", report)
	}
	if !strings.Contains(report, "[warning]") || !strings.Contains(report, "Physics Lab") {
		t.Errorf("report should name the course and severity, got %q", report)
	}
}
