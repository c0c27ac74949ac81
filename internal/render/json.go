package render

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/scheduler"
)

// Document is the JSON rendering of a search result.
type Document struct {
	Schedules []ScheduleDoc `json:"schedules"`
	Truncated bool          `json:"truncated,omitempty"`
}

// ScheduleDoc describes one solution. Table maps day to hour of day to the full course
// name, with an empty string for free hours.
type ScheduleDoc struct {
	Schedule map[string]string            `json:"schedule"`
	OffDays  []string                     `json:"offDays"`
	Table    map[string]map[string]string `json:"table"`
}

// NewDocument converts solutions into their JSON form.
func NewDocument(sols []models.Solution, cat models.Catalog, opts GridOptions, truncated bool) Document {
	doc := Document{Schedules: make([]ScheduleDoc, 0, len(sols)), Truncated: truncated}
	hours := opts.hours()

	for _, sol := range sols {
		sd := ScheduleDoc{
			Schedule: make(map[string]string, len(sol.Assignment)),
			OffDays:  []string{},
			Table:    make(map[string]map[string]string, len(models.Weekdays)),
		}
		for _, c := range sol.Assignment {
			sd.Schedule[string(c.Course)] = string(c.Group)
		}
		for _, d := range scheduler.OffDays(sol.Schedule) {
			sd.OffDays = append(sd.OffDays, d.String())
		}

		cells := Cells(sol, cat, opts, func(c models.Choice) string { return string(c.Course) })
		for i, day := range models.Weekdays {
			row := make(map[string]string, len(hours))
			for j, h := range hours {
				text := cells[i][j]
				if text == EmptyCell {
					text = ""
				}
				row[strconv.Itoa(h)] = text
			}
			sd.Table[day.String()] = row
		}
		doc.Schedules = append(doc.Schedules, sd)
	}
	return doc
}

// JSON writes solutions as an indented Document.
func JSON(w io.Writer, sols []models.Solution, cat models.Catalog, opts GridOptions, truncated bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(sols, cat, opts, truncated))
}
