package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/offday/internal/constants"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/scheduler"
)

// EmptyCell marks an hour with no class.
const EmptyCell = "-"

// GridOptions bounds the hourly columns: StartHour through EndHour-1.
type GridOptions struct {
	StartHour int
	EndHour   int
}

func DefaultGridOptions() GridOptions {
	return GridOptions{
		StartHour: constants.DefaultGridStartHour,
		EndHour:   constants.DefaultGridEndHour,
	}
}

// DefaultJSONOptions is the hour window of JSON tables, 8:00 through the 17:00 bucket.
func DefaultJSONOptions() GridOptions {
	return GridOptions{
		StartHour: constants.DefaultGridStartHour,
		EndHour:   constants.DefaultJSONEndHour,
	}
}

func (o GridOptions) hours() []int {
	hours := make([]int, 0, o.EndHour-o.StartHour)
	for h := o.StartHour; h < o.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// HourLabel names the bucket starting at hour h, e.g. "8:00-9:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%d:00-%d:00", h, h+1)
}

// CellLabel is the short text shown for a course in the grid: the first word of the
// course name, " L" for labs, then the group.
func CellLabel(course models.CourseID, group models.GroupID) string {
	name := string(course)
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}
	lab := ""
	if strings.Contains(string(course), "Lab") {
		lab = " L"
	}
	return fmt.Sprintf("%s%s %s", name, lab, group)
}

// Cells lays a solution out as weekday rows of hourly buckets. A slot fills bucket h when
// start/60 <= h < end/60; buckets outside the options' window are dropped. label picks the
// text for each course.
func Cells(sol models.Solution, cat models.Catalog, opts GridOptions, label func(models.Choice) string) [][]string {
	hours := opts.hours()
	cells := make([][]string, len(models.Weekdays))
	for i := range cells {
		cells[i] = make([]string, len(hours))
		for j := range cells[i] {
			cells[i][j] = EmptyCell
		}
	}

	for _, choice := range sol.Assignment {
		group, ok := cat.Group(choice.Course, choice.Group)
		if !ok {
			continue
		}
		text := label(choice)
		for _, slot := range group.Slots {
			if !slot.Day.Valid() {
				continue
			}
			for h := slot.Start.Hour(); h < slot.End.Hour(); h++ {
				if h < opts.StartHour || h >= opts.EndHour {
					continue
				}
				cells[slot.Day][h-opts.StartHour] = text
			}
		}
	}
	return cells
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	dayStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	offDayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Grid renders a solution as a day-by-hour table.
func Grid(sol models.Solution, cat models.Catalog, opts GridOptions) string {
	cells := Cells(sol, cat, opts, func(c models.Choice) string {
		return CellLabel(c.Course, c.Group)
	})

	off := make(map[models.Weekday]bool)
	for _, d := range scheduler.OffDays(sol.Schedule) {
		off[d] = true
	}

	headers := []string{"Day"}
	for _, h := range opts.hours() {
		headers = append(headers, HourLabel(h))
	}

	rows := make([][]string, len(models.Weekdays))
	for i, day := range models.Weekdays {
		rows[i] = append([]string{day.String()}, cells[i]...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 && off[models.Weekdays[row]]:
				return offDayStyle
			case col == 0:
				return dayStyle
			case rows[row][col] == EmptyCell:
				return emptyStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

// Header is the line printed above each schedule, numbered from 1.
func Header(index int, sol models.Solution) string {
	return fmt.Sprintf("--- Schedule %d | OFF Days: %s ---", index, OffDayList(sol))
}

// OffDayList joins the solution's free days, or returns "-" when there are none.
func OffDayList(sol models.Solution) string {
	days := scheduler.OffDays(sol.Schedule)
	if len(days) == 0 {
		return EmptyCell
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
