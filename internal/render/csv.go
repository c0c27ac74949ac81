package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/scheduler"
)

var csvHeaders = []string{"schedule", "course", "group", "off_days"}

// CSV writes one row per course of every solution. Schedules are numbered from 1 and
// off days are joined with ";".
func CSV(w io.Writer, sols []models.Solution) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for i, sol := range sols {
		days := scheduler.OffDays(sol.Schedule)
		names := make([]string, len(days))
		for j, d := range days {
			names[j] = d.String()
		}
		off := strings.Join(names, ";")

		for _, c := range sol.Assignment {
			record := []string{strconv.Itoa(i + 1), string(c.Course), string(c.Group), off}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
