package scheduler

import (
	"errors"
	"testing"

	"github.com/julianstephens/offday/internal/models"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input string
		want  models.Minutes
	}{
		{"8:00AM", 8 * 60},
		{"08:30AM", 8*60 + 30},
		{"12:00AM", 0},
		{"12:45AM", 45},
		{"12:00PM", 12 * 60},
		{"12:30PM", 12*60 + 30},
		{"1:00PM", 13 * 60},
		{"11:59PM", 23*60 + 59},
		{" 10:00am ", 10 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if err != nil {
				t.Fatalf("ParseClockTime(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClockTime(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClockTime_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"AM",
		"8:00",
		"8:00XM",
		"800AM",
		"8:0AM",
		"8:000AM",
		"a:00AM",
		"8:bbPM",
		"+8:00AM",
		"0:30AM",
		"13:00PM",
		"8:60AM",
		"123:00PM",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseClockTime(in)
			if !errors.Is(err, ErrMalformedTime) {
				t.Errorf("ParseClockTime(%q) error = %v, want ErrMalformedTime", in, err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	iv := func(start, end int) models.Interval {
		return models.Interval{Start: models.Minutes(start), End: models.Minutes(end)}
	}

	tests := []struct {
		name string
		a, b models.Interval
		want bool
	}{
		{"back to back", iv(480, 600), iv(600, 720), false},
		{"partial overlap", iv(480, 630), iv(600, 720), true},
		{"identical", iv(480, 600), iv(480, 600), true},
		{"contained", iv(480, 720), iv(540, 600), true},
		{"disjoint", iv(480, 540), iv(600, 660), false},
		{"shared start", iv(480, 500), iv(480, 700), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestOverlapsSymmetricExhaustive(t *testing.T) {
	for as := 0; as < 6; as++ {
		for ae := as + 1; ae <= 6; ae++ {
			for bs := 0; bs < 6; bs++ {
				for be := bs + 1; be <= 6; be++ {
					a := models.Interval{Start: models.Minutes(as), End: models.Minutes(ae)}
					b := models.Interval{Start: models.Minutes(bs), End: models.Minutes(be)}
					if Overlaps(a, b) != Overlaps(b, a) {
						t.Fatalf("Overlaps(%v, %v) != Overlaps(%v, %v)", a, b, b, a)
					}
				}
			}
		}
	}
}
