package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

const tomlCatalog = `
name = "fall"

[[courses]]
id = "Math"

  [[courses.groups]]
  id = "G1"
  slots = ["sunday - 8:00am / 10:00am"]

  [[courses.groups]]
  id = "G2"
  slots = ["Monday - 8:00AM / 10:00AM", "Wednesday - 1:00PM / 2:30PM"]

[[courses]]
id = "Physics Lab"

  [[courses.groups]]
  id = "G1"
  slots = ["-"]

  [[courses.groups]]
  id = "G2"
  slots = ["Tuesday - 10:00AM / 12:00PM"]
`

const jsonCatalog = `{
  "name": "fall",
  "courses": [
    {"id": "Math", "groups": [
      {"id": "G1", "slots": ["sunday - 8:00am / 10:00am"]},
      {"id": "G2", "slots": ["Monday - 8:00AM / 10:00AM", "Wednesday - 1:00PM / 2:30PM"]}
    ]},
    {"id": "Physics Lab", "groups": [
      {"id": "G1", "slots": ["-"]},
      {"id": "G2", "slots": ["Tuesday - 10:00AM / 12:00PM"]}
    ]}
  ]
}`

func expectedCatalog() models.Catalog {
	return models.Catalog{
		Name: "fall",
		Courses: []models.Course{
			{ID: "Math", Groups: []models.Group{
				{ID: "G1", Slots: []models.TimeSlot{{Day: models.Sunday, Start: 480, End: 600}}},
				{ID: "G2", Slots: []models.TimeSlot{
					{Day: models.Monday, Start: 480, End: 600},
					{Day: models.Wednesday, Start: 780, End: 870},
				}},
			}},
			{ID: "Physics Lab", Groups: []models.Group{
				{ID: "G1", Placeholder: true},
				{ID: "G2", Slots: []models.TimeSlot{{Day: models.Tuesday, Start: 600, End: 720}}},
			}},
		},
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"toml", FormatTOML, tomlCatalog},
		{"json", FormatJSON, jsonCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(expectedCatalog(), got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   error
	}{
		{"bad slot", FormatJSON, `{"courses":[{"id":"Math","groups":[{"id":"G1","slots":["Friday - 8:00AM / 9:00AM"]}]}]}`, validation.ErrInvalidFormat},
		{"inverted slot", FormatTOML, "[[courses]]\nid = \"Math\"\n[[courses.groups]]\nid = \"G1\"\nslots = [\"Monday - 9:00AM / 8:00AM\"]\n", validation.ErrInvalidRange},
		{"unknown format", Format("yaml"), "name: fall", ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name":"x","course":[]}`), FormatJSON)
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, expectedCatalog()); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode failed: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(expectedCatalog(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_WritesNormalizedSlots(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatTOML, expectedCatalog()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sunday - 8:00AM / 10:00AM", "Wednesday - 1:00PM / 2:30PM", "Physics Lab"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded TOML missing %q:\n%s", want, out)
		}
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"fall.json", "nested/fall.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, expectedCatalog()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(expectedCatalog(), got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_DefaultsNameToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spring.json")
	if err := os.WriteFile(path, []byte(`{"courses":[]}`), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Name != "spring" {
		t.Errorf("Name = %q, want spring", cat.Name)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/a.TOML", FormatTOML, false},
		{"a.yaml", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
