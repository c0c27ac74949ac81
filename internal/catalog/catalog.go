package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/validation"
)

// Format is the on-disk encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var ErrUnknownFormat = errors.New("unknown catalog format")

// file is the on-disk shape. Slots are kept as the strings users type so files stay
// hand-editable.
type file struct {
	Name    string       `json:"name" toml:"name"`
	Courses []fileCourse `json:"courses" toml:"courses"`
}

type fileCourse struct {
	ID     string      `json:"id" toml:"id"`
	Groups []fileGroup `json:"groups" toml:"groups"`
}

type fileGroup struct {
	ID    string   `json:"id" toml:"id"`
	Slots []string `json:"slots" toml:"slots"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json or .toml)", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Decode reads a catalog in the given format. Slot strings are validated and normalised;
// groups whose pattern is "-" or empty become placeholders.
func Decode(r io.Reader, format Format) (models.Catalog, error) {
	var doc file
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return models.Catalog{}, fmt.Errorf("parsing JSON catalog: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return models.Catalog{}, fmt.Errorf("parsing TOML catalog: %w", err)
		}
	default:
		return models.Catalog{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return fromFile(doc)
}

// Encode writes cat in the given format.
func Encode(w io.Writer, format Format, cat models.Catalog) error {
	doc := toFile(cat)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Load reads a catalog file, choosing the format by extension. A catalog without a name
// takes the file's base name.
func Load(path string) (models.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return models.Catalog{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	cat, err := Decode(f, format)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	if cat.Name == "" {
		cat.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cat, nil
}

// Save writes cat to path, choosing the format by extension.
func Save(path string, cat models.Catalog) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	if err := Encode(f, format, cat); err != nil {
		f.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return f.Close()
}

func fromFile(doc file) (models.Catalog, error) {
	cat := models.Catalog{Name: doc.Name, Courses: make([]models.Course, 0, len(doc.Courses))}
	for _, fc := range doc.Courses {
		course := models.Course{
			ID:     models.CourseID(strings.TrimSpace(fc.ID)),
			Groups: make([]models.Group, 0, len(fc.Groups)),
		}
		for _, fg := range fc.Groups {
			g, err := validation.ParsePattern(models.GroupID(strings.TrimSpace(fg.ID)), fg.Slots)
			if err != nil {
				return models.Catalog{}, fmt.Errorf("course %s: %w", course.ID, err)
			}
			course.Groups = append(course.Groups, g)
		}
		cat.Courses = append(cat.Courses, course)
	}
	return cat, nil
}

func toFile(cat models.Catalog) file {
	doc := file{Name: cat.Name, Courses: make([]fileCourse, 0, len(cat.Courses))}
	for _, c := range cat.Courses {
		fc := fileCourse{ID: string(c.ID), Groups: make([]fileGroup, 0, len(c.Groups))}
		for _, g := range c.Groups {
			fc.Groups = append(fc.Groups, fileGroup{ID: string(g.ID), Slots: validation.FormatPattern(g)})
		}
		doc.Courses = append(doc.Courses, fc)
	}
	return doc
}
