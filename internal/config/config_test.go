package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/offday/internal/constants"
)

// isolate points HOME at an empty directory so a developer's own config is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DB", cfg.DB, filepath.Join(home, ".config", "offday", "offday.db")},
		{"Debug", cfg.Debug, false},
		{"Grid.StartHour", cfg.Grid.StartHour, constants.DefaultGridStartHour},
		{"Grid.EndHour", cfg.Grid.EndHour, constants.DefaultGridEndHour},
		{"Search.MaxBranches", cfg.Search.MaxBranches, int64(0)},
		{"Search.Timeout", cfg.Search.Timeout, time.Duration(0)},
		{"Search.Parallel", cfg.Search.Parallel, 0},
		{"Output.Format", cfg.Output.Format, constants.FormatGrid},
		{"Output.JSONEndHour", cfg.Output.JSONEndHour, constants.DefaultJSONEndHour},
		{"File", cfg.File, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
db = "/var/lib/offday/offday.db"
debug = true

[grid]
start_hour = 7
end_hour = 19

[search]
max_branches = 50000
timeout = "5s"
parallel = 4

[output]
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.DB != "/var/lib/offday/offday.db" || !cfg.Debug {
		t.Errorf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Grid != (GridConfig{StartHour: 7, EndHour: 19}) {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
	if cfg.Search != (SearchConfig{MaxBranches: 50000, Timeout: 5 * time.Second, Parallel: 4}) {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Output.Format != constants.FormatJSON {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
	if cfg.File != path || cfg.Dir() != filepath.Dir(path) {
		t.Errorf("File = %q, Dir() = %q", cfg.File, cfg.Dir())
	}
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "offday")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[search]\nparallel = 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.Parallel != 2 {
		t.Errorf("Search.Parallel = %d, want 2", cfg.Search.Parallel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[grid]\nend_hour = 18\n")

	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"db", "OFFDAY_DB", "/tmp/other.db", func(c Config) any { return c.DB }, "/tmp/other.db"},
		{"debug", "OFFDAY_DEBUG", "true", func(c Config) any { return c.Debug }, true},
		{"grid end hour beats file", "OFFDAY_GRID_END_HOUR", "20", func(c Config) any { return c.Grid.EndHour }, 20},
		{"search timeout", "OFFDAY_SEARCH_TIMEOUT", "1m30s", func(c Config) any { return c.Search.Timeout }, 90 * time.Second},
		{"search parallel", "OFFDAY_SEARCH_PARALLEL", "8", func(c Config) any { return c.Search.Parallel }, 8},
		{"output format", "OFFDAY_OUTPUT_FORMAT", "csv", func(c Config) any { return c.Output.Format }, "csv"},
		{"json end hour", "OFFDAY_OUTPUT_JSON_END_HOUR", "20", func(c Config) any { return c.Output.JSONEndHour }, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"inverted grid", "[grid]\nstart_hour = 18\nend_hour = 8\n", "grid hours"},
		{"grid past midnight", "[grid]\nend_hour = 25\n", "grid hours"},
		{"negative branches", "[search]\nmax_branches = -1\n", "max_branches"},
		{"negative parallel", "[search]\nparallel = -2\n", "parallel"},
		{"unknown format", "[output]\nformat = \"xml\"\n", "output.format"},
		{"json window before grid start", "[grid]\nstart_hour = 9\n[output]\njson_end_hour = 9\n", "json_end_hour"},
		{"json window past midnight", "[output]\njson_end_hour = 25\n", "json_end_hour"},
		{"malformed toml", "[grid\n", "failed to read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/y.db", filepath.Join(home, "x", "y.db")},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~other/path", "~other/path"},
		{"postgres://u@h/db", "postgres://u@h/db"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
