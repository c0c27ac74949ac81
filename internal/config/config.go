package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/offday/internal/constants"
)

type GridConfig struct {
	StartHour int `mapstructure:"start_hour"`
	EndHour   int `mapstructure:"end_hour"`
}

type SearchConfig struct {
	MaxBranches int64         `mapstructure:"max_branches"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Parallel    int           `mapstructure:"parallel"`
}

type OutputConfig struct {
	Format      string `mapstructure:"format"`
	// JSONEndHour ends the hour window of JSON tables, which start at grid.start_hour.
	JSONEndHour int    `mapstructure:"json_end_hour"`
}

// Config holds runtime settings. Values come from config.toml, OFFDAY_* env vars and
// built-in defaults, in decreasing precedence after CLI flags.
type Config struct {
	DB     string       `mapstructure:"db"`
	Debug  bool         `mapstructure:"debug"`
	Grid   GridConfig   `mapstructure:"grid"`
	Search SearchConfig `mapstructure:"search"`
	Output OutputConfig `mapstructure:"output"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", constants.DefaultDBPath)
	v.SetDefault("debug", false)
	v.SetDefault("grid.start_hour", constants.DefaultGridStartHour)
	v.SetDefault("grid.end_hour", constants.DefaultGridEndHour)
	v.SetDefault("search.max_branches", 0)
	v.SetDefault("search.timeout", time.Duration(0))
	v.SetDefault("search.parallel", 0)
	v.SetDefault("output.format", constants.FormatGrid)
	v.SetDefault("output.json_end_hour", constants.DefaultJSONEndHour)
}

// Load reads configuration. An explicit path must exist; without one the default
// ~/.config/offday/config.toml is read when present.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(ExpandPath(path))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(filepath.Join(ExpandPath(constants.DefaultConfigDir), constants.ConfigFileName))
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.DB = ExpandPath(cfg.DB)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer or scheduler cannot honour.
func (c Config) Validate() error {
	if c.Grid.StartHour < 0 || c.Grid.EndHour > 24 || c.Grid.StartHour >= c.Grid.EndHour {
		return fmt.Errorf("invalid grid hours %d-%d: need 0 <= start < end <= 24", c.Grid.StartHour, c.Grid.EndHour)
	}
	if c.Search.MaxBranches < 0 {
		return fmt.Errorf("search.max_branches cannot be negative")
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("search.timeout cannot be negative")
	}
	if c.Search.Parallel < 0 {
		return fmt.Errorf("search.parallel cannot be negative")
	}
	if c.Output.JSONEndHour <= c.Grid.StartHour || c.Output.JSONEndHour > 24 {
		return fmt.Errorf("invalid output.json_end_hour %d: need grid.start_hour < end <= 24", c.Output.JSONEndHour)
	}
	switch c.Output.Format {
	case constants.FormatGrid, constants.FormatJSON, constants.FormatCSV:
	default:
		return fmt.Errorf("unknown output.format %q (want grid, json or csv)", c.Output.Format)
	}
	return nil
}

// Dir returns the directory holding the config file, logs and the default database.
func (c Config) Dir() string {
	if c.File != "" {
		return filepath.Dir(c.File)
	}
	return ExpandPath(constants.DefaultConfigDir)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
