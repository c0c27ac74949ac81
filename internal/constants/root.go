package constants

const (
	AppName            = "offday"
	Version            = "v0.2.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/offday"
	DefaultDBPath      = "~/.config/offday/offday.db"
	ConfigFileName     = "config.toml"
	EnvPrefix          = "OFFDAY"

	// Grid bounds used when rendering a schedule, in hours of the day.
	DefaultGridStartHour = 8
	DefaultGridEndHour   = 17
	// JSON tables run one hour past the grid, through the 17:00 bucket.
	DefaultJSONEndHour   = 18

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "offday-"
	BackupFileSuffix = ".db"

	// Output formats
	FormatGrid = "grid"
	FormatJSON = "json"
	FormatCSV  = "csv"

	NoSolutionMessage = "No schedule found matching the exact OFF days and without conflicts."
)
