package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daybook"
	Version            = "v0.1.0"
	DefaultKeyringUser = "database-connection"
	DefaultStorePath   = "~/.config/daybook/daybook.db"
	DefaultConfigDir   = "~/.config/daybook"
	ConfigFileName     = "config.yaml"
	EnvPrefix          = "DAYBOOK"
	EnvDBConnection    = "DAYBOOK_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat is used for journal card headers ("January 2, 2006")
	LongDateFormat = "January 2, 2006"

	// Document keys in the key-value store
	HabitsKey  = "habits"
	JournalKey = "journal"

	// TrailingDays is the size of the rolling window shown per habit and in the chart
	TrailingDays = 7

	// PreviewLimit is the number of characters kept in a journal preview
	PreviewLimit  = 150
	PreviewSuffix = "..."

	DefaultColor = "#667eea"

	// Chart constants
	ChartPadding     = 40
	ChartHeight      = 300
	ChartWidth       = 700
	ChartMaxValue    = 100.0
	ChartGutterRatio = 0.1
	ChartBarColor    = "#667eea"
	ChartAxisColor   = "#e0e0e0"
	ChartLabelColor  = "#333333"
	ChartAxisWidth   = 2
	ChartValueOffset = 5
	ChartDayOffset   = 20

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daybook-"
	BackupFileSuffix = ".json"

	// Lock constants
	LockFileName    = "daybook.lock"
	LockStaleAfter  = 12 * time.Hour
	LockWriteGrace  = 5 * time.Second
	PostgresTimeout = 5 * time.Second
)

// Session States
const (
	StateHabits SessionState = iota
	StateJournal
	StateStats
	StateHabitForm
	StateJournalForm
	StateConfirmDelete
)

// Palette is the fixed set of habit colors offered by the habit form.
var Palette = []string{
	"#667eea",
	"#f093fb",
	"#4facfe",
	"#43e97b",
	"#fa709a",
	"#feca57",
}

// Weekdays holds the three-letter weekday abbreviations indexed by time.Weekday.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
