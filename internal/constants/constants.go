package constants

import "time"

const (
	AppName            = "hearth"
	DefaultKeyringUser = "database-connection"
	DefaultDBPath      = "~/.config/hearth/hearth.db"
	DefaultConfigFile  = "~/.config/hearth/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the canonical per-day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is used when showing completion timestamps to the user
	DateTimeFormat = "2006-01-02 15:04"

	// Store keys. One snapshot per widget, one key per once-a-day flag.
	KeyNightRoutine      = "night-routine-tasks"
	KeyNightRoutineReset = "night-routine-reset-date"
	KeyTodo              = "todo-items"
	KeyTodoNotified      = "todo-notified-date"
	KeyDiary             = "diary-map"
	KeyPacking           = "travel_packing_categories"

	// Widget defaults
	DefaultResetHour     = 18
	DefaultRetentionDays = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hearth-"

	// Notify constants
	NotifierLockfileName   = "hearth-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.hearth"
	TrayAppExecutable      = "hearth-tray"
	NotifyTimeout          = 5 * time.Second

	// Environment
	EnvDBConnection = "HEARTH_DB_CONNECTION"
)

// DefaultRetention is the retention window for completed todo entries.
const DefaultRetention = DefaultRetentionDays * 24 * time.Hour
