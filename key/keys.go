// Package key lists the configuration identifiers reel registers with viper.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 16

// Playback
const (
	PlayerEngine        = "player.engine"
	PlayerIdleThreshold = "player.idle_threshold"
	PlayerStartPaused   = "player.start_paused"
	PlayerLoop          = "player.loop"
	PlayerSeekStep      = "player.seek_step"
	PlayerMPVArgs       = "player.mpv_args"
	PlayerTickRate      = "player.tick_rate"
)

// Virtual engine
const (
	VirtualFPS = "virtual.fps"
)

// Terminal user interface
const (
	TUIShowHelp  = "tui.show_help"
	TUIShowTitle = "tui.show_title"
)

const (
	IconsVariant = "icons.variant"
)

// Logging
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
