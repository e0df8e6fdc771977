package logconfig

import "time"

// ConfigSpec describes one load request. Only Name is required.
type ConfigSpec struct {
	// Name of the definition, without extension.
	Name string `json:"name" yaml:"name"`
	// LogFilePath replaces the filename of every file backed handler.
	LogFilePath string `json:"log_file_path,omitempty" yaml:"log_file_path,omitempty"`
	// LogLevel becomes the threshold of every handler, replacing any level
	// the definition declares. Empty means DEBUG.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	// Formatter replaces the formatter of every handler.
	Formatter string `json:"formatter,omitempty" yaml:"formatter,omitempty"`
}

// ConfigEntry identifies one loaded configuration instance.
type ConfigEntry struct {
	ID          string
	Name        string
	Level       string
	LogFilePath string
	Formatter   string
	// Handlers and Formatters hold the local names this entry registered,
	// sorted. Registry keys are "<ID>/<name>".
	Handlers   []string
	Formatters []string
	// Loggers holds the logger names this entry bound handlers to.
	Loggers  []string
	Warnings []error
	LoadedAt time.Time
}

// Definition is the decoded form of a configuration file.
type Definition struct {
	Version    int                     `json:"version" yaml:"version"`
	Formatters map[string]FormatterDef `json:"formatters" yaml:"formatters" validate:"dive"`
	Handlers   map[string]HandlerDef   `json:"handlers" yaml:"handlers" validate:"required,min=1,dive"`
	Loggers    map[string]LoggerDef    `json:"loggers" yaml:"loggers" validate:"dive"`
}

// HandlerDef declares a sink.
type HandlerDef struct {
	Type string `json:"type" yaml:"type" validate:"required,oneof=console file rotating_file"`
	// Level is validated but replaced by the load's level.
	Level         string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Formatter string `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	// Stream selects stdout or stderr for console handlers.
	Stream string `json:"stream,omitempty" yaml:"stream,omitempty" validate:"omitempty,oneof=stdout stderr"`
	// Filename for file and rotating_file handlers.
	Filename   string `json:"filename,omitempty" yaml:"filename,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty" validate:"gte=0"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty" validate:"gte=0"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
	// BufferSize > 0 puts a non-blocking diode of that many records in front
	// of the sink.
	BufferSize int `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty" validate:"gte=0"`
}

// FormatterDef declares how records are rendered.
type FormatterDef struct {
	// Type is json, console or text. Empty means text.
	Type       string   `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=json console text"`
	TimeFormat string   `json:"time_format,omitempty" yaml:"time_format,omitempty"`
	NoColor    bool     `json:"no_color,omitempty" yaml:"no_color,omitempty"`
	PartsOrder []string `json:"parts_order,omitempty" yaml:"parts_order,omitempty"`
}

// LoggerDef binds handlers to a logger name. The key "root" is an alias for
// the root logger "".
type LoggerDef struct {
	Level     string   `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Handlers  []string `json:"handlers" yaml:"handlers" validate:"dive,required"`
	Propagate *bool    `json:"propagate,omitempty" yaml:"propagate,omitempty"`
}
