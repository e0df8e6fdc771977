package logconfig

import (
	"path/filepath"

	"github.com/Station-Manager/types"
	"github.com/Station-Manager/utils"
)

// AppConfigName names entries loaded from application logging settings.
const AppConfigName = "app_config"

// DefinitionFromLoggingConfig translates Station-Manager application logging
// settings into a definition: a console handler when console logging is on
// and a rotating file handler under workingDir/RelLogFileDir when file
// logging is on. With both off, file logging is enabled.
func DefinitionFromLoggingConfig(cfg types.LoggingConfig, workingDir string) Definition {
	def := Definition{
		Version: 1,
		Formatters: map[string]FormatterDef{
			"console": {Type: FormatterConsole, NoColor: cfg.ConsoleNoColor, TimeFormat: cfg.ConsoleTimeFormat},
			"file":    {Type: FormatterJSON},
		},
		Handlers: map[string]HandlerDef{},
	}

	var bound []string
	if cfg.ConsoleLogging {
		def.Handlers["console"] = HandlerDef{Type: HandlerConsole, Stream: streamStderr, Formatter: "console", Level: cfg.Level}
		bound = append(bound, "console")
	}
	if cfg.FileLogging || !cfg.ConsoleLogging {
		exeName, err := utils.ExecName(true)
		if err != nil || exeName == emptyString {
			exeName = "app"
		}
		def.Handlers["file"] = HandlerDef{
			Type:       HandlerRotatingFile,
			Formatter:  "file",
			Level:      cfg.Level,
			Filename:   filepath.Join(workingDir, cfg.RelLogFileDir, exeName+".log"),
			MaxSizeMB:  cfg.LogFileMaxSizeMB,
			MaxBackups: cfg.LogFileMaxBackups,
			MaxAgeDays: cfg.LogFileMaxAgeDays,
			Compress:   cfg.LogFileCompress,
		}
		bound = append(bound, "file")
	}

	def.Loggers = map[string]LoggerDef{
		rootAlias: {Level: cfg.Level, Handlers: bound},
	}
	return def
}

// LoadAppConfig loads application logging settings as a new entry.
func (r *Registry) LoadAppConfig(cfg types.LoggingConfig, workingDir string) (*ConfigEntry, error) {
	return r.LoadDefinition(DefinitionFromLoggingConfig(cfg, workingDir), ConfigSpec{Name: AppConfigName, LogLevel: cfg.Level})
}
