package logconfig

const (
	emptyString = ""

	// DefaultConfigName is loaded by GetLogger when nothing has been configured yet.
	DefaultConfigName = "logging_console"
	// DefaultLevel is the handler threshold used when neither the load nor the
	// definition names one.
	DefaultLevel = "DEBUG"
	// RootLoggerName is the ancestor of every logger.
	RootLoggerName = ""
	// UncaughtLoggerName receives panics recovered by RecoverAndLog.
	UncaughtLoggerName = "uncaught_exceptions"
	// LoggerFieldName is the field carrying the logger name on every record.
	LoggerFieldName = "logger"
)

// Handler types understood in definitions.
const (
	HandlerConsole      = "console"
	HandlerFile         = "file"
	HandlerRotatingFile = "rotating_file"
)

// Formatter types understood in definitions. The same names are available as
// built-in formatters that need no declaration.
const (
	FormatterJSON    = "json"
	FormatterConsole = "console"
	FormatterText    = "text"
)

const (
	streamStdout = "stdout"
	streamStderr = "stderr"
	rootAlias    = "root"
)

// definitionExts is the lookup order for definition files.
var definitionExts = []string{".json", ".yaml", ".yml"}

const (
	errMsgNilRegistry       = "Registry is nil."
	errMsgDefinitionInvalid = "Logging definition is invalid."
	errMsgDecodeFailed      = "Logging definition could not be decoded."
	errMsgUnknownFormatter  = "Formatter is not declared and is not a built-in."
	errMsgUnknownHandler    = "Logger references an undeclared handler."
	errMsgInvalidLevel      = "Log level is not recognized."
	errMsgOpenSink          = "Handler sink could not be opened."
	errMsgConfigInvalid     = "Registry configuration is invalid."
)
