package logconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

const diodePollInterval = 10 * time.Millisecond

// openSink builds the writer chain for one handler: sink, formatter, then
// either a diode or a mutex so the result is safe for concurrent writes.
func (r *Registry) openSink(h *handler, def HandlerDef, f *formatter) error {
	var sink io.Writer

	switch def.Type {
	case HandlerConsole:
		if def.Stream == streamStderr {
			sink = noCloser{r.stderr}
		} else {
			sink = noCloser{r.stdout}
		}
	case HandlerFile:
		file, err := openAppendFile(h.filename)
		if err != nil {
			return err
		}
		sink = noCloser{file}
		h.closers = append(h.closers, file)
	case HandlerRotatingFile:
		if err := os.MkdirAll(filepath.Dir(h.filename), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rolling := r.initializeRollingFileLogger(h.filename, def)
		sink = noCloser{rolling}
		h.closers = append(h.closers, rolling)
	default:
		return fmt.Errorf("unknown handler type %q", def.Type)
	}

	out := f.wrap(sink)

	if def.BufferSize > 0 {
		key := h.key
		dw := diode.NewWriter(out, def.BufferSize, diodePollInterval, func(missed int) {
			r.diag.Warn().Str("handler", key.String()).Int("missed", missed).Msg("buffered handler dropped records")
		})
		// The diode must flush before the file underneath is closed.
		h.closers = append([]io.Closer{dw}, h.closers...)
		h.out = dw
		return nil
	}

	h.out = zerolog.SyncWriter(out)
	return nil
}

func (r *Registry) initializeRollingFileLogger(filename string, def HandlerDef) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    def.MaxSizeMB,
		MaxBackups: def.MaxBackups,
		MaxAge:     def.MaxAgeDays,
		Compress:   def.Compress,
	}
}

// resolveFilename picks the file for a file backed handler: the load
// override, then the definition, then "<executable>.log" in the log dir.
func (r *Registry) resolveFilename(override string, def HandlerDef) string {
	if override != emptyString {
		return override
	}
	if def.Filename != emptyString {
		return def.Filename
	}
	exeName, err := utils.ExecName(true)
	if err != nil || exeName == emptyString {
		exeName = "app"
	}
	return filepath.Join(r.cfg.LogDir, exeName+".log")
}

func openAppendFile(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// newSinkError tags a sink failure with the operation and the handler that
// could not be opened.
func newSinkError(op smerrors.Op, config, handler string, err error) error {
	return fmt.Errorf("logconfig: configuration %q handler %q: %w", config, handler,
		smerrors.New(op).Err(err).Msg(errMsgOpenSink))
}
