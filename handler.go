package logconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// handlerKey scopes a handler or formatter name to the entry that declared it.
type handlerKey struct {
	entryID string
	name    string
}

func (k handlerKey) String() string {
	return k.entryID + "/" + k.name
}

// formatter renders raw zerolog JSON records for one sink.
type formatter struct {
	key handlerKey
	def FormatterDef
}

var builtinFormatters = map[string]FormatterDef{
	FormatterJSON:    {Type: FormatterJSON},
	FormatterConsole: {Type: FormatterConsole},
	FormatterText:    {Type: FormatterText, NoColor: true},
}

func isBuiltinFormatter(name string) bool {
	_, ok := builtinFormatters[name]
	return ok
}

// wrap returns a writer that renders records before handing them to w.
func (f *formatter) wrap(w io.Writer) io.Writer {
	switch f.def.Type {
	case FormatterJSON:
		return w
	case FormatterConsole, FormatterText, emptyString:
		cw := zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    f.def.NoColor || f.def.Type != FormatterConsole,
			TimeFormat: f.def.TimeFormat,
		}
		if len(f.def.PartsOrder) > 0 {
			cw.PartsOrder = f.def.PartsOrder
		}
		return cw
	default:
		return w
	}
}

// handler is a sink with its own threshold. out is safe for concurrent use.
type handler struct {
	key       handlerKey
	typ       string
	level     zerolog.Level
	formatter string
	filename  string
	out       io.Writer
	closers   []io.Closer
}

// handle writes a record if it passes the handler threshold.
func (h *handler) handle(level zerolog.Level, p []byte) {
	if level < h.level {
		return
	}
	if _, err := h.out.Write(p); err != nil {
		if zerolog.ErrorHandler != nil {
			zerolog.ErrorHandler(err)
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "logconfig: handler %s: write failed: %v\n", h.key, err)
	}
}

// close releases the sink, flushing buffered records first.
func (h *handler) close() error {
	var first error
	for _, c := range h.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	h.closers = nil
	return first
}

// noCloser hides Close from a wrapped writer so shared streams such as
// os.Stdout are never closed by a handler.
type noCloser struct {
	io.Writer
}
