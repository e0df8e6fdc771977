package logconfig

import (
	stderrs "errors"
	"fmt"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a level name into a zerolog.Level. Names are matched
// case-insensitively; WARNING and CRITICAL are accepted as aliases for warn
// and fatal. Returns zerolog.NoLevel and an error if parsing fails.
func parseLevel(level string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case emptyString:
		return zerolog.NoLevel, fmt.Errorf("empty log level")
	case "warning":
		name = "warn"
	case "critical":
		name = "fatal"
	}
	switch name {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// levelName renders a level the way definitions spell it.
func levelName(l zerolog.Level) string {
	if l == zerolog.FatalLevel {
		return "CRITICAL"
	}
	return strings.ToUpper(l.String())
}

// parentLogger returns the next logger up the dot-separated name tree.
// The parent of a top-level name is the root logger "".
func parentLogger(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return RootLoggerName
}

// normalizeLoggerName maps the "root" alias onto the root logger.
func normalizeLoggerName(name string) string {
	if name == rootAlias {
		return RootLoggerName
	}
	return name
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}
