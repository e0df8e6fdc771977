package logconfig

import (
	"slices"

	"github.com/rs/zerolog"
)

// binding is the set of handlers one entry attached to one logger name.
type binding struct {
	entryID   string
	level     zerolog.Level
	propagate bool
	handlers  []*handler
}

// loggerNode is a logger name in the namespace. Several entries may bind the
// same name; their handlers are merged.
type loggerNode struct {
	bindings []binding
}

// level is the lowest level any live binding asks for.
func (n *loggerNode) level() zerolog.Level {
	lvl := zerolog.Disabled
	for _, b := range n.bindings {
		if b.level < lvl {
			lvl = b.level
		}
	}
	return lvl
}

// propagates reports whether records continue to the parent logger. Any
// binding can stop propagation.
func (n *loggerNode) propagates() bool {
	for _, b := range n.bindings {
		if !b.propagate {
			return false
		}
	}
	return true
}

func (n *loggerNode) unbind(entryID string) {
	n.bindings = slices.DeleteFunc(n.bindings, func(b binding) bool {
		return b.entryID == entryID
	})
}

// bindLocked attaches b to the named logger. Caller holds r.mu.
func (r *Registry) bindLocked(name string, b binding) {
	n, ok := r.nodes[name]
	if !ok {
		n = &loggerNode{}
		r.nodes[name] = n
	}
	n.bindings = append(n.bindings, b)
}

// unbindLocked detaches every binding of entryID from the given loggers.
// Caller holds r.mu.
func (r *Registry) unbindLocked(entryID string, loggers []string) {
	for _, name := range loggers {
		n, ok := r.nodes[name]
		if !ok {
			continue
		}
		n.unbind(entryID)
		if len(n.bindings) == 0 {
			delete(r.nodes, name)
		}
	}
}

// effectiveLevelLocked returns the level of the nearest logger in the chain
// that has bindings. ok is false when no logger in the chain has any.
// Caller holds r.mu for reading.
func (r *Registry) effectiveLevelLocked(name string) (zerolog.Level, bool) {
	for {
		if n, found := r.nodes[name]; found && len(n.bindings) > 0 {
			return n.level(), true
		}
		if name == RootLoggerName {
			return zerolog.Disabled, false
		}
		name = parentLogger(name)
	}
}

// enabled reports whether a record at level from the named logger would be
// offered to any handler.
func (r *Registry) enabled(name string, level zerolog.Level) bool {
	if r.closed.Load() {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lvl, ok := r.effectiveLevelLocked(name)
	return ok && level >= lvl
}

// emit offers one encoded record to the handlers of the named logger and of
// its ancestors, stopping below the first logger that does not propagate.
// The read lock is held across the writes so a concurrent RemoveConfig
// returns only after in-flight writes to its sinks are done.
func (r *Registry) emit(name string, level zerolog.Level, p []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed.Load() {
		return
	}
	lvl, ok := r.effectiveLevelLocked(name)
	if !ok || (level < lvl && level != zerolog.NoLevel) {
		return
	}

	var seen []*handler
	for {
		if n, found := r.nodes[name]; found && len(n.bindings) > 0 {
			for _, b := range n.bindings {
				for _, h := range b.handlers {
					if slices.Contains(seen, h) {
						continue
					}
					seen = append(seen, h)
					h.handle(level, p)
				}
			}
			if !n.propagates() {
				return
			}
		}
		if name == RootLoggerName {
			return
		}
		name = parentLogger(name)
	}
}

// dispatcher is the zerolog writer behind every named logger. It resolves
// handlers at write time.
type dispatcher struct {
	reg  *Registry
	name string
}

func (d *dispatcher) Write(p []byte) (int, error) {
	return d.WriteLevel(zerolog.NoLevel, p)
}

func (d *dispatcher) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	d.reg.emit(d.name, level, p)
	return len(p), nil
}
