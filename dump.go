package logconfig

import (
	"cmp"
	"maps"
	"slices"
)

// Dump logs the registry state at Debug level: one record per live entry,
// per registered handler and per bound logger name. Nothing is written when
// l is nil or debug is disabled for it.
func (r *Registry) Dump(l Logger) {
	if r == nil || l == nil || !l.DebugWith().Enabled() {
		return
	}

	// Snapshot under the lock, log after releasing it: l may dispatch
	// through this registry.
	type handlerRow struct {
		key, typ, level, formatter, filename string
	}
	type loggerRow struct {
		name      string
		bindings  []string
		level     string
		propagate bool
	}

	r.mu.RLock()
	entries := make([]ConfigEntry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, cloneEntry(r.entries[id].entry))
	}
	handlers := make([]handlerRow, 0, len(r.handlers))
	for _, k := range slices.SortedFunc(maps.Keys(r.handlers), func(a, b handlerKey) int {
		return cmp.Compare(a.String(), b.String())
	}) {
		h := r.handlers[k]
		handlers = append(handlers, handlerRow{k.String(), h.typ, levelName(h.level), h.formatter, h.filename})
	}
	loggers := make([]loggerRow, 0, len(r.nodes))
	for _, name := range slices.Sorted(maps.Keys(r.nodes)) {
		n := r.nodes[name]
		row := loggerRow{name: name, level: levelName(n.level()), propagate: n.propagates()}
		for _, b := range n.bindings {
			row.bindings = append(row.bindings, b.entryID)
		}
		loggers = append(loggers, row)
	}
	r.mu.RUnlock()

	l.DebugWith().Int("entries", len(entries)).Int("handlers", len(handlers)).Int("loggers", len(loggers)).Msg("Dump: registry")
	for _, e := range entries {
		l.DebugWith().
			Str("id", e.ID).
			Str("name", e.Name).
			Str("level", e.Level).
			Str("log_file_path", e.LogFilePath).
			Strs("handlers", e.Handlers).
			Strs("formatters", e.Formatters).
			Strs("loggers", e.Loggers).
			Int("warnings", len(e.Warnings)).
			Time("loaded_at", e.LoadedAt).
			Msg("Dump: entry")
	}
	for _, h := range handlers {
		l.DebugWith().
			Str("handler", h.key).
			Str("type", h.typ).
			Str("level", h.level).
			Str("formatter", h.formatter).
			Str("filename", h.filename).
			Msg("Dump: handler")
	}
	for _, lg := range loggers {
		l.DebugWith().
			Str("name", lg.name).
			Str("level", lg.level).
			Bool("propagate", lg.propagate).
			Strs("entries", lg.bindings).
			Msg("Dump: logger")
	}
}
