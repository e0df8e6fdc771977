package logconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Registry loads named configurations, tracks each load as a removable
// entry and hands out named loggers. The zero value is not usable; use New.
type Registry struct {
	cfg          Config
	extraSources []Source
	noBuiltins   bool
	sources      []Source

	stdout  io.Writer
	stderr  io.Writer
	diagOut io.Writer
	diag    zerolog.Logger

	// mu guards everything below. Emission holds it for reading.
	mu         sync.RWMutex
	entries    map[string]*entryState
	order      []string
	handlers   map[handlerKey]*handler
	formatters map[handlerKey]*formatter
	nodes      map[string]*loggerNode

	loggers sync.Map // name -> *namedLogger

	autoMu     sync.Mutex
	configured atomic.Bool
	closed     atomic.Bool
}

// entryState is what the registry keeps per loaded configuration.
type entryState struct {
	entry ConfigEntry
	spec  ConfigSpec
	// def is set for entries loaded from a caller supplied Definition. They
	// are rebuilt from it instead of being resolved again by name.
	def        *Definition
	handlers   []*handler
	formatters []*formatter
	bindings   map[string]binding
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		cfg:        DefaultConfig(),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		entries:    make(map[string]*entryState),
		handlers:   make(map[handlerKey]*handler),
		formatters: make(map[handlerKey]*formatter),
		nodes:      make(map[string]*loggerNode),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, dir := range r.cfg.SearchPaths {
		if dir != emptyString {
			r.sources = append(r.sources, DirSource(dir))
		}
	}
	r.sources = append(r.sources, r.extraSources...)
	if !r.noBuiltins {
		r.sources = append(r.sources, BuiltinSource())
	}

	r.diag = newDiagnosticLogger(diagnosticsOutput(r.cfg, r.diagOut))
	return r
}

// NewFromEnv creates a registry configured from LOGCONFIG_* environment
// variables. Options are applied after the environment.
func NewFromEnv(opts ...Option) (*Registry, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// LoadConfig resolves the named definition, builds its handlers and
// formatters and registers them under a new entry. On error the registry is
// left exactly as it was.
func (r *Registry) LoadConfig(spec ConfigSpec) (*ConfigEntry, error) {
	if r == nil {
		return nil, errors.New(errMsgNilRegistry)
	}
	def, err := r.resolve(spec.Name)
	if err != nil {
		return nil, err
	}
	return r.load(uuid.NewString(), def, spec, false)
}

// LoadDefinition registers an already decoded definition under a new entry.
// spec.Name names the entry; it is not looked up, neither now nor by Reload
// or Watch.
func (r *Registry) LoadDefinition(def Definition, spec ConfigSpec) (*ConfigEntry, error) {
	if r == nil {
		return nil, errors.New(errMsgNilRegistry)
	}
	return r.load(uuid.NewString(), &def, spec, true)
}

// LoadConfigs loads every spec in order. Each load succeeds or fails on its
// own; the successful entries are returned together with a *BatchError
// describing the failures, if any.
func (r *Registry) LoadConfigs(specs ...ConfigSpec) ([]*ConfigEntry, error) {
	var (
		loaded   []*ConfigEntry
		failures []LoadFailure
	)
	for _, spec := range specs {
		entry, err := r.LoadConfig(spec)
		if err != nil {
			failures = append(failures, LoadFailure{Spec: spec, Err: err})
			continue
		}
		loaded = append(loaded, entry)
	}
	if len(failures) > 0 {
		return loaded, &BatchError{Failures: failures}
	}
	return loaded, nil
}

// RemoveConfig detaches every handler and formatter the entry registered,
// from the registry and from every logger holding them, then closes their
// sinks. Removing an unknown or already removed id returns
// *UnknownConfigIDError and changes nothing.
func (r *Registry) RemoveConfig(id string) error {
	if r == nil {
		return errors.New(errMsgNilRegistry)
	}
	r.mu.Lock()
	st, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return &UnknownConfigIDError{ID: id}
	}
	r.detachLocked(st)
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(e string) bool { return e == id })
	r.mu.Unlock()

	return closeHandlers(st.handlers)
}

// Reload re-reads the entry's definition with its original overrides and
// swaps it in under the same id. Entries loaded with LoadDefinition are
// rebuilt from the definition they were given. If the new definition fails
// to load the entry is left untouched.
func (r *Registry) Reload(id string) error {
	r.mu.RLock()
	st, ok := r.entries[id]
	var (
		spec  ConfigSpec
		def   *Definition
		owned bool
	)
	if ok {
		spec, def, owned = st.spec, st.def, st.def != nil
	}
	r.mu.RUnlock()
	if !ok {
		return &UnknownConfigIDError{ID: id}
	}

	if !owned {
		var err error
		if def, err = r.resolve(spec.Name); err != nil {
			return err
		}
	}
	next, err := r.build(id, def, spec)
	if err != nil {
		return err
	}
	if owned {
		next.def = def
	}

	r.mu.Lock()
	prev, ok := r.entries[id]
	if !ok || r.closed.Load() {
		r.mu.Unlock()
		_ = closeHandlers(next.handlers)
		if !ok {
			return &UnknownConfigIDError{ID: id}
		}
		return ErrRegistryClosed
	}
	r.detachLocked(prev)
	next.entry.Warnings = r.collisionsLocked(next)
	r.attachLocked(next)
	r.entries[id] = next
	r.mu.Unlock()

	r.warnCollisions(next)
	r.diag.Debug().Str("id", id).Str("name", spec.Name).Msg("configuration reloaded")
	return closeHandlers(prev.handlers)
}

// GetLogger returns the logger for name. On a registry that has never been
// configured it first loads the default configuration.
func (r *Registry) GetLogger(name string) Logger {
	if r == nil || r.closed.Load() {
		return &noopLogger{name: name}
	}
	r.ensureConfigured()

	if l, ok := r.loggers.Load(name); ok {
		return l.(*namedLogger)
	}
	l, _ := r.loggers.LoadOrStore(name, newNamedLogger(r, name))
	return l.(*namedLogger)
}

func (r *Registry) ensureConfigured() {
	if r.configured.Load() {
		return
	}
	r.autoMu.Lock()
	defer r.autoMu.Unlock()
	if r.configured.Load() {
		return
	}
	spec := ConfigSpec{Name: r.cfg.DefaultConfig, LogLevel: r.cfg.DefaultLevel}
	if _, err := r.LoadConfig(spec); err != nil {
		r.diag.Error().Err(err).Str("name", spec.Name).Msg("default configuration failed to load")
		// Do not retry on every GetLogger call.
		r.configured.Store(true)
	}
}

// Entries returns a snapshot of the live entries in load order.
func (r *Registry) Entries() []ConfigEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConfigEntry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneEntry(r.entries[id].entry))
	}
	return out
}

// Entry returns a snapshot of one live entry.
func (r *Registry) Entry(id string) (ConfigEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.entries[id]
	if !ok {
		return ConfigEntry{}, false
	}
	return cloneEntry(st.entry), true
}

// HandlerNames lists registered handlers as "<entry id>/<name>", sorted.
func (r *Registry) HandlerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		names = append(names, k.String())
	}
	slices.Sort(names)
	return names
}

// FormatterNames lists registered formatters as "<entry id>/<name>", sorted.
func (r *Registry) FormatterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formatters))
	for k := range r.formatters {
		names = append(names, k.String())
	}
	slices.Sort(names)
	return names
}

// Available lists the definition names the registry's sources can resolve.
func (r *Registry) Available() []string {
	var names []string
	for _, src := range r.sources {
		for _, n := range src.Names() {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	return names
}

// Close detaches and closes every handler. Loggers obtained earlier become
// no-ops and further loads fail with ErrRegistryClosed. It's safe to call
// Close multiple times.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		return nil
	}
	r.closed.Store(true)
	var all []*handler
	for _, id := range r.order {
		st := r.entries[id]
		r.detachLocked(st)
		all = append(all, st.handlers...)
	}
	clear(r.entries)
	r.order = nil
	r.mu.Unlock()

	return closeHandlers(all)
}

// resolve finds and decodes a definition, searching sources in order.
func (r *Registry) resolve(name string) (*Definition, error) {
	if name == emptyString {
		return nil, &ConfigNotFoundError{Name: name}
	}
	for _, src := range r.sources {
		data, ext, err := src.Lookup(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading configuration %q: %w", name, err)
		}
		return decodeDefinition(name, data, ext)
	}
	return nil, &ConfigNotFoundError{Name: name}
}

func (r *Registry) load(id string, def *Definition, spec ConfigSpec, owned bool) (*ConfigEntry, error) {
	if r.closed.Load() {
		return nil, ErrRegistryClosed
	}
	st, err := r.build(id, def, spec)
	if err != nil {
		return nil, err
	}
	if owned {
		st.def = def
	}

	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		_ = closeHandlers(st.handlers)
		return nil, ErrRegistryClosed
	}
	st.entry.Warnings = r.collisionsLocked(st)
	r.attachLocked(st)
	r.entries[id] = st
	r.order = append(r.order, id)
	r.configured.Store(true)
	r.mu.Unlock()

	r.warnCollisions(st)

	entry := cloneEntry(st.entry)
	return &entry, nil
}

// build validates def against spec and opens every handler sink. Nothing is
// registered; on error every sink opened so far is closed again.
func (r *Registry) build(id string, def *Definition, spec ConfigSpec) (*entryState, error) {
	if spec.LogLevel == emptyString {
		spec.LogLevel = DefaultLevel
	}
	if err := validateDefinition(spec.Name, def); err != nil {
		return nil, err
	}
	if err := validateSpec(spec, def); err != nil {
		return nil, err
	}

	st := &entryState{
		spec:     spec,
		bindings: make(map[string]binding),
		entry: ConfigEntry{
			ID:          id,
			Name:        spec.Name,
			Level:       strings.ToUpper(spec.LogLevel),
			LogFilePath: spec.LogFilePath,
			Formatter:   spec.Formatter,
			LoadedAt:    time.Now(),
		},
	}

	for _, name := range slices.Sorted(maps.Keys(def.Formatters)) {
		st.formatters = append(st.formatters, &formatter{key: handlerKey{id, name}, def: def.Formatters[name]})
		st.entry.Formatters = append(st.entry.Formatters, name)
	}

	byName := make(map[string]*handler, len(def.Handlers))
	for _, name := range slices.Sorted(maps.Keys(def.Handlers)) {
		hdef := def.Handlers[name]
		h, err := r.buildHandler(id, name, hdef, def, spec)
		if err != nil {
			_ = closeHandlers(st.handlers)
			return nil, err
		}
		st.handlers = append(st.handlers, h)
		st.entry.Handlers = append(st.entry.Handlers, name)
		byName[name] = h
	}

	if len(def.Loggers) == 0 {
		st.bindings[RootLoggerName] = binding{
			entryID:   id,
			level:     zerolog.DebugLevel,
			propagate: true,
			handlers:  st.handlers,
		}
	}
	for _, lname := range slices.Sorted(maps.Keys(def.Loggers)) {
		ldef := def.Loggers[lname]
		lvl := zerolog.DebugLevel
		if ldef.Level != emptyString {
			lvl, _ = parseLevel(ldef.Level)
		}
		b := binding{entryID: id, level: lvl, propagate: ldef.Propagate == nil || *ldef.Propagate}
		for _, hname := range ldef.Handlers {
			b.handlers = append(b.handlers, byName[hname])
		}
		key := normalizeLoggerName(lname)
		if prev, dup := st.bindings[key]; dup {
			// "root" and "" both declared: merge them.
			b.handlers = append(prev.handlers, b.handlers...)
			b.level = min(prev.level, b.level)
			b.propagate = prev.propagate && b.propagate
		}
		st.bindings[key] = b
	}
	st.entry.Loggers = slices.Sorted(maps.Keys(st.bindings))

	return st, nil
}

func (r *Registry) buildHandler(id, name string, hdef HandlerDef, def *Definition, spec ConfigSpec) (*handler, error) {
	const op = "logconfig.buildHandler"

	level, _ := parseLevel(spec.LogLevel)

	fname := hdef.Formatter
	if spec.Formatter != emptyString {
		fname = spec.Formatter
	}
	if fname == emptyString {
		if hdef.Type == HandlerConsole {
			fname = FormatterText
		} else {
			fname = FormatterJSON
		}
	}
	fdef, ok := def.Formatters[fname]
	if !ok {
		fdef = builtinFormatters[fname]
	}

	h := &handler{
		key:       handlerKey{id, name},
		typ:       hdef.Type,
		level:     level,
		formatter: fname,
	}
	if hdef.Type == HandlerFile || hdef.Type == HandlerRotatingFile {
		h.filename = r.resolveFilename(spec.LogFilePath, hdef)
	}
	if err := r.openSink(h, hdef, &formatter{key: handlerKey{id, fname}, def: fdef}); err != nil {
		_ = h.close()
		return nil, newSinkError(op, spec.Name, name, err)
	}
	return h, nil
}

// collisionsLocked reports local names st shares with other live entries.
func (r *Registry) collisionsLocked(st *entryState) []error {
	var warnings []error
	for _, id := range r.order {
		if id == st.entry.ID {
			continue
		}
		other := r.entries[id]
		for _, name := range st.entry.Handlers {
			if slices.Contains(other.entry.Handlers, name) {
				warnings = append(warnings, &NameCollisionWarning{Kind: "handler", Name: name, ExistingEntryID: id})
			}
		}
		for _, name := range st.entry.Formatters {
			if slices.Contains(other.entry.Formatters, name) {
				warnings = append(warnings, &NameCollisionWarning{Kind: "formatter", Name: name, ExistingEntryID: id})
			}
		}
	}
	return warnings
}

func (r *Registry) warnCollisions(st *entryState) {
	for _, w := range st.entry.Warnings {
		r.diag.Warn().Err(w).Str("id", st.entry.ID).Str("name", st.entry.Name).Msg("name reused across configurations")
	}
}

func (r *Registry) attachLocked(st *entryState) {
	for _, h := range st.handlers {
		r.handlers[h.key] = h
	}
	for _, f := range st.formatters {
		r.formatters[f.key] = f
	}
	for _, name := range st.entry.Loggers {
		r.bindLocked(name, st.bindings[name])
	}
}

func (r *Registry) detachLocked(st *entryState) {
	r.unbindLocked(st.entry.ID, st.entry.Loggers)
	for _, h := range st.handlers {
		delete(r.handlers, h.key)
	}
	for _, f := range st.formatters {
		delete(r.formatters, f.key)
	}
}

func closeHandlers(hs []*handler) error {
	var errs []error
	for _, h := range hs {
		if err := h.close(); err != nil {
			errs = append(errs, fmt.Errorf("closing handler %s: %w", h.key, err))
		}
	}
	return errors.Join(errs...)
}

func cloneEntry(e ConfigEntry) ConfigEntry {
	e.Handlers = slices.Clone(e.Handlers)
	e.Formatters = slices.Clone(e.Formatters)
	e.Loggers = slices.Clone(e.Loggers)
	e.Warnings = slices.Clone(e.Warnings)
	return e
}
