package logconfig

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads live entries whenever the definition they were loaded from
// is written or recreated in dir. dir should also be one of the registry's
// search paths, otherwise the reload reads the old source. Watch blocks
// until ctx is done.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating definition watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	r.diag.Debug().Str("dir", dir).Msg("definition watcher started")

	for {
		select {
		case <-ctx.Done():
			r.diag.Debug().Str("dir", dir).Msg("definition watcher stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if name, ok := definitionName(event.Name); ok {
				r.reloadByName(name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.diag.Warn().Err(err).Str("dir", dir).Msg("definition watcher error")
		}
	}
}

// reloadByName reloads every live entry loaded from the named definition.
// Entries registered with LoadDefinition are skipped. Failures keep the entry as it was and are reported on the diagnostic
// logger.
func (r *Registry) reloadByName(name string) {
	var ids []string
	r.mu.RLock()
	for _, id := range r.order {
		if st := r.entries[id]; st.def == nil && st.entry.Name == name {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range ids {
		if err := r.Reload(id); err != nil {
			r.diag.Warn().Err(err).Str("id", id).Str("name", name).Msg("reload failed, keeping previous configuration")
		}
	}
}
