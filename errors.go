package logconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistryClosed is returned by mutating calls after Close.
var ErrRegistryClosed = errors.New("logconfig: registry is closed")

// ConfigNotFoundError reports that no source could resolve a definition name.
type ConfigNotFoundError struct {
	Name string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("logconfig: configuration %q not found", e.Name)
}

// ConfigValidationError reports a definition or load request that references
// an unknown handler type, formatter, handler or level.
type ConfigValidationError struct {
	Name string
	Err  error
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("logconfig: configuration %q is invalid: %v", e.Name, e.Err)
}

func (e *ConfigValidationError) Unwrap() error { return e.Err }

// UnknownConfigIDError is returned when an entry id is not tracked, either
// because it was never issued or because the entry was already removed.
type UnknownConfigIDError struct {
	ID string
}

func (e *UnknownConfigIDError) Error() string {
	return fmt.Sprintf("logconfig: unknown configuration id %q", e.ID)
}

// NameCollisionWarning is recorded on a ConfigEntry when it declares a
// handler or formatter name that a live entry already uses. Both survive
// since names are scoped per entry.
type NameCollisionWarning struct {
	Kind            string // "handler" or "formatter"
	Name            string
	ExistingEntryID string
}

func (w *NameCollisionWarning) Error() string {
	return fmt.Sprintf("logconfig: %s name %q is also declared by entry %s", w.Kind, w.Name, w.ExistingEntryID)
}

// LoadFailure pairs a ConfigSpec with the error its load returned.
type LoadFailure struct {
	Spec ConfigSpec
	Err  error
}

// BatchError aggregates the failures of LoadConfigs.
type BatchError struct {
	Failures []LoadFailure
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("%s: %v", f.Spec.Name, f.Err))
	}
	return fmt.Sprintf("logconfig: %d of the requested configurations failed to load: %s",
		len(e.Failures), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
