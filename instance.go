package logconfig

import "sync"

var (
	instance     *Registry
	instanceOnce sync.Once
)

// GetInstance returns the process-wide registry. The first call creates it
// from the LOGCONFIG_* environment (falling back to defaults when the
// environment is invalid), applies opts and loads spec if it is non-nil.
// Later calls return the same registry and ignore their arguments.
//
// Prefer New and passing the registry explicitly; GetInstance exists for
// code that cannot be handed one.
func GetInstance(spec *ConfigSpec, opts ...Option) *Registry {
	instanceOnce.Do(func() {
		reg, err := NewFromEnv(opts...)
		if err != nil {
			reg = New(opts...)
			reg.diag.Warn().Err(err).Msg("invalid LOGCONFIG environment, using defaults")
		}
		if spec != nil {
			if _, err := reg.LoadConfig(*spec); err != nil {
				reg.diag.Error().Err(err).Str("name", spec.Name).Msg("initial configuration failed to load")
			}
		}
		instance = reg
	})
	return instance
}
