package logconfig

import (
	"maps"
	"slices"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validatorInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, err := parseLevel(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// validateDefinition checks a decoded definition for unknown types and
// levels, and for formatter and handler references that resolve nowhere.
func validateDefinition(name string, def *Definition) error {
	const op errors.Op = "logconfig.validateDefinition"

	if err := validatorInstance().Struct(def); err != nil {
		return &ConfigValidationError{Name: name, Err: errors.New(op).Err(err).Msg(errMsgDefinitionInvalid)}
	}

	for _, hname := range slices.Sorted(maps.Keys(def.Handlers)) {
		h := def.Handlers[hname]
		if h.Formatter == emptyString {
			continue
		}
		if _, ok := def.Formatters[h.Formatter]; !ok && !isBuiltinFormatter(h.Formatter) {
			return &ConfigValidationError{Name: name, Err: errors.New(op).Msg(errMsgUnknownFormatter + " handler=" + hname + " formatter=" + h.Formatter)}
		}
	}

	for _, lname := range slices.Sorted(maps.Keys(def.Loggers)) {
		for _, hname := range def.Loggers[lname].Handlers {
			if _, ok := def.Handlers[hname]; !ok {
				return &ConfigValidationError{Name: name, Err: errors.New(op).Msg(errMsgUnknownHandler + " logger=" + lname + " handler=" + hname)}
			}
		}
	}

	return nil
}

// validateSpec checks the overrides of a load request against the definition
// they are applied to.
func validateSpec(spec ConfigSpec, def *Definition) error {
	const op errors.Op = "logconfig.validateSpec"

	if spec.LogLevel != emptyString {
		if _, err := parseLevel(spec.LogLevel); err != nil {
			return &ConfigValidationError{Name: spec.Name, Err: errors.New(op).Err(err).Msg(errMsgInvalidLevel)}
		}
	}
	if spec.Formatter != emptyString {
		if _, ok := def.Formatters[spec.Formatter]; !ok && !isBuiltinFormatter(spec.Formatter) {
			return &ConfigValidationError{Name: spec.Name, Err: errors.New(op).Msg(errMsgUnknownFormatter + " formatter=" + spec.Formatter)}
		}
	}
	return nil
}

// validateConfig checks the registry configuration.
func validateConfig(cfg *Config) error {
	const op errors.Op = "logconfig.validateConfig"
	if err := validatorInstance().Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	return nil
}
