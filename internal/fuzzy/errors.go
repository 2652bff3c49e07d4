package fuzzy

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a malformed variable definition or rule table.
// It is fatal: an engine is never built from a configuration that produced one.
type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %q: %s", e.Variable, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(variable, format string, args ...any) error {
	return &ConfigurationError{Variable: variable, Reason: fmt.Sprintf(format, args...)}
}
