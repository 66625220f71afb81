package schema

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error caused by a bad model declaration
// or a bad application setup
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError describes a fatal model or application misconfiguration
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ConfigErrorf formats a ConfigurationError
func ConfigErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
