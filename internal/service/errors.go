package service

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrCareerNotFound     = errors.New("career not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrInvalidTraitValue  = errors.New("invalid trait value")
)

// ConfigError describe contenido mal configurado; se reporta al cargar, nunca al puntuar.
type ConfigError struct {
	Scope  string
	Reason string
}

func newConfigError(scope, reason string) *ConfigError {
	return &ConfigError{Scope: scope, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Scope, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
