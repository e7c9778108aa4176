package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with an existing row.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized is returned for bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal wraps storage and connectivity failures. Its detail is
	// logged, never shown to clients.
	ErrInternal = errors.New("internal failure")
)

// ValidationError carries field-level messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// internal tags err as ErrInternal while keeping the cause in the chain.
func internal(op string, err error) error {
	return fmt.Errorf("services: %s: %w: %w", op, ErrInternal, err)
}
