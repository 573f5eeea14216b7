// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates user-supplied form data failed validation.
// Wrap with context: fmt.Errorf("task text is empty: %w", ErrValidation).
var ErrValidation = errors.New("validation failed")
