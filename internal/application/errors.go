package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidSource     = errors.New("invalid source")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidPath       = errors.New("invalid path")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SourceError reports a document that could not be loaded
type SourceError struct {
	Source string
	Op     string // "open", "read", "decode"
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (e *SourceError) Is(target error) bool {
	return target == ErrInvalidSource
}

// LookupError reports a path that does not resolve in the document
type LookupError struct {
	Path string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("path %s not found", e.Path)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
