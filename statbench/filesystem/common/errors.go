package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types used across filesystem packages
var (
	ErrPathEmpty            = errors.New("path cannot be empty")
	ErrPathTooLong          = errors.New("path too long (max 4096 characters)")
	ErrPathInvalid          = errors.New("path contains invalid characters")
	ErrUnsupportedEntryKind = errors.New("unsupported entry kind")
	ErrUnknownProvider      = errors.New("unknown stat provider")
	ErrNativeUnavailable    = errors.New("native stat provider is not available on this platform")
	ErrFixtureOccupied      = errors.New("missing-path fixture exists")
)

// EntryKindError reports an entry whose type is neither a directory nor a regular file.
type EntryKindError struct {
	Path string
	Type string // e.g. "symlink", "fifo", "socket"
}

func (e *EntryKindError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrUnsupportedEntryKind, e.Path, e.Type)
}

// Is lets errors.Is match ErrUnsupportedEntryKind.
func (e *EntryKindError) Is(target error) bool {
	return target == ErrUnsupportedEntryKind
}

// ValidationUtils provides common validation utilities used across packages
type ValidationUtils struct{}

// NewValidationUtils creates a new ValidationUtils instance
func NewValidationUtils() *ValidationUtils {
	return &ValidationUtils{}
}

// ValidatePath validates that a path is non-empty, not too long and free of NUL bytes
func (vu *ValidationUtils) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathEmpty
	}
	if len(path) > 4096 {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return ErrPathInvalid
	}
	return nil
}

// ErrorUtils provides common error handling utilities
type ErrorUtils struct{}

// NewErrorUtils creates a new ErrorUtils instance
func NewErrorUtils() *ErrorUtils {
	return &ErrorUtils{}
}

// WrapError wraps an error with additional context
func (eu *ErrorUtils) WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	context := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", context, err)
}
