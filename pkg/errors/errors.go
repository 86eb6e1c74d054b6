// Package errors provides custom error types for the humansort system.
// Every failure the ranking engine can report has a sentinel value and a
// typed error carrying the details, so callers can branch with errors.Is
// and render a useful message with errors.As.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers only need
// to import this package.
var (
	Is = errors.Is
	As = errors.As
)

// ResourceItem is the resource name used for ranked items.
const ResourceItem = "item"

// Common sentinel errors for the humansort system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrInsufficientItems indicates there are not enough items to fill a batch
	ErrInsufficientItems = errors.New("insufficient items")

	// ErrTooFewItems indicates a judgment named fewer than two items
	ErrTooFewItems = errors.New("too few items")

	// ErrUnknownItem indicates a referenced item value is not in the state
	ErrUnknownItem = errors.New("unknown item")

	// ErrDuplicateItem indicates an item value would collide with another item
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrInvalidBatchSize indicates a batch size outside the supported range
	ErrInvalidBatchSize = errors.New("invalid batch size")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Resource == ResourceItem {
		return fmt.Sprintf("unknown item %q", e.ID)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	if target == ErrUnknownItem {
		return e.Resource == ResourceItem
	}
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewUnknownItemError creates the error returned when value names no item.
func NewUnknownItemError(value string) *NotFoundError {
	return &NotFoundError{Resource: ResourceItem, ID: value}
}

// AlreadyExistsError represents an identity collision.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Resource == ResourceItem {
		return fmt.Sprintf("duplicate item %q", e.ID)
	}
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *AlreadyExistsError) Is(target error) bool {
	if target == ErrDuplicateItem {
		return e.Resource == ResourceItem
	}
	return target == ErrAlreadyExists
}

// NewDuplicateItemError creates the error returned when value already names an item.
func NewDuplicateItemError(value string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: ResourceItem, ID: value}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidBatchSize {
		return e.Field == "batch_size"
	}
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NewInvalidBatchSizeError reports a batch size outside [lo, hi].
func NewInvalidBatchSizeError(n, lo, hi int) *ValidationError {
	return &ValidationError{
		Field:   "batch_size",
		Value:   n,
		Message: fmt.Sprintf("%d is outside the allowed range %d..%d", n, lo, hi),
	}
}

// InsufficientItemsError reports that a batch cannot be filled.
type InsufficientItemsError struct {
	Have int
	Need int
}

// Error implements the error interface
func (e *InsufficientItemsError) Error() string {
	return fmt.Sprintf("insufficient items: have %d, need at least %d", e.Have, e.Need)
}

// Is implements errors.Is support
func (e *InsufficientItemsError) Is(target error) bool {
	return target == ErrInsufficientItems
}

// TooFewItemsError reports a judgment without both a winner and a loser.
type TooFewItemsError struct {
	Got int
}

// Error implements the error interface
func (e *TooFewItemsError) Error() string {
	return fmt.Sprintf("too few items in judgment: got %d, need at least 2", e.Got)
}

// Is implements errors.Is support
func (e *TooFewItemsError) Is(target error) bool {
	return target == ErrTooFewItems
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "list"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "lock"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "save", "merge", "judge"
	Resource  string // "state", "item", "store"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInsufficientItems checks if a batch could not be filled
func IsInsufficientItems(err error) bool {
	return errors.Is(err, ErrInsufficientItems)
}

// IsTooFewItems checks if a judgment had fewer than two items
func IsTooFewItems(err error) bool {
	return errors.Is(err, ErrTooFewItems)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
