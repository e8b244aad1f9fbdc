package shared

import (
	"errors"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by validation rules
const (
	CodeInvalidFormat        = "INVALID_FORMAT"
	CodeInvalidChecksum      = "INVALID_CHECKSUM"
	CodeInvalidPostalCode    = "INVALID_POSTAL_CODE"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidFormat       = NewDomainError(CodeInvalidFormat, "Invalid format")
	ErrInvalidChecksum     = NewDomainError(CodeInvalidChecksum, "Invalid check digits")
	ErrInvalidPostalCode   = NewDomainError(CodeInvalidPostalCode, "Postal code must contain 8 digits")
	ErrMissingRequired     = NewDomainError(CodeMissingRequiredField, "Required field is missing")
)

// ValidationErrors collects field-keyed validation errors for display.
// Create it with make or a composite literal before calling Add.
type ValidationErrors map[string][]error

// Add records err against field; nil errors are ignored
func (v ValidationErrors) Add(field string, err error) {
	if err == nil {
		return
	}
	v[field] = append(v[field], err)
}

// AddMessage records a plain message against field
func (v ValidationErrors) AddMessage(field, message string) {
	v.Add(field, NewDomainError("INVALID_INPUT", message))
}

// Merge copies every error of other into v, prefixing field names with prefix
func (v ValidationErrors) Merge(prefix string, other ValidationErrors) {
	for field, errs := range other {
		v[prefix+field] = append(v[prefix+field], errs...)
	}
}

// HasErrors returns true if at least one field has an error
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Fields returns the failing field names in sorted order
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Messages returns the display messages recorded for field
func (v ValidationErrors) Messages(field string) []string {
	errs := v[field]
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return messages
}

// Err returns v as an error, or nil when there is nothing to report
func (v ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Error implements the error interface
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, field+": "+strings.Join(v.Messages(field), ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the recorded errors in field order to errors.Is and errors.As
func (v ValidationErrors) Unwrap() []error {
	var errs []error
	for _, field := range v.Fields() {
		errs = append(errs, v[field]...)
	}
	return errs
}

// AsValidationErrors extracts a ValidationErrors collection from err
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
