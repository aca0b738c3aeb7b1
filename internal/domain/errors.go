package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("record not found")
	ErrForbidden              = errors.New("your role is not permitted to perform this action")
	ErrInvalidState           = errors.New("application is not awaiting this action")
	ErrConcurrentModification = errors.New("application was changed by another user, reload and try again")
	ErrDuplicateReference     = errors.New("reference number is already in use")
)

// InvalidState wraps ErrInvalidState with the status that was found.
func InvalidState(expected, actual string) error {
	return fmt.Errorf("%w: expected %s, found %s", ErrInvalidState, expected, actual)
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned before anything is written when input is
// missing or malformed.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Add(field, rule, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Message: message})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type scanError struct {
	target string
	value  any
}

func (e *scanError) Error() string {
	return fmt.Sprintf("cannot scan %T into %s", e.value, e.target)
}
