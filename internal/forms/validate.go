// Package forms turns raw form field values into typed store requests.
//
// Every form validates synchronously on submit. A form in create mode emits a
// Create*Request; a form bound to an existing entity emits an Update*Request.
// Nothing in this package touches storage.
package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError describes one invalid field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failing field of a submit
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

// For returns the message for field, or "" when the field is valid
func (e *ValidationError) For(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

type validator struct {
	errs []FieldError
}

func (v *validator) fail(field, msg string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: msg})
}

// required reports whether value is non-blank, recording an error otherwise
func (v *validator) required(field, label, value string, plural bool) bool {
	if strings.TrimSpace(value) != "" {
		return true
	}
	verb := "is"
	if plural {
		verb = "are"
	}
	v.fail(field, fmt.Sprintf("%s %s required", label, verb))
	return false
}

func (v *validator) minLength(field, label, value string, n int) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		v.fail(field, fmt.Sprintf("%s must be at least %d characters", label, n))
	}
}

// text applies required + minLength, skipping the length check on blank input
func (v *validator) text(field, label, value string, n int, plural bool) {
	if v.required(field, label, value, plural) {
		v.minLength(field, label, value, n)
	}
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}
