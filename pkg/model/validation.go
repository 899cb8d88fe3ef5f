package model

import (
	"fmt"
	"strings"
)

// FieldError is a single inline form error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every problem found in an input so a form can
// show all of them at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "model: invalid input: " + strings.Join(parts, "; ")
}

// For returns the messages recorded against field.
func (v ValidationErrors) For(field string) []string {
	var out []string
	for _, fe := range v {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

// Err returns nil when nothing was recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) add(field, format string, args ...interface{}) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

const maxTitleLength = 200

func (v *ValidationErrors) requireTitle(field, value string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		v.add(field, "is required")
	case len([]rune(value)) > maxTitleLength:
		v.add(field, "must be at most %d characters", maxTitleLength)
	}
}
