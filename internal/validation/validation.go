// Package validation checks and normalizes client-supplied bug fields.
//
// Validators accept raw decoded JSON values (any) and return a Result rather
// than an error: an invalid field is an expected outcome that callers branch
// on, not a failure. Rule evaluation is delegated to ozzo-validation; this
// package only fixes the type checks and the client-facing messages.
package validation

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tbourn/go-bug-tracker/internal/domain"
)

// Result is the outcome of validating a single field.
//
// When Valid is true, Value holds the normalized field value and Error is
// empty. When Valid is false, Error holds a human-readable message naming the
// field and the violated constraint.
type Result struct {
	Valid bool
	Value string
	Error string
}

func valid(v string) Result    { return Result{Valid: true, Value: v} }
func invalid(msg string) Result { return Result{Error: msg} }

// ValidateTitle accepts a string of 1..100 runes after trimming and returns the
// trimmed value.
func ValidateTitle(v any) Result {
	return validateText(v, "Title", domain.TitleMaxLen)
}

// ValidateDescription accepts a string of 1..500 runes after trimming and
// returns the trimmed value.
func ValidateDescription(v any) Result {
	return validateText(v, "Description", domain.DescriptionMaxLen)
}

// ValidateStatus accepts exactly one of domain.Statuses.
func ValidateStatus(v any) Result {
	return validateEnum(v, "Status", statusValues)
}

// ValidatePriority accepts exactly one of domain.Priorities.
func ValidatePriority(v any) Result {
	return validateEnum(v, "Priority", priorityValues)
}

func validateText(v any, field string, max int) Result {
	s, ok := v.(string)
	if !ok {
		return invalid(field + " is required and must be a string")
	}
	s = strings.TrimSpace(s)
	err := validation.Validate(s,
		validation.Required.Error(field+" cannot be empty"),
		validation.RuneLength(1, max).Error(field+" cannot exceed "+strconv.Itoa(max)+" characters"),
	)
	if err != nil {
		return invalid(err.Error())
	}
	return valid(s)
}

func validateEnum(v any, field string, allowed []any) Result {
	msg := field + " must be one of: " + join(allowed)
	s, ok := v.(string)
	if !ok {
		return invalid(msg)
	}
	err := validation.Validate(s,
		validation.Required.Error(msg),
		validation.In(allowed...).Error(msg),
	)
	if err != nil {
		return invalid(err.Error())
	}
	return valid(s)
}

var (
	statusValues   = toAny(domain.Statuses)
	priorityValues = toAny(domain.Priorities)
)

// toAny converts enum members to plain strings so ozzo's In rule compares them
// against decoded JSON strings.
func toAny[T ~string](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func join(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.(string)
	}
	return strings.Join(parts, ", ")
}
