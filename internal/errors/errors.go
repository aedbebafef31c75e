// Package errors provides structured errors for the routing engine.
//
// Configuration errors (bad base path, unroutable navigation target) are
// programmer errors and are signaled immediately to the caller. The redirect
// loop bound is the only runtime condition treated as fatal.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies an error.
type Category string

const (
	// CategoryConfig marks route/navigation setup errors.
	CategoryConfig Category = "config"

	// CategoryNavigation marks errors raised while processing a navigation.
	CategoryNavigation Category = "navigation"

	// CategoryParse marks location parsing failures. These are recovered
	// locally and only surface through the observability sink.
	CategoryParse Category = "parse"
)

// Sentinels for errors.Is matching.
var (
	// ErrTooManyRedirects is returned when a synchronous redirect chain
	// exceeds the engine's bound.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrInvalidPath is returned when a navigation target cannot be
	// resolved to a routable path.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidBase is returned when the router's base path does not
	// resolve.
	ErrInvalidBase = errors.New("invalid base path")

	// ErrConfig is returned for configuration file problems.
	ErrConfig = errors.New("configuration error")
)

// Error is a structured error with a stable code and category.
type Error struct {
	// Code is a unique error identifier (e.g. "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// InvalidBase builds the fatal error for an unresolvable base path.
func InvalidBase(base string) *Error {
	return &Error{
		Code:       "R001",
		Category:   CategoryConfig,
		Message:    fmt.Sprintf("%q is not a valid base path", base),
		Suggestion: "base paths must be absolute and contain no wildcard segments",
		Wrapped:    ErrInvalidBase,
	}
}

// UnroutablePath builds the fatal error for a navigation target that does
// not resolve.
func UnroutablePath(to string) *Error {
	return &Error{
		Code:       "R002",
		Category:   CategoryConfig,
		Message:    fmt.Sprintf("path %q is not a routable path", to),
		Suggestion: "relative targets resolve against the calling route; pass an absolute path or disable resolution",
		Wrapped:    ErrInvalidPath,
	}
}

// ConfigMissing builds the error for an absent configuration file.
func ConfigMissing(path string) *Error {
	return &Error{
		Code:       "R004",
		Category:   CategoryConfig,
		Message:    fmt.Sprintf("no configuration found at %s", path),
		Suggestion: "create a strada.json or pass an explicit path",
		Wrapped:    ErrConfig,
	}
}

// ConfigInvalid builds the error for an unreadable or unparsable
// configuration file.
func ConfigInvalid(detail string, wrapped error) *Error {
	return &Error{
		Code:     "R005",
		Category: CategoryConfig,
		Message:  "configuration is invalid",
		Detail:   detail,
		Wrapped:  errors.Join(ErrConfig, wrapped),
	}
}

// RedirectLoop builds the fatal error for an exhausted redirect chain.
func RedirectLoop(limit int) *Error {
	return &Error{
		Code:     "R003",
		Category: CategoryNavigation,
		Message:  fmt.Sprintf("too many redirects (limit %d)", limit),
		Detail:   "a synchronous navigation burst kept redirecting without settling",
		Wrapped:  ErrTooManyRedirects,
	}
}
