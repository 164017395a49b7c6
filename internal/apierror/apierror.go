// Package apierror provides the standardized error structures used across the
// terminal gateway. Every failure shown to the operator (an unreachable
// central API, a rejected mutation, a malformed response, a bad form) is
// normalized here to a displayable message with a classification, so views
// never interpret raw transport errors.
package apierror

import "fmt"

// Kind classifies where a failure originated.
type Kind int

const (
	// KindTransport: the central API could not be reached at all.
	KindTransport Kind = iota
	// KindUpstream: the central API answered with a non-2xx status.
	KindUpstream
	// KindParse: the central API answered with a body the gateway does not
	// recognize. Reported loudly instead of probing alternate shapes.
	KindParse
	// KindValidation: the input failed a client-side check before any
	// network call was made.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the normalized failure every layer of the gateway propagates.
// Detail is always safe to display to the operator.
type Error struct {
	Kind   Kind              `json:"kind"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

// Transport builds a KindTransport error.
func Transport(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTransport, Detail: fmt.Sprintf(format, args...)}
}

// Upstream builds a KindUpstream error carrying the server-supplied message.
func Upstream(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUpstream, Detail: fmt.Sprintf(format, args...)}
}

// Parse builds a KindParse error.
func Parse(format string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, Detail: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

// FieldValidation wraps per-field messages from form validation.
func FieldValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "validation failed", Fields: fields}
}

// From normalizes an arbitrary error into *Error. Already-normalized errors
// pass through untouched; anything else becomes an upstream error so the
// message stays displayable.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: KindUpstream, Detail: err.Error()}
}

// APIError is the canonical envelope for the gateway's own 4xx/5xx HTTP
// responses to the embedded UI.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors for form responses.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
