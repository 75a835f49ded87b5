// Package apperror defines the typed error taxonomy shared by the domain
// services and the presentation layer. Handlers map the Kind to an HTTP
// status and a stable machine-readable reason code.
package apperror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindUnprocessable
)

// Reason codes carried in error responses.
const (
	CodeInvalidParameter = "COMMON_INVALID_PARAMETER"
	CodeNotFound         = "COMMON_NOT_FOUND"
	CodeInternal         = "COMMON_INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string

	// DisplayedValue carries a value the caller should surface to the end
	// user, e.g. the maximum affordable amount on a rejected request.
	DisplayedValue *decimal.Decimal

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Code: CodeInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unprocessable(message string, displayedValue *decimal.Decimal) *Error {
	return &Error{Kind: KindUnprocessable, Code: CodeInvalidParameter, Message: message, DisplayedValue: displayedValue}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// outside the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// From returns the *Error inside err, or a KindInternal wrapper when err is
// not part of the taxonomy.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal error", err)
}
