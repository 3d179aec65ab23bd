// Package apperrors defines the domain error taxonomy. Services return
// these typed errors; handlers map them to HTTP statuses in one place
// instead of string-matching error text at every call site.
package apperrors

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindExpired
	KindAuthorization
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }
func Expired(msg string) *Error       { return &Error{Kind: KindExpired, Message: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

// IsKind reports whether err is (or wraps) a domain error of kind k.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// AsError unwraps err into a domain error, or nil if it is not one.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
