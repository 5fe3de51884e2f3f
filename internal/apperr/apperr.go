package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can map it to an exit code or
// HTTP status without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnsupportedFormat
	KindEmptyContent
	KindGateway
	KindStorage
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindEmptyContent:
		return "empty_content"
	case KindGateway:
		return "gateway"
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func UnsupportedFormat(format string, args ...any) *Error {
	return &Error{Kind: KindUnsupportedFormat, Msg: fmt.Sprintf(format, args...)}
}

func EmptyContent(format string, args ...any) *Error {
	return &Error{Kind: KindEmptyContent, Msg: fmt.Sprintf(format, args...)}
}

func Gateway(err error, format string, args ...any) *Error {
	return &Error{Kind: KindGateway, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Storage(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Msg: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from anywhere in the error chain.
// A nil error yields KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
