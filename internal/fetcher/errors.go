package fetcher

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure. The UI chooses the message and whether
// the failure is user-correctable based on the kind.
type Kind int

const (
	// KindFetchFailed is a generic subprocess failure; retryable by
	// re-confirming the selection.
	KindFetchFailed Kind = iota
	// KindNotFound means the subprocess reported an unknown or dataless
	// ticker.
	KindNotFound
	// KindTimeout means the subprocess outlived the bounded wait.
	KindTimeout
	// KindDecode means the subprocess returned bytes that are not a usable
	// image; treated like KindFetchFailed for retry purposes.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindTimeout:
		return "timeout"
	case KindDecode:
		return "decode error"
	default:
		return "fetch failed"
	}
}

// Error is a classified fetch failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from any error on the fetch path.
// Unclassified errors count as generic fetch failures.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindFetchFailed
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
