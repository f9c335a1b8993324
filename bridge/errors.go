package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a round trip could not produce an answer
type Kind string

const (
	KindAdapterNotFound Kind = "adapter_not_found" // no usable presentation executable
	KindIO              Kind = "io_error"          // request artifact could not be written
	KindAdapter         Kind = "adapter_error"     // adapter failed to launch or exited non-zero
	KindTimeout         Kind = "timeout"           // no answer within the configured bound
	KindInterrupted     Kind = "interrupted"       // caller cancelled the invocation
)

// Sentinels for errors.Is matching against a bridge Error
var (
	ErrAdapterNotFound = errors.New("presentation adapter not found")
	ErrIO              = errors.New("request artifact I/O failed")
	ErrAdapter         = errors.New("presentation adapter failed")
	ErrTimeout         = errors.New("timed out waiting for a decision")
	ErrInterrupted     = errors.New("confirmation interrupted")
)

func (k Kind) sentinel() error {
	switch k {
	case KindAdapterNotFound:
		return ErrAdapterNotFound
	case KindIO:
		return ErrIO
	case KindAdapter:
		return ErrAdapter
	case KindTimeout:
		return ErrTimeout
	case KindInterrupted:
		return ErrInterrupted
	}
	return nil
}

// Error is a failed round trip. It is never used for a user cancellation,
// which is a normal UserResponse.
type Error struct {
	Kind      Kind
	RequestID string
	Stderr    string // adapter diagnostic output, verbatim
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		b.WriteString(sentinel.Error())
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ": %s", stderr)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of a bridge error, or "" for any other error
func KindOf(err error) Kind {
	var berr *Error
	if errors.As(err, &berr) {
		return berr.Kind
	}
	return ""
}
