// errors.go - Structured per-call errors shared by every codec in the module.
package pix

import (
	"errors"
	"fmt"
)

// Kind classifies a codec failure.
type Kind int

const (
	KindFileOpen    Kind = iota + 1 // path unreadable or unwritable
	KindFormat                      // bad magic, non-positive size/offset
	KindUnsupported                 // header variant, compression, indexed colour, bit depth
	KindIO                          // short read or write
	KindOutOfMemory                 // allocation refused
	KindFilename                    // dimension-encoding parse failure
)

var kindNames = map[Kind]string{
	KindFileOpen:    "file open error",
	KindFormat:      "format error",
	KindUnsupported: "unsupported variant",
	KindIO:          "io error",
	KindOutOfMemory: "out of memory",
	KindFilename:    "filename format error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// maxMessageLen bounds the human-readable part of an Error.
const maxMessageLen = 256

// Error is returned by every read, write and conversion in this module.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: bound(fmt.Sprintf(format, args...))}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: bound(fmt.Sprintf(format, args...)), Err: cause}
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func bound(s string) string {
	if len(s) > maxMessageLen {
		return s[:maxMessageLen-3] + "..."
	}
	return s
}
