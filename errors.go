package tmx

import (
	"errors"
	"fmt"
)

// Kinds of parse failure. Every error returned by Decode & DecodeWithConfig
// matches exactly one of these with errors.Is. Open, OpenWithConfig &
// OpenTileset can also return file system errors (eg. os.ErrNotExist for a
// missing map or external tileset), which match none of them.
var (
	// ErrXMLDecoding means the underlying tag syntax was malformed.
	ErrXMLDecoding = errors.New("xml decoding error")

	// ErrPrematureEnd means the document (or an enclosing tag) ended before
	// the content we needed.
	ErrPrematureEnd = errors.New("premature end")

	// ErrMalformedAttributes means a required attribute was missing or could
	// not be converted.
	ErrMalformedAttributes = errors.New("malformed attributes")

	// ErrBase64Decoding means a base64 tile payload was invalid.
	ErrBase64Decoding = errors.New("base64 decoding error")

	// ErrDecompressing means a compressed tile payload was corrupt or truncated.
	ErrDecompressing = errors.New("decompression error")

	// ErrUnrecognizedFormat covers unknown encodings, compressions and
	// combinations thereof, plus the unsupported inline XML tile format.
	ErrUnrecognizedFormat = errors.New("unrecognized format")
)

// Error is a single parse failure.
type Error struct {
	// Kind is one of the Err* values above
	Kind error

	// Detail is a human readable description of what went wrong
	Detail string

	// Err is the underlying cause, if any
	Err error
}

// Error implements error
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is / errors.As see both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: cause}
}
