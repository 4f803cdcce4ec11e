// Package dberrors provides the single tagged error kind used across the
// database and WAL decoding/encoding packages.
package dberrors

import "fmt"

// Kind identifies the category of a decode/encode failure.
type Kind int

const (
	// KindInvalidMagic means the 16-byte database magic string did not match.
	KindInvalidMagic Kind = iota
	// KindUnsupportedFormat means a WAL declared a file-format version this
	// library does not implement.
	KindUnsupportedFormat
	// KindUnsupportedEncoding means a text encoding other than UTF-8 was
	// required to decode a record value, or the header declared an encoding
	// outside {unspecified, UTF-8, UTF-16LE, UTF-16BE}.
	KindUnsupportedEncoding
	// KindUnsupportedPageType means a B-tree page header byte did not match
	// one of the four known page kinds.
	KindUnsupportedPageType
	// KindUnsupportedSerialType means a record column's serial type code is
	// not one this library decodes.
	KindUnsupportedSerialType
	// KindEndOfInput means fewer bytes remained than a primitive read needed.
	KindEndOfInput
	// KindTruncatedFile means a database's trailing bytes were not an exact
	// multiple of the page size.
	KindTruncatedFile
	// KindPageSizeMismatch means a WAL's page size did not match the
	// database's page size during backfill.
	KindPageSizeMismatch
	// KindSaltMismatch means a WAL frame's salts disagreed with its header's.
	KindSaltMismatch
	// KindMissingPage means page 1 was absent from a database being encoded.
	KindMissingPage
	// KindTruncationRequired means a commit frame signalled that the
	// database must shrink; the core reports this rather than truncating.
	KindTruncationRequired
	// KindOverflow means a numeric value did not fit its target width.
	KindOverflow
	// KindChecksumMisaligned means a checksum input was not a multiple of
	// 8 bytes (two 32-bit words).
	KindChecksumMisaligned
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMagic:
		return "invalid magic"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindUnsupportedEncoding:
		return "unsupported encoding"
	case KindUnsupportedPageType:
		return "unsupported page type"
	case KindUnsupportedSerialType:
		return "unsupported serial type"
	case KindEndOfInput:
		return "end of input"
	case KindTruncatedFile:
		return "truncated file"
	case KindPageSizeMismatch:
		return "page size mismatch"
	case KindSaltMismatch:
		return "salt mismatch"
	case KindMissingPage:
		return "missing page"
	case KindTruncationRequired:
		return "truncation required"
	case KindOverflow:
		return "overflow"
	case KindChecksumMisaligned:
		return "checksum misaligned"
	default:
		return "unknown error"
	}
}

// Error is the single tagged error type returned by this module. Every
// failure path returns one; the library never panics on malformed input and
// never retries internally.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Kind, so callers can
// use errors.Is(err, dberrors.New(KindEndOfInput, "")) style checks, or more
// idiomatically errors.As plus a Kind comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an Error with the given kind and context message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error with the given kind, context message, and cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
