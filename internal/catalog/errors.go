package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Decode failure kinds. A *DecodeError wraps exactly one of these.
var (
	ErrSyntax                  = errors.New("malformed document")
	ErrMissingField            = errors.New("missing required field")
	ErrTypeMismatch            = errors.New("wrong value type")
	ErrInvalidVersion          = errors.New("invalid semantic version")
	ErrInvalidURL              = errors.New("invalid URL")
	ErrInvalidUUID             = errors.New("invalid UUID")
	ErrInvalidCategory         = errors.New("invalid category")
	ErrMissingDiscriminator    = errors.New("missing installation type")
	ErrUnknownInstallationType = errors.New("unknown installation type")
)

// DecodeError locates a decode failure inside a catalog document.
type DecodeError struct {
	Path   string // e.g. fonts[0].installations[1].type; empty for the root
	Line   int    // 1-based; 0 when unknown
	Column int    // 1-based; 0 when unknown
	Value  string // raw offending value, if any
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d, column %d", e.Line, e.Column)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsParseError reports whether err is a malformed version or URL string.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidVersion) || errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrInvalidUUID)
}

// IsSchemaError reports whether err is a structural schema violation.
func IsSchemaError(err error) bool {
	for _, k := range []error{ErrMissingField, ErrTypeMismatch, ErrInvalidCategory, ErrMissingDiscriminator, ErrUnknownInstallationType} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Reference problems found by CheckReferences.
var (
	ErrDanglingFont     = errors.New("references unknown font")
	ErrDanglingDownload = errors.New("references unknown download")
	ErrDuplicateID      = errors.New("duplicate id")
)

// ReferenceError reports one referential integrity violation.
type ReferenceError struct {
	Path string
	ID   string
	Err  error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %v %s", e.Path, e.Err, e.ID)
}

func (e *ReferenceError) Unwrap() error { return e.Err }
