// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// FormatError describes a raw transaction that cannot be decoded: it is
// truncated relative to a length or count it declares, uses a non-canonical
// variable length integer, or exceeds a size limit.
type FormatError struct {
	Func        string // Function name
	Description string // Human readable description of the issue
	Err         error  // Underlying read error, if any
}

// Error satisfies the error interface and prints human-readable errors.
func (e *FormatError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

// Unwrap returns the underlying read error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// formatError creates a FormatError given a set of arguments.
func formatError(f string, desc string) *FormatError {
	return &FormatError{Func: f, Description: desc}
}

// EncodingError describes a transaction that cannot be serialized because a
// field does not fit the encoding, such as a script larger than MaxScriptSize.
type EncodingError struct {
	Func        string
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e *EncodingError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

func encodingError(f string, desc string) *EncodingError {
	return &EncodingError{Func: f, Description: desc}
}

// readError converts a short read while decoding field into a FormatError.
// Other errors are returned unchanged.
func readError(f string, field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{
			Func:        f,
			Description: fmt.Sprintf("data truncated while reading %s", field),
			Err:         err,
		}
	}
	return err
}

// IsFormatError returns whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsEncodingError returns whether err is or wraps an *EncodingError.
func IsEncodingError(err error) bool {
	var encodingErr *EncodingError
	return errors.As(err, &encodingErr)
}
