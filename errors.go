package hll

import "github.com/pkg/errors"

// ErrInvalidParameter is wrapped by every parameter range/form violation.
var ErrInvalidParameter = errors.New("hll: invalid parameter")

// ErrData is wrapped by every wire/state consistency failure: unknown
// version, bad padding, size mismatch, oversize body, non-ascending or
// duplicate Explicit tokens, a Dense length mismatch during union, m<=8 in
// the estimator, or a parameter mismatch during Union.
var ErrData = errors.New("hll: data error")

// ErrInsufficientBytes is returned by DecodeSketch when the provided byte
// slice is shorter than the 3-byte header.
var ErrInsufficientBytes = errors.Wrap(ErrData, "insufficient bytes to decode sketch")

// ErrIncompatible is returned by Union when the two sketches' parameters
// differ.
var ErrIncompatible = errors.Wrap(ErrData, "cannot union sketches with different parameters")

// errDataf wraps ErrData with a formatted message.
func errDataf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrData, format, args...)
}
