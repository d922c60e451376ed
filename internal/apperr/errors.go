package apperr

import "errors"

// ErrPackageNotFound is returned when a module path is not recorded in the
// binary's build information. Use errors.Is(err, apperr.ErrPackageNotFound)
// to detect it; the version package recovers it into the "unknown" sentinel.
var ErrPackageNotFound = errors.New("package metadata not found")

// ErrInvalidInput is returned when user-provided input fails validation.
var ErrInvalidInput = errors.New("invalid input")
