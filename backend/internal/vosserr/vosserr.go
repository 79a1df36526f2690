// Package vosserr defines the sentinel error kinds shared across the grid
// morphology engine. Call sites wrap one of these
// with fmt.Errorf("...: %w", err) rather than constructing ad-hoc error
// types, matching the wrapping convention used throughout the rest of this
// module.
package vosserr

import "errors"

var (
	// ErrInvalidInput covers fewer than the minimum accepted atoms, a
	// non-positive spacing or negative probe, malformed ingestion input,
	// grids of mismatched shape, and an unsatisfiable num-channels request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGridTooLarge means the derived num_bins would exceed 2^31 - 1; the
	// caller should retry with the suggested ideal spacing.
	ErrGridTooLarge = errors.New("grid too large")

	// ErrEmptyVolume means an MRC write was attempted against a grid with
	// zero filled voxels.
	ErrEmptyVolume = errors.New("empty volume")

	// ErrPlausibilityExceeded means a tunnel run exceeded a hard
	// volume cap and was aborted without producing output.
	ErrPlausibilityExceeded = errors.New("plausibility bound exceeded")

	// ErrIoFailure wraps any failed read or write; callers append the
	// offending path.
	ErrIoFailure = errors.New("io failure")
)
