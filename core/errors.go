package core

import "errors"

var (
	// ErrModulusTooSmall is returned when the modulus cannot define a field.
	ErrModulusTooSmall = errors.New("core: modulus must be at least 2")

	// ErrModulusNotPrime is returned when the modulus is composite.
	ErrModulusNotPrime = errors.New("core: modulus is not prime")

	// ErrNotInvertible is returned when inverting zero.
	ErrNotInvertible = errors.New("core: zero has no multiplicative inverse")

	// ErrLengthMismatch is returned when values and anchors differ in length.
	ErrLengthMismatch = errors.New("core: values and anchors have different lengths")

	// ErrDuplicateAnchor is returned when two anchors coincide modulo p.
	ErrDuplicateAnchor = errors.New("core: anchors must be pairwise distinct")

	// ErrEmptyCodeword is returned when committing to an empty codeword.
	ErrEmptyCodeword = errors.New("core: codeword is empty")

	// ErrInvalidOpening is returned when an opened symbol fails verification.
	ErrInvalidOpening = errors.New("core: invalid opening")

	// ErrInvalidQueries is returned when a negative number of spot checks is requested.
	ErrInvalidQueries = errors.New("core: query count must not be negative")

	// ErrQueryMismatch is returned when openings do not match the derived query positions.
	ErrQueryMismatch = errors.New("core: openings do not match queried positions")
)
