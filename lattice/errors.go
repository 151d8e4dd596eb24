package lattice

import "errors"

var (
	// ErrIncompatibleDecomposition indicates global sizes that the rank
	// grid does not divide, or sizes that can not describe a lattice.
	ErrIncompatibleDecomposition = errors.New("lattice: global sizes incompatible with rank sizes")
	// ErrOddLocalVolume indicates a local volume that can not be split
	// into even and odd sites.
	ErrOddLocalVolume = errors.New("lattice: local volume must be even")
	// ErrNoEvenDimensionFound indicates that no local direction has an
	// even size to host the checkerboard split.
	ErrNoEvenDimensionFound = errors.New("lattice: no local direction of even size")
	// ErrInvalidFactorizationInput indicates a non positive number passed
	// to Factorize.
	ErrInvalidFactorizationInput = errors.New("lattice: factorization input must be positive")
)
