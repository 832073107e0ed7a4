package ising

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a parameter outside its valid range,
	// such as a non-positive lattice size or temperature.
	ErrInvalidParameter = errors.New("ising: invalid parameter")

	// ErrInvalidSnapshot indicates a snapshot that cannot be restored
	// (wrong spin count or a value other than +1/-1).
	ErrInvalidSnapshot = errors.New("ising: invalid snapshot")
)
