//go:build ui512_scalar

package ui512

const forceScalar = true
