package core

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the surface offset used for over/under points and parallel-ray checks
const Epsilon = 1e-4

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}

// ApproxEqual reports whether a and b differ by at most tolerance
func ApproxEqual(a, b, tolerance float64) bool {
	return scalar.EqualWithinAbs(a, b, tolerance)
}
