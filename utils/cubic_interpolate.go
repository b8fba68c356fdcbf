// SPDX-License-Identifier: EPL-2.0

package utils

// Float is the set of sample types the interpolator accepts.
type Float interface {
	~float32 | ~float64
}

// CubicInterpolate evaluates the Catmull-Rom segment between y1 and y2 at the
// fractional position x in [0, 1]. y0 and y3 are the outer neighbours.
func CubicInterpolate[T Float](y0, y1, y2, y3, x T) T {
	a := (-y0 + 3*y1 - 3*y2 + y3) / 2
	b := y0 - (5*y1)/2 + 2*y2 - y3/2
	c := (y2 - y0) / 2

	return ((a*x+b)*x+c)*x + y1
}
