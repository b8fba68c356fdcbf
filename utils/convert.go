// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Int16Ceiling is the magnitude ceiling of 16-bit signed PCM.
const Int16Ceiling = 32768.0

// Ceiling returns the magnitude ceiling 2^(bitDepth-1) for signed PCM of the
// given bit depth.
func Ceiling(bitDepth int) float64 {
	return math.Ldexp(1, bitDepth-1)
}

// Int16ToFloat64 maps a 16-bit sample into the normalized domain [-1, 1).
func Int16ToFloat64(s int16) float64 {
	return float64(s) / Int16Ceiling
}

// Float64ToInt16 narrows a normalized sample back to 16-bit PCM, truncating
// toward zero. Values outside [-1, 1) saturate instead of wrapping.
func Float64ToInt16(f float64) int16 {
	v := math.Trunc(f * Int16Ceiling)

	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// IntToFloat normalizes a sample of arbitrary bit depth.
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / Ceiling(bitDepth)
}

// FloatToInt is the bit-depth parameterized form of Float64ToInt16.
func FloatToInt(f float64, bitDepth int) int {
	ceil := Ceiling(bitDepth)
	v := math.Trunc(f * ceil)

	if v > ceil-1 {
		return int(ceil - 1)
	}
	if v < -ceil {
		return int(-ceil)
	}

	return int(v)
}

// ToNormalized converts a whole integer buffer. The result never aliases src.
func ToNormalized(src []int16) []float64 {
	dst := make([]float64, len(src))
	for i, s := range src {
		dst[i] = float64(s) / Int16Ceiling
	}

	return dst
}

// ToInteger converts a whole normalized buffer to 16-bit PCM.
func ToInteger(src []float64) []int16 {
	dst := make([]int16, len(src))
	for i, f := range src {
		dst[i] = Float64ToInt16(f)
	}

	return dst
}
