// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile is returned when the FORM/AIFF preamble is missing.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth is returned for sample sizes other than 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout is returned when the COMM chunk carries no usable format.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
