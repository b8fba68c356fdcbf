// SPDX-License-Identifier: EPL-2.0

package convolve

import "errors"

// ErrNonFinite is returned when an input sample is NaN or infinite.
var ErrNonFinite = errors.New("non-finite sample")
