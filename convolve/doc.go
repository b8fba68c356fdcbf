// SPDX-License-Identifier: EPL-2.0

// Package convolve implements direct time-domain convolution of normalized
// signals followed by a mandatory rescale into the 16-bit safe range.
//
// The length law is len(y) = len(x) + len(h) - 1, and an empty input on either
// side yields an empty result. The serial path accumulates input-side:
//
//	for n := range x {
//	    for m := range h {
//	        y[n+m] += x[n] * h[m]
//	    }
//	}
//
// The parallel path splits the output into disjoint spans and walks each y[p]
// with n ascending, which adds the same products in the same order as the
// serial loop. Both paths therefore produce bit-identical results.
//
// After accumulation Rescale divides by the dominant extreme. A dominant
// positive peak gets a 1e-6 headroom so it lands just below 1.0, a dominant
// negative peak lands on exactly -1.0. The rescaled range is [-1, 1), which
// narrows to int16 without wrapping.
package convolve
