// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files into an audio.Source.
//
// Parsing is delegated to github.com/go-audio/aiff. Integer samples are
// normalized by 2^(bits-1) for 8, 16, 24 and 32 bit files, so a 16-bit AIFF
// yields exactly the values the WAV codec would produce for the same PCM data.
//
//	f, _ := os.Open("impulse.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // 12-bit or compressed AIFF-C
//	}
//
// The decoder seeks, so a reader that is not an io.ReadSeeker is read fully
// into memory before parsing.
package aiff
