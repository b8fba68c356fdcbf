// SPDX-License-Identifier: EPL-2.0

// Package convreverb applies a convolution reverb to mono 16-bit PCM audio.
//
// A dry recording is convolved with an impulse response (a recording of a
// room's reaction to a click). The result is rescaled into the 16-bit range,
// quantized and stored as a canonical WAV:
//
//	err := convreverb.RenderFile(ctx, "dry.wav", "hall.wav", "wet.wav",
//	    convreverb.Options{Workers: 4, Logger: log})
//
// The pipeline is built from the subpackages:
//
//	formats/wav    container codec, robust to chunks before "data"
//	utils          int16 <-> normalized float conversion
//	convolve       direct convolution and rescale
//	audio          decoder registry, mono mixing and resampling
//
// WAV inputs keep their header as the output template. AIFF, MP3 and Ogg
// Vorbis inputs are decoded, mixed to mono and get a canonical 16-bit header
// at their own rate. Set Options.MatchRate to resample an impulse recorded at
// a different rate.
//
// Output is written to a temporary file beside the target and renamed into
// place, so a failed run never leaves a partial file.
package convreverb
