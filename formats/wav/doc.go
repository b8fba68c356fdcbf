// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE containers holding PCM audio.
//
// # Reading
//
// ReadHeader decodes the RIFF descriptor and the fmt chunk field by field in
// little-endian order, skips any fmt extension bytes declared beyond the
// canonical 16, and then scans byte by byte for the "data" tag. Chunks that
// encoders place between fmt and data (LIST metadata, fact, padding) are
// stepped over without trusting their declared lengths:
//
//	f, _ := os.Open("dry.wav")
//	c, err := wav.Read(f)
//	if errors.Is(err, wav.ErrDataChunkNotFound) {
//	    // the stream ended before a data chunk appeared
//	}
//	// c.Header.DataSize bytes were decoded into c.Samples
//
// A stream that ends while scanning returns ErrDataChunkNotFound; a payload
// shorter than the declared data length returns ErrTruncatedData.
//
// # Writing
//
// Encode writes a canonical 44-byte header derived from a template followed by
// the samples. The fmt chunk is always written with its minimal 16-byte body,
// the data length is the sample count times two and the RIFF size is 36 plus
// the data length:
//
//	out, _ := os.Create("wet.wav")
//	err := wav.Encode(out, c.Header, samples)
//
// WriteWAV16 builds the template itself for mono 16-bit output.
//
// # Streaming
//
// Decoder implements audio.Decoder and streams 16-bit PCM data as normalized
// float32 samples, for use through an audio.Registry.
package wav
