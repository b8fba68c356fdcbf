// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the decoders and the
// reverb pipeline are built from.
//
//   - Source: a stream of interleaved float32 samples in [-1.0, 1.0]
//   - Decoder and Registry: format decoders looked up by key or file extension
//   - MonoMixer: folds any channel count to mono by averaging
//   - Resampler: Catmull-Rom sample rate conversion
//   - BufferSource and ReadAll: move whole signals in and out of the
//     streaming world
//
// # Registry
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//
//	dec, format, err := reg.ForPath("impulse.MP3") // format == "mp3"
//
// # Collecting a signal
//
// Impulse responses and dry signals are consumed whole by the convolution, so
// a typical pipeline decodes, mixes down and drains:
//
//	src, _ := dec.Decode(f)
//	mono := audio.NewMonoMixer(src)
//	samples, err := audio.ReadAll(mono)
//
// Resampling a signal already in memory goes through BufferSource:
//
//	r := audio.NewResampler(audio.NewBufferSource(48000, 1, ir), 44100)
//	ir44, err := audio.ReadAll(r)
//
// # End of stream
//
// ReadSamples returns io.EOF, possibly together with the final samples, once a
// source is exhausted. Any other error is a failure of the underlying stream.
package audio
