// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeChunk is the number of samples encoded per Write call.
const writeChunk = 8192

// OutputHeader derives the header Encode writes for n samples from template:
// the fmt chunk is reduced to its canonical 16 bytes, the data chunk is
// sized for n 16-bit samples and the RIFF size is recomputed. Every other
// field is kept from the template.
func OutputHeader(template Header, n int) Header {
	h := template
	h.RIFFID = riffID
	h.WAVEID = waveID
	h.FmtID = fmtID
	h.FmtSize = CanonicalFmtSize
	h.DataID = dataID
	h.DataSize = uint32(n * 2)
	h.RIFFSize = riffOverhead + h.DataSize

	return h
}

// Encode writes a self-consistent container for samples using template for
// the format fields. No extension bytes or extra chunks from the template's
// source are carried over.
func Encode(w io.Writer, template Header, samples []int16) error {
	h := OutputHeader(template, len(samples))

	header := make([]byte, HeaderSize)
	h.encode(header)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), writeChunk)*2)

	for i := 0; i < len(samples); i += writeChunk {
		chunk := samples[i:min(i+writeChunk, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return Encode(w, NewHeader(sampleRate, 1, 16), samples)
}
