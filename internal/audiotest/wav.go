// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is an arbitrary RIFF chunk placed between fmt and data.
type Chunk struct {
	ID   string
	Body []byte
}

// WAV describes a container for BuildWAV.
type WAV struct {
	SampleRate int
	Channels   int
	Bits       int
	Samples    []int16
	// FmtExtension is appended to the fmt body; the declared fmt size grows
	// by its length.
	FmtExtension []byte
	// Chunks are written, in order, before the data chunk.
	Chunks []Chunk
	// Truncate drops this many bytes from the end of the payload while
	// keeping the declared data length.
	Truncate int
}

// Mono16 is the common case: mono 16-bit PCM at 44.1kHz.
func Mono16(samples ...int16) WAV {
	return WAV{SampleRate: 44100, Channels: 1, Bits: 16, Samples: samples}
}

// BuildWAV renders w as container bytes.
func BuildWAV(w WAV) []byte {
	le := binary.LittleEndian
	buf := new(bytes.Buffer)

	bits := w.Bits
	if bits == 0 {
		bits = 16
	}
	channels := w.Channels
	if channels == 0 {
		channels = 1
	}

	blockAlign := uint16(channels * bits / 8)
	dataSize := uint32(len(w.Samples) * 2)
	fmtSize := uint32(16 + len(w.FmtExtension))

	riffSize := 4 + (8 + fmtSize) + (8 + dataSize)
	for _, c := range w.Chunks {
		riffSize += 8 + uint32(len(c.Body))
	}

	buf.WriteString("RIFF")
	_ = binary.Write(buf, le, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, le, fmtSize)
	_ = binary.Write(buf, le, uint16(1))
	_ = binary.Write(buf, le, uint16(channels))
	_ = binary.Write(buf, le, uint32(w.SampleRate))
	_ = binary.Write(buf, le, uint32(w.SampleRate)*uint32(blockAlign))
	_ = binary.Write(buf, le, blockAlign)
	_ = binary.Write(buf, le, uint16(bits))
	buf.Write(w.FmtExtension)

	for _, c := range w.Chunks {
		buf.WriteString(c.ID)
		_ = binary.Write(buf, le, uint32(len(c.Body)))
		buf.Write(c.Body)
	}

	buf.WriteString("data")
	_ = binary.Write(buf, le, dataSize)
	for _, s := range w.Samples {
		_ = binary.Write(buf, le, s)
	}

	out := buf.Bytes()
	return out[:len(out)-w.Truncate]
}

// ListChunk returns a LIST/INFO chunk carrying a software tag, the kind of
// metadata editors insert ahead of the samples.
func ListChunk(software string) Chunk {
	body := new(bytes.Buffer)
	body.WriteString("INFO")
	body.WriteString("ISFT")
	_ = binary.Write(body, binary.LittleEndian, uint32(len(software)))
	body.WriteString(software)

	return Chunk{ID: "LIST", Body: body.Bytes()}
}
