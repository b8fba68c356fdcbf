// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

const (
	// HeaderSize is the length of the canonical header: RIFF descriptor,
	// 16-byte fmt chunk and data chunk preamble.
	HeaderSize = 44

	// leadingSize covers RIFF descriptor plus the fmt chunk up to and
	// including bits per sample.
	leadingSize = 36

	// CanonicalFmtSize is the fmt chunk body length for plain PCM.
	CanonicalFmtSize = 16

	// riffOverhead is every header byte counted by the RIFF size field except
	// the data payload.
	riffOverhead = HeaderSize - 8

	FormatPCM = 1
)

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	fmtID  = [4]byte{'f', 'm', 't', ' '}
	dataID = [4]byte{'d', 'a', 't', 'a'}
)

// Header is the decoded RIFF/WAVE metadata of a container. DataSize is the
// authoritative length of the sample payload in bytes.
type Header struct {
	RIFFID        [4]byte
	RIFFSize      uint32
	WAVEID        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// NewHeader builds a canonical PCM header with an empty payload.
func NewHeader(sampleRate, channels, bitsPerSample int) Header {
	blockAlign := uint16(channels * bitsPerSample / 8)

	return Header{
		RIFFID:        riffID,
		RIFFSize:      riffOverhead,
		WAVEID:        waveID,
		FmtID:         fmtID,
		FmtSize:       CanonicalFmtSize,
		AudioFormat:   FormatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: uint16(bitsPerSample),
		DataID:        dataID,
	}
}

// BytesPerSample is the width of a single sample; zero bit depths are
// treated as 16-bit.
func (h Header) BytesPerSample() int {
	if h.BitsPerSample == 0 {
		return 2
	}

	return int(h.BitsPerSample+7) / 8
}

// NumSamples reports how many samples the payload holds.
func (h Header) NumSamples() int {
	return int(h.DataSize) / h.BytesPerSample()
}

// IsMono16 reports whether the header describes mono 16-bit PCM.
func (h Header) IsMono16() bool {
	return h.AudioFormat == FormatPCM && h.NumChannels == 1 && h.BitsPerSample == 16
}

// Format exposes the header in go-audio terms.
func (h Header) Format() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(h.NumChannels),
		SampleRate:  int(h.SampleRate),
	}
}

func (h Header) String() string {
	return fmt.Sprintf("format=%d channels=%d rate=%d bits=%d data=%d",
		h.AudioFormat, h.NumChannels, h.SampleRate, h.BitsPerSample, h.DataSize)
}

// decodeLeading parses the fixed leading block field by field.
func decodeLeading(b []byte) Header {
	le := binary.LittleEndian

	var h Header
	copy(h.RIFFID[:], b[0:4])
	h.RIFFSize = le.Uint32(b[4:8])
	copy(h.WAVEID[:], b[8:12])
	copy(h.FmtID[:], b[12:16])
	h.FmtSize = le.Uint32(b[16:20])
	h.AudioFormat = le.Uint16(b[20:22])
	h.NumChannels = le.Uint16(b[22:24])
	h.SampleRate = le.Uint32(b[24:28])
	h.ByteRate = le.Uint32(b[28:32])
	h.BlockAlign = le.Uint16(b[32:34])
	h.BitsPerSample = le.Uint16(b[34:36])

	return h
}

// encode writes the canonical 44-byte layout into b.
func (h Header) encode(b []byte) {
	le := binary.LittleEndian

	copy(b[0:4], h.RIFFID[:])
	le.PutUint32(b[4:8], h.RIFFSize)
	copy(b[8:12], h.WAVEID[:])
	copy(b[12:16], h.FmtID[:])
	le.PutUint32(b[16:20], h.FmtSize)
	le.PutUint16(b[20:22], h.AudioFormat)
	le.PutUint16(b[22:24], h.NumChannels)
	le.PutUint32(b[24:28], h.SampleRate)
	le.PutUint32(b[28:32], h.ByteRate)
	le.PutUint16(b[32:34], h.BlockAlign)
	le.PutUint16(b[34:36], h.BitsPerSample)
	copy(b[36:40], h.DataID[:])
	le.PutUint32(b[40:44], h.DataSize)
}

// readFull wraps io.ReadFull so that a stream ending early is reported as
// io.ErrUnexpectedEOF even when nothing was read.
func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}
