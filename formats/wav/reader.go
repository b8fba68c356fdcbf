// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Container is a fully decoded WAV file: its header and the payload as
// 16-bit samples.
type Container struct {
	Header  Header
	Samples []int16
}

// Skipped reports how the header parser moved past optional data.
type Skipped struct {
	// Extension is the number of fmt extension bytes skipped.
	Extension int64
	// Junk is the number of bytes between the fmt chunk and the data tag.
	Junk int64
}

// ReadHeader parses the RIFF descriptor and fmt chunk, skips any fmt
// extension bytes and every chunk before "data", and reads the data length.
// On success r is positioned at the first sample byte.
func ReadHeader(r io.Reader) (Header, error) {
	h, _, err := ReadHeaderSkipped(r)
	return h, err
}

// ReadHeaderSkipped is ReadHeader that also reports what it skipped.
func ReadHeaderSkipped(r io.Reader) (Header, Skipped, error) {
	var skipped Skipped

	lead := make([]byte, leadingSize)
	if err := readFull(r, lead); err != nil {
		return Header{}, skipped, fmt.Errorf("reading header: %w", err)
	}

	h := decodeLeading(lead)
	if h.RIFFID != riffID || h.WAVEID != waveID {
		return Header{}, skipped, ErrNotWavFile
	}
	if h.FmtID != fmtID || h.FmtSize < CanonicalFmtSize {
		return Header{}, skipped, ErrUnsupportedWavLayout
	}

	if extra := int64(h.FmtSize - CanonicalFmtSize); extra > 0 {
		n, err := io.CopyN(io.Discard, r, extra)
		skipped.Extension = n
		if err != nil {
			return Header{}, skipped, fmt.Errorf("skipping fmt extension: %w", eofToUnexpected(err))
		}
	}

	junk, err := skipToTag(r, dataID)
	skipped.Junk = junk
	if err != nil {
		return Header{}, skipped, err
	}
	h.DataID = dataID

	var size [4]byte
	if err := readFull(r, size[:]); err != nil {
		return Header{}, skipped, fmt.Errorf("reading data length: %w", err)
	}
	h.DataSize = binary.LittleEndian.Uint32(size[:])

	return h, skipped, nil
}

// ReadSamples reads the h.DataSize payload bytes from r as little-endian
// 16-bit samples. A trailing odd byte is consumed and dropped. The buffer
// grows with the bytes actually read, so a declared length larger than the
// input costs no more than the input itself.
func ReadSamples(r io.Reader, h Header) ([]int16, error) {
	payload, err := io.ReadAll(io.LimitReader(r, int64(h.DataSize)))
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	if len(payload) < int(h.DataSize) {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedData, len(payload), h.DataSize)
	}

	samples := make([]int16, len(payload)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(payload[2*i:]))
	}

	return samples, nil
}

// Read decodes a whole container from r.
func Read(r io.Reader) (*Container, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	samples, err := ReadSamples(r, h)
	if err != nil {
		return nil, err
	}

	return &Container{Header: h, Samples: samples}, nil
}

// IntBuffer returns the samples as a go-audio buffer. SourceBitDepth is
// always 16 because the payload is read as 16-bit samples whatever the
// header declares.
func (c *Container) IntBuffer() *goaudio.IntBuffer {
	data := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = int(s)
	}

	return &goaudio.IntBuffer{
		Format:         c.Header.Format(),
		Data:           data,
		SourceBitDepth: 16,
	}
}

func eofToUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
