// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/convreverb/audio"
	"github.com/ik5/convreverb/utils"
)

// source streams the data chunk of a 16-bit PCM container as normalized
// float32 samples.
type source struct {
	r      io.Reader
	header Header
	buf    []byte
}

func (s *source) SampleRate() int { return int(s.header.SampleRate) }
func (s *source) Channels() int   { return int(s.header.NumChannels) }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }
func (s *source) Close() error    { return nil }

// Header returns the parsed container header.
func (s *source) Header() Header { return s.header }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	buf := s.buf[:len(dst)*2]

	n, err := io.ReadFull(s.r, buf)
	samples := n / 2

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(buf[2*i:]))
		dst[i] = float32(utils.Int16ToFloat64(v))
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

// Decoder is the registry entry for WAV input. It accepts the same layouts as
// ReadHeader, including fmt extensions and chunks ahead of the data chunk.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if h.AudioFormat != FormatPCM || h.BitsPerSample != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if h.NumChannels == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		r:      io.LimitReader(r, int64(h.DataSize)),
		header: h,
		buf:    make([]byte, 8192),
	}, nil
}
