// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/convreverb/audio"
	"github.com/ik5/convreverb/utils"
)

// go-mp3 always produces interleaved stereo.
const outputChannels = 2

// pcmReader is the subset of gomp3.Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	carry      []byte // odd byte left over from a short read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	have := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	var err error
	for have < 2 && err == nil {
		var n int
		n, err = s.dec.Read(s.buf[have:])
		have += n
	}

	samples := have / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(utils.Int16ToFloat64(v))
	}
	if have%2 == 1 {
		s.carry = append(s.carry, s.buf[have-1])
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decoding mp3 frames: %w", err)
	}

	return samples, err
}

// Decoder decodes MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
