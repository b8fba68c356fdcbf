// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// BufferSource serves samples already held in memory.
type BufferSource struct {
	rate     int
	channels int
	data     []float32
	off      int
}

// NewBufferSource wraps interleaved samples. The slice is not copied.
func NewBufferSource(sampleRate, channels int, samples []float32) *BufferSource {
	return &BufferSource{rate: sampleRate, channels: channels, data: samples}
}

func (b *BufferSource) SampleRate() int { return b.rate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) BufSize() int    { return len(b.data) }
func (b *BufferSource) Close() error    { return nil }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}

	n := copy(dst, b.data[b.off:])
	b.off += n

	if b.off >= len(b.data) {
		return n, io.EOF
	}

	return n, nil
}

// maxEmptyReads bounds consecutive (0, nil) reads, as bufio does.
const maxEmptyReads = 100

// ReadAll drains src and returns every sample it produced.
func ReadAll(src Source) ([]float32, error) {
	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	size -= size % max(src.Channels(), 1)
	if size == 0 {
		size = max(src.Channels(), 1)
	}

	out := make([]float32, 0, size)
	buf := make([]float32, size)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}

		empty++
		if empty >= maxEmptyReads {
			return out, io.ErrNoProgress
		}
	}
}
