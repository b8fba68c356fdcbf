// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/convreverb/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel layout is preserved.
//
// The window holds the frames at base-1, base, base+1 and base+2. Frames
// before the start or past the end of the stream repeat the nearest real
// frame.
type Resampler struct {
	src      Source
	channels int
	srcRate  int64
	rate     int64

	window  [4][]float32
	base    int64
	emitted int64 // output frames produced; position is emitted*srcRate/rate

	in      []float32
	inOff   int
	inLen   int
	srcEOF  bool
	loaded  int64
	total   int64 // -1 until the source is exhausted
	started bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  int64(src.SampleRate()),
		rate:     int64(dstRate),
		total:    -1,
		in:       make([]float32, 1024*channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.rate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with whole output frames; len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate <= 0 || r.rate <= 0 {
		return 0, ErrInvalidRate
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, err
		}
		r.started = true
	}

	written := 0
	for written < len(dst) {
		// Integer arithmetic keeps the position exact over long streams.
		num := r.emitted * r.srcRate
		target := num / r.rate

		for r.base < target {
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		if r.total >= 0 && r.base >= r.total {
			return written, io.EOF
		}

		x := float32(float64(num%r.rate) / float64(r.rate))
		w := r.window
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(w[0][c], w[1][c], w[2][c], w[3][c], x)
		}

		written += r.channels
		r.emitted++
	}

	return written, nil
}

// prime loads the first frame into the window and looks two frames ahead.
func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.window[0], r.window[1])

	for i := 2; i < 4; i++ {
		if err := r.fetch(i); err != nil {
			return err
		}
	}

	return nil
}

// advance slides the window one frame forward.
func (r *Resampler) advance() error {
	r.window[0], r.window[1], r.window[2], r.window[3] = r.window[1], r.window[2], r.window[3], r.window[0]
	r.base++

	return r.fetch(3)
}

// fetch fills window slot i with the next frame, repeating the previous slot
// once the source is exhausted.
func (r *Resampler) fetch(i int) error {
	ok, err := r.readFrame(r.window[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[i], r.window[i-1])
	}

	return nil
}

// readFrame copies the next source frame into dst. It reports false at the
// end of the stream.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	empty := 0

	for r.inOff+r.channels > r.inLen {
		if r.srcEOF {
			if r.total < 0 {
				r.total = r.loaded
			}
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inOff, r.inLen = 0, n-n%r.channels

		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inOff:r.inOff+r.channels])
	r.inOff += r.channels
	r.loaded++

	return true, nil
}
