// SPDX-License-Identifier: EPL-2.0

package convreverb

import "github.com/ik5/convreverb/audio"

// ResampleToMono drains src through an optional resampler and a mono mixer
// and returns the normalized samples with their rate.
//
// A targetRate of zero, or one equal to the source rate, skips resampling.
// bufferSize is the read size in samples; values below one fall back to the
// source's own buffer size.
func ResampleToMono(src audio.Source, targetRate, bufferSize int) ([]float64, int, error) {
	var stage audio.Source = src
	rate := src.SampleRate()

	if targetRate > 0 && targetRate != rate {
		stage = audio.NewResampler(src, targetRate)
		rate = targetRate
	}
	var mono audio.Source = audio.NewMonoMixer(stage)

	if bufferSize > 0 {
		mono = sized{mono, bufferSize}
	}

	samples, err := audio.ReadAll(mono)
	if err != nil {
		return nil, rate, err
	}

	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}

	return out, rate, nil
}

// sized overrides the read size audio.ReadAll picks up from BufSize.
type sized struct {
	audio.Source
	size int
}

func (s sized) BufSize() int { return s.size }
