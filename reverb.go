// SPDX-License-Identifier: EPL-2.0

package convreverb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/convreverb/audio"
	"github.com/ik5/convreverb/convolve"
	"github.com/ik5/convreverb/formats/aiff"
	"github.com/ik5/convreverb/formats/mp3"
	"github.com/ik5/convreverb/formats/vorbis"
	"github.com/ik5/convreverb/formats/wav"
	"github.com/ik5/convreverb/internal/diag"
	"github.com/ik5/convreverb/internal/logging"
	"github.com/ik5/convreverb/utils"
)

// Options configure loading and rendering. The zero value is a quiet,
// serial, lenient run.
type Options struct {
	// Workers above one enable parallel accumulation; below zero uses
	// every CPU. Zero and one are serial.
	Workers int
	// Progress logs every tenth of the convolution at info level.
	Progress bool
	// Diagnostics logs sample statistics for each stage.
	Diagnostics bool
	// Strict rejects inputs that are not mono 16-bit PCM.
	Strict bool
	// MatchRate resamples the impulse to the dry signal's rate.
	MatchRate bool

	Logger   *slog.Logger
	Registry *audio.Registry
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}

	return o.Logger
}

func (o Options) registry() *audio.Registry {
	if o.Registry == nil {
		return DefaultRegistry()
	}

	return o.Registry
}

func (o Options) engine() *convolve.Engine {
	opts := []convolve.Option{convolve.WithLogger(o.logger())}

	switch {
	case o.Workers > 1:
		opts = append(opts, convolve.WithWorkers(o.Workers))
	case o.Workers < 0:
		opts = append(opts, convolve.WithWorkers(0))
	}

	if o.Progress {
		log := o.logger()
		opts = append(opts, convolve.WithProgress(func(done, total int) {
			log.Info("convolving", slog.Int("percent", done*100/total))
		}))
	}

	return convolve.New(opts...)
}

// DefaultRegistry knows every decoder in formats/. The wav entries serve
// callers that want a streaming audio.Source; Load reads WAV through the
// container codec instead so the header survives.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// Signal is a decoded mono signal in the normalized domain. Header is the
// template the output inherits.
type Signal struct {
	Header  wav.Header
	Samples []float64
	Format  string
}

func (s *Signal) SampleRate() int { return int(s.Header.SampleRate) }

// Duration of the signal at its sample rate.
func (s *Signal) Duration() time.Duration {
	if s.Header.SampleRate == 0 {
		return 0
	}

	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.Header.SampleRate)
}

func (s *Signal) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", s.Format),
		slog.Int("channels", int(s.Header.NumChannels)),
		slog.Int("rate", s.SampleRate()),
		slog.Int("bits", int(s.Header.BitsPerSample)),
		slog.Int("samples", len(s.Samples)),
		slog.Duration("duration", s.Duration()),
	)
}

// LoadFile decodes path, choosing the decoder by extension.
func LoadFile(path string, opts Options) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec, format, err := opts.registry().ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sig, err := load(bufio.NewReader(f), format, dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	opts.logger().Debug("loaded", slog.String("path", path), slog.Any("signal", sig))

	return sig, nil
}

// Load decodes r as format. WAV goes through the native container codec so
// its header survives as the output template. Every other format is decoded
// through the registry, mixed to mono and given a canonical 16-bit header.
func Load(r io.Reader, format string, opts Options) (*Signal, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if isWAV(format) {
		return load(r, format, nil)
	}

	dec, ok := opts.registry().Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnknownFormat, format)
	}

	return load(r, format, dec)
}

func isWAV(format string) bool { return format == "wav" || format == "wave" }

// load decodes r with dec unless format is WAV.
func load(r io.Reader, format string, dec audio.Decoder) (*Signal, error) {
	if isWAV(format) {
		c, err := wav.Read(r)
		if err != nil {
			return nil, err
		}

		buf := c.IntBuffer()
		samples := make([]float64, len(buf.Data))
		for i, v := range buf.Data {
			samples[i] = utils.IntToFloat(v, buf.SourceBitDepth)
		}

		return &Signal{Header: c.Header, Samples: samples, Format: "wav"}, nil
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	samples, rate, err := ResampleToMono(src, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	return &Signal{
		Header:  wav.NewHeader(rate, 1, 16),
		Samples: samples,
		Format:  format,
	}, nil
}

// Validate reports whether s can be rendered faithfully. Anything but mono
// 16-bit PCM wraps wav.ErrUnsupportedFormat.
func Validate(s *Signal) error {
	if s.Header.IsMono16() {
		return nil
	}

	return fmt.Errorf("%w: %s", wav.ErrUnsupportedFormat, s.Header)
}

// Result is a rendered, quantized signal ready to be encoded.
type Result struct {
	Header  wav.Header
	Samples []int16
	Stats   convolve.Stats
	Elapsed time.Duration
}

// Render convolves dry with ir and quantizes the result. The output header
// is the dry header with the payload sizes recomputed.
func Render(ctx context.Context, dry, ir *Signal, opts Options) (*Result, error) {
	log := opts.logger()

	for _, in := range []struct {
		role string
		sig  *Signal
	}{{"dry", dry}, {"impulse", ir}} {
		if err := Validate(in.sig); err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("%s: %w", in.role, err)
			}
			log.Warn("input is not mono 16-bit PCM, samples are read as 16-bit mono",
				slog.String("role", in.role), slog.String("header", in.sig.Header.String()))
		}
	}

	impulse := ir.Samples
	if dry.SampleRate() != ir.SampleRate() {
		if opts.MatchRate {
			var err error
			impulse, err = matchRate(ir, dry.SampleRate())
			if err != nil {
				return nil, fmt.Errorf("resampling impulse: %w", err)
			}
			log.Info("impulse resampled",
				slog.Int("from", ir.SampleRate()), slog.Int("to", dry.SampleRate()),
				slog.Int("samples", len(impulse)))
		} else {
			log.Warn("sample rates differ, output uses the dry rate",
				slog.Int("dry", dry.SampleRate()), slog.Int("impulse", ir.SampleRate()))
		}
	}

	if opts.Diagnostics {
		log.Info("dry", slog.Any("summary", diag.Summarize(dry.Samples, diag.NormalizedLimit)))
		log.Info("impulse", slog.Any("summary", diag.Summarize(impulse, diag.NormalizedLimit)))
	}

	start := time.Now()

	y, st, err := opts.engine().Convolve(ctx, dry.Samples, impulse)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Samples: utils.ToInteger(y),
		Stats:   st,
		Elapsed: time.Since(start),
	}
	res.Header = wav.OutputHeader(dry.Header, len(res.Samples))

	if opts.Diagnostics {
		log.Info("rescale", slog.Any("stats", st))
		log.Info("output", slog.Any("summary", diag.Summarize(y, diag.NormalizedLimit)))
		log.Info("quantized", slog.Any("summary", diag.Summarize(res.Samples, diag.RailLimit)))
	}

	return res, nil
}

func matchRate(ir *Signal, rate int) ([]float64, error) {
	buf := make([]float32, len(ir.Samples))
	for i, v := range ir.Samples {
		buf[i] = float32(v)
	}

	samples, _, err := ResampleToMono(audio.NewBufferSource(ir.SampleRate(), 1, buf), rate, 0)

	return samples, err
}

// Write encodes the result as a canonical WAV.
func (r *Result) Write(w io.Writer) error {
	return wav.Encode(w, r.Header, r.Samples)
}

// RenderFile loads both inputs, renders them and writes outPath atomically:
// either a complete file appears or nothing does.
func RenderFile(ctx context.Context, dryPath, irPath, outPath string, opts Options) error {
	log := opts.logger()

	dry, err := LoadFile(dryPath, opts)
	if err != nil {
		return err
	}
	ir, err := LoadFile(irPath, opts)
	if err != nil {
		return err
	}

	log.Info("rendering",
		slog.String("dry", dryPath), slog.Int("dry_samples", len(dry.Samples)),
		slog.String("impulse", irPath), slog.Int("impulse_samples", len(ir.Samples)))

	res, err := Render(ctx, dry, ir, opts)
	if err != nil {
		return err
	}

	if err := writeAtomic(outPath, res.Write); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	log.Info("done",
		slog.String("output", outPath),
		slog.Int("samples", len(res.Samples)),
		slog.Duration("elapsed", res.Elapsed))

	return nil
}

// writeAtomic writes through a temporary file in the target directory and
// renames it into place once fully flushed.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			err = errors.Join(err, tmp.Close())
		}
		_ = os.Remove(tmp.Name())
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
