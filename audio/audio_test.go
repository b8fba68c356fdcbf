// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type stubDecoder struct{ name string }

func (stubDecoder) Decode(io.Reader) (Source, error) { return nil, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("wav", stubDecoder{"wav"})
	reg.Register(".MP3", stubDecoder{"mp3"})

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"wav", "wav", true},
		{"WAV", "wav", true},
		{".wav", "wav", true},
		{"mp3", "mp3", true},
		{"ogg", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		d, ok := reg.Get(tt.key)
		if ok != tt.ok {
			t.Errorf("Get(%q) ok = %v, want %v", tt.key, ok, tt.ok)
			continue
		}
		if ok && d.(stubDecoder).name != tt.want {
			t.Errorf("Get(%q) = %v, want %s", tt.key, d, tt.want)
		}
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("aiff", stubDecoder{"aiff"})

	tests := []struct {
		path    string
		format  string
		wantErr error
	}{
		{"/tmp/room.aiff", "aiff", nil},
		{"Room.AIFF", "aiff", nil},
		{"room.flac", "flac", ErrUnknownFormat},
		{"room", "", ErrUnknownFormat},
	}

	for _, tt := range tests {
		_, format, err := reg.ForPath(tt.path)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ForPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
		}
		if format != tt.format {
			t.Errorf("ForPath(%q) format = %q, want %q", tt.path, format, tt.format)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, f := range []string{"ogg", "wav", "mp3"} {
		reg.Register(f, stubDecoder{f})
	}

	if got := reg.Formats(); !slices.Equal(got, []string{"mp3", "ogg", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				reg.Register("wav", stubDecoder{"wav"})
			} else {
				reg.Get("wav")
				reg.Formats()
			}
		}()
	}
	wg.Wait()

	if _, ok := reg.Get("wav"); !ok {
		t.Error("wav decoder missing after concurrent registration")
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	all := []error{ErrInvalidDstSize, ErrUnknownFormat, ErrInvalidRate}
	for i := range all {
		for j := range all {
			if i != j && errors.Is(all[i], all[j]) {
				t.Errorf("%v matches %v", all[i], all[j])
			}
		}
	}
}
