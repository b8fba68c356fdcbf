// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotWavFile, "not a WAV file"},
		{ErrUnsupportedWavLayout, "unsupported WAV layout"},
		{ErrOnlyPCM16bitSupported, "only PCM 16-bit supported"},
		{ErrUnsupportedFormat, "unsupported sample format"},
		{ErrDataChunkNotFound, "data chunk not found"},
		{ErrTruncatedData, "truncated sample data"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
		if seen[tt.want] {
			t.Errorf("duplicate message %q", tt.want)
		}
		seen[tt.want] = true
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrNotWavFile,
		ErrUnsupportedWavLayout,
		ErrOnlyPCM16bitSupported,
		ErrUnsupportedFormat,
		ErrDataChunkNotFound,
		ErrTruncatedData,
	}

	for i, err := range all {
		wrapped := fmt.Errorf("reading dry.wav: %w", err)
		if !errors.Is(wrapped, err) {
			t.Errorf("errors.Is(wrapped, %v) = false", err)
		}

		for j, other := range all {
			if i != j && errors.Is(err, other) {
				t.Errorf("%v matches %v", err, other)
			}
		}
	}
}
