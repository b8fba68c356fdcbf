// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/convreverb/internal/audiotest"
)

// TestEncode_ReadableByGoAudio decodes our output with go-audio/wav, an
// implementation that walks chunks by their declared lengths.
func TestEncode_ReadableByGoAudio(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1000, -1000, 32767, -32768, 5}
	buf := new(bytes.Buffer)

	if err := Encode(buf, NewHeader(44100, 1, 16), samples); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dec := gowav.NewDecoder(bytes.NewReader(buf.Bytes()))
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if dec.NumChans != 1 || dec.BitDepth != 16 || dec.SampleRate != 44100 {
		t.Errorf("go-audio header: chans=%d bits=%d rate=%d", dec.NumChans, dec.BitDepth, dec.SampleRate)
	}
	if len(pcm.Data) != len(samples) {
		t.Fatalf("go-audio read %d samples, want %d", len(pcm.Data), len(samples))
	}
	for i, s := range samples {
		if pcm.Data[i] != int(s) {
			t.Errorf("sample %d = %d, want %d", i, pcm.Data[i], s)
		}
	}
}

// TestRead_AgreesWithGoAudio compares our scan against go-audio/wav on a
// container with extra chunks ahead of the samples.
func TestRead_AgreesWithGoAudio(t *testing.T) {
	t.Parallel()

	w := audiotest.Mono16(3, -3, 300, -300, 30000)
	// Even-sized bodies keep the chunks word aligned for go-audio.
	w.Chunks = []audiotest.Chunk{
		{ID: "JUNK", Body: make([]byte, 6)},
		{ID: "fact", Body: []byte{5, 0, 0, 0}},
	}
	data := audiotest.BuildWAV(w)

	ours, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	theirs, err := gowav.NewDecoder(bytes.NewReader(data)).FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if len(ours.Samples) != len(theirs.Data) {
		t.Fatalf("we read %d samples, go-audio read %d", len(ours.Samples), len(theirs.Data))
	}
	for i := range ours.Samples {
		if int(ours.Samples[i]) != theirs.Data[i] {
			t.Errorf("sample %d: ours %d, go-audio %d", i, ours.Samples[i], theirs.Data[i])
		}
	}
}

// TestEncode_ChunkLayout walks the output with go-audio/riff and expects
// exactly a 16-byte fmt chunk followed by the data chunk.
func TestEncode_ChunkLayout(t *testing.T) {
	t.Parallel()

	template := NewHeader(8000, 1, 16)
	template.FmtSize = 18

	buf := new(bytes.Buffer)
	if err := Encode(buf, template, []int16{1, 2, 3}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p := riff.New(bytes.NewReader(buf.Bytes()))
	if err := p.ParseHeaders(); err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}
	if p.ID != riffID || p.Format != waveID {
		t.Fatalf("riff header = %q/%q", p.ID[:], p.Format[:])
	}
	if p.Size != uint32(buf.Len()-8) {
		t.Errorf("RIFF size = %d, want %d", p.Size, buf.Len()-8)
	}

	wantChunks := []struct {
		id   [4]byte
		size int
	}{{fmtID, 16}, {dataID, 6}}

	for _, want := range wantChunks {
		ch, err := p.NextChunk()
		if err != nil {
			t.Fatalf("NextChunk() error = %v", err)
		}
		if ch.ID != want.id || ch.Size != want.size {
			t.Errorf("chunk %q size %d, want %q size %d", ch.ID[:], ch.Size, want.id[:], want.size)
		}
		if _, err := io.CopyN(io.Discard, ch.R, int64(ch.Size)); err != nil {
			t.Fatalf("draining %q: %v", ch.ID[:], err)
		}
	}

	if _, err := p.NextChunk(); err == nil {
		t.Error("found a chunk after data, want end of stream")
	}
}
