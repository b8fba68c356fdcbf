// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
)

// tagScanner is a byte-at-a-time automaton that reports when the last four
// bytes it was fed spell its tag. matched counts how many leading tag bytes
// are currently lined up (0..4).
type tagScanner struct {
	tag     [4]byte
	matched int
}

func newTagScanner(tag [4]byte) *tagScanner {
	return &tagScanner{tag: tag}
}

// Feed advances the automaton by one byte and reports whether the tag is now
// complete. On a mismatch the count drops to zero and the offending byte is
// retried as the first byte of a new match. None of the supported tags repeat
// their first byte, so that single retry is a full sliding-window match.
// It finds every tag that restarting after the mismatched byte would find,
// plus overlapping starts such as "ddata".
func (s *tagScanner) Feed(b byte) bool {
	if s.matched == len(s.tag) {
		s.matched = 0
	}

	if b == s.tag[s.matched] {
		s.matched++
		return s.matched == len(s.tag)
	}

	s.matched = 0
	if b == s.tag[0] {
		s.matched = 1
	}

	return false
}

// Matched returns the number of tag bytes currently lined up.
func (s *tagScanner) Matched() int { return s.matched }

// skipToTag consumes r until the scanner sees tag and returns the number of
// bytes consumed before the tag started. It reads a single byte at a time so
// the underlying reader is left exactly after the tag.
func skipToTag(r io.Reader, tag [4]byte) (int64, error) {
	s := newTagScanner(tag)
	br, ok := r.(io.ByteReader)

	var (
		one   [1]byte
		total int64
	)

	for {
		var (
			b   byte
			err error
		)

		if ok {
			b, err = br.ReadByte()
		} else {
			_, err = io.ReadFull(r, one[:])
			b = one[0]
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return total, fmt.Errorf("%w after %d bytes", ErrDataChunkNotFound, total)
			}

			return total, fmt.Errorf("scanning for %q: %w", tag[:], err)
		}

		total++
		if s.Feed(b) {
			return total - int64(len(tag)), nil
		}
	}
}
