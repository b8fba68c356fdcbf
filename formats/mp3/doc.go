// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
//
// go-mp3 emits 16-bit little-endian stereo PCM whatever the channel layout of
// the file, so every source reports two channels. Callers that need mono wrap
// the source in audio.MonoMixer.
package mp3
