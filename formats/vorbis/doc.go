// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float natively, so samples pass through without
// requantization. Channel count and rate come from the identification header.
package vorbis
