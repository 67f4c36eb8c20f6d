// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package minify

// copyBackRef materializes one back-reference's output bytes: length bytes
// from dst[outputPos-dist:] to dst[outputPos:]. Called by packetDecoder.decode
// once a MATCH/SHORTREP/LONGREPi packet has resolved a distance and length;
// outputPos is always the position the decoder has reached so far.
//
// dist < length is legal and common (a run like "aaaaaaaa" is one match with
// distance 1): the source region then overlaps bytes the copy itself hasn't
// written yet. copyBackRef handles this by seeding one dist-sized chunk and
// then doubling the copied span each pass, since by that point the
// previously-copied output is itself valid source material.
//
// mPos < 0 means the packet's distance reaches before the start of the
// output; outputPos+length past len(dst) means it would write beyond the
// caller-sized buffer. Both indicate a corrupt or malicious input rather
// than a coder bug, so they return sentinel errors instead of panicking.
func copyBackRef(dst []byte, outputPos, dist, length int) error {
	mPos := outputPos - dist
	if mPos < 0 {
		return ErrLookBehindUnderrun
	}

	if outputPos+length > len(dst) {
		return ErrOutputOverrun
	}

	if dist >= length {
		copy(dst[outputPos:outputPos+length], dst[mPos:mPos+length])
		return nil
	}

	copy(dst[outputPos:outputPos+dist], dst[mPos:outputPos])
	copied := dist

	for copied < length {
		n := copy(dst[outputPos+copied:outputPos+length], dst[outputPos:outputPos+copied])
		copied += n
	}

	return nil
}
