package camera

// ResolveFrameSize implements spec.md C5: given a stream and a
// requested (w, h) ceiling, pick the frame size SET_VIDEO_STREAM_SETTINGS
// should commit to.
//
//  1. Scan every (format, frameSize) pair in advertisement order.
//  2. An exact (width, height) match wins immediately — first match,
//     not best match.
//  3. Otherwise, among pairs with width<=w and height<=h, keep the one
//     lexicographically largest by (width, height). If no pair is
//     under the ceiling, the last pair examined in the scan is
//     returned — that is the source behavior this preserves, not a
//     bug to fix (see DESIGN.md).
//  4. Never returns ok=false for a stream with at least one format and
//     one frame size; requesting (MaxUint32, MaxUint32) always returns
//     the lexicographically greatest advertised size.
func ResolveFrameSize(stream *Stream, w, h uint32) (formatIdx, sizeIdx int, ok bool) {
	haveCandidate := false
	bestFormatIdx, bestSizeIdx := -1, -1
	lastFormatIdx, lastSizeIdx := -1, -1

	for fi, f := range stream.Formats {
		for si, fs := range f.FrameSizes {
			lastFormatIdx, lastSizeIdx = fi, si

			if fs.Width == w && fs.Height == h {
				return fi, si, true
			}

			if fs.Width <= w && fs.Height <= h {
				if !haveCandidate || lexicographicallyGreater(fs, stream.Formats[bestFormatIdx].FrameSizes[bestSizeIdx]) {
					bestFormatIdx, bestSizeIdx = fi, si
					haveCandidate = true
				}
			}
		}
	}

	if haveCandidate {
		return bestFormatIdx, bestSizeIdx, true
	}
	if lastFormatIdx >= 0 {
		return lastFormatIdx, lastSizeIdx, true
	}
	return 0, 0, false
}

// lexicographicallyGreater reports whether a is lexicographically
// greater than b when ordered by (width, height).
func lexicographicallyGreater(a, b FrameSize) bool {
	if a.Width != b.Width {
		return a.Width > b.Width
	}
	return a.Height > b.Height
}

// SelectFrameSize resolves and commits the selection on stream in one
// step, as SET_VIDEO_STREAM_SETTINGS' handler does.
func SelectFrameSize(stream *Stream, w, h uint32) (FrameSize, bool) {
	fi, si, ok := ResolveFrameSize(stream, w, h)
	if !ok {
		return FrameSize{}, false
	}
	stream.selectAt(fi, si)
	return stream.Formats[fi].FrameSizes[si], true
}
