package annotate

import "image"

// History is a stack of full raster snapshots, most recent last.
type History struct {
	snaps []*image.RGBA
}

// Push records img. The caller must not modify img afterwards.
func (h *History) Push(img *image.RGBA) { h.snaps = append(h.snaps, img) }

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*image.RGBA, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	last := h.snaps[len(h.snaps)-1]
	h.snaps[len(h.snaps)-1] = nil
	h.snaps = h.snaps[:len(h.snaps)-1]
	return last, true
}

// Oldest returns the first snapshot, the raster before any commit.
func (h *History) Oldest() (*image.RGBA, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	return h.snaps[0], true
}

// Len returns the number of snapshots.
func (h *History) Len() int { return len(h.snaps) }

// Clear drops every snapshot.
func (h *History) Clear() { h.snaps = nil }
