package geom

import "image"

// ClampLow clamps a device coordinate to be non-negative. The second result
// is the overflow, zero or negative, by which v exceeded the limit.
func ClampLow(v int) (int, int) {
	if v < 0 {
		return 0, v
	}
	return v, 0
}

// ClampHigh clamps a device coordinate to be at most max. The second result
// is the overflow, zero or positive, by which v exceeded the limit.
func ClampHigh(v, max int) (int, int) {
	if off := v - max; off > 0 {
		return max, off
	}
	return v, 0
}

// Clamp keeps a top-left coordinate of a span of the given size inside
// [0, extent-size]. The low bound is applied first; the high bound is only
// checked when the value did not land on zero, so a span larger than the
// extent stays pinned to the origin. The overflow of whichever bound applied
// is returned so a drag anchor can be shifted by it.
func Clamp(v, extent, size int) (int, int) {
	v, off := ClampLow(v)
	if v == 0 {
		return v, off
	}
	return ClampHigh(v, max(extent-size, 0))
}

// Canvas returns the logical bounds of a device canvas of the given size.
func Canvas(size image.Point, dpr float64) Rect {
	return FromDevice(image.Rectangle{Max: size}, dpr)
}
