package meme

import "math"

// Margin is the minimum overlay footprint that always stays inside the
// canvas while dragging.
const Margin = 50.0

// Clamp applies delta to current and clips the result to
// [0, bounds.Width-Margin] x [0, bounds.Height-Margin]. A canvas smaller than
// Margin pins the axis to 0.
func Clamp(current, delta Position, bounds Bounds) Position {
	return Position{
		X: clip(current.X+delta.X, 0, max(bounds.Width-Margin, 0)),
		Y: clip(current.Y+delta.Y, 0, max(bounds.Height-Margin, 0)),
	}
}

// clip maps NaN to lo.
func clip(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
