package layout

import (
	"math"

	"github.com/ByLCY/mindexport/scene"
)

// DefaultPadding is the margin added on every side of the aggregated bounds.
const DefaultPadding = 100

// Normalize maps bounds onto a zero-origin canvas with padding on each side.
// After applying the translation the bounds' min corner sits at
// (padding, padding), wherever the live renderer placed its origin.
func Normalize(b scene.BoundingBox, padding int) Frame {
	p := float64(padding)
	return Frame{
		Width:      int(math.Ceil(b.Width() + 2*p)),
		Height:     int(math.Ceil(b.Height() + 2*p)),
		TranslateX: -(b.MinX - p),
		TranslateY: -(b.MinY - p),
	}
}

// FrameFor normalizes aggregated bounds for export. The default fallback box
// already is the full default canvas, so it is used as is without padding.
func FrameFor(b scene.BoundingBox, measured bool, padding int) Frame {
	if !measured {
		padding = 0
	}
	return Normalize(b, padding)
}
