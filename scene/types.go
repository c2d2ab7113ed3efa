// Package scene holds the immutable diagram snapshot handed to the export
// engine: nodes with positions and rich content, pass-through shapes, and
// the resolved theme.
package scene

import "math"

// DefaultBounds is the on-screen canvas size used when a scene has no usable
// geometry.
var DefaultBounds = BoundingBox{MinX: 0, MinY: 0, MaxX: 3000, MaxY: 2000}

// Scene is a snapshot of the live diagram at the moment export was requested.
// It is created once per export and never mutated by the engine.
type Scene struct {
	Name   string  `json:"name,omitempty"`
	Nodes  []Node  `json:"nodes"`
	Shapes []Shape `json:"shapes,omitempty"`
	// RootTransform is whatever transform the live renderer left on its root
	// group. It is kept so callers can hand over the raw snapshot; it never
	// reaches an exported document.
	RootTransform string `json:"rootTransform,omitempty"`
}

// Node is one labelled box of the diagram.
type Node struct {
	ID           string       `json:"id"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	Depth        int          `json:"depth,omitempty"`
	NativeBounds *BoundingBox `json:"nativeBounds,omitempty"`
	Content      RichContent  `json:"-"`
}

// BoundingBox is an axis-aligned rectangle.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Box builds a BoundingBox from an origin and a size.
func Box(x, y, w, h float64) BoundingBox {
	return BoundingBox{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// IsFinite reports whether every coordinate is a finite number.
func (b BoundingBox) IsFinite() bool {
	for _, v := range [...]float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsZero reports whether the box has no extent in either direction.
func (b BoundingBox) IsZero() bool { return b.Width() == 0 && b.Height() == 0 }

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// ShapeKind identifies a pass-through graphical element.
type ShapeKind string

const (
	ShapePath   ShapeKind = "path"
	ShapeLine   ShapeKind = "line"
	ShapeCircle ShapeKind = "circle"
)

// Shape is a non-text element of the live diagram (edges, node markers).
// The engine does not interpret shapes beyond drawing them; coordinates are in
// scene space, like node positions.
type Shape struct {
	Kind ShapeKind `json:"kind"`

	// path
	D string `json:"d,omitempty"`

	// line
	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	// circle
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}
