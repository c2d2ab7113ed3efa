// Package document assembles the portable vector document of an export: a
// background, the pass-through shapes and the flattened text, all inside one
// translated group. The same Document feeds the SVG serializer and the
// drawing surfaces of the raster and PDF targets.
package document

import (
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/scene"
)

// FontFamily is the default family bound by the document style.
const FontFamily = `"Segoe UI", "Helvetica Neue", Arial, sans-serif`

// DefaultFontSizePx is the document-level text size.
const DefaultFontSizePx = 14

// Style is the document-level text rule.
type Style struct {
	FontFamily string
	FontSizePx float64
	Fill       string
}

// Document is the assembled, not yet serialized, vector document.
type Document struct {
	// Title is carried into formats with document metadata (PDF).
	Title      string
	Width      int
	Height     int
	TranslateX float64
	TranslateY float64
	Style      Style
	Background string
	// Shapes and Texts live inside the translated group, shapes first.
	Shapes []scene.Shape
	Texts  []layout.Command
}

// Assemble builds the document for s on frame f. Node content is flattened
// with the default width model; any transform the live renderer left on its
// root group is ignored.
func Assemble(f layout.Frame, s *scene.Scene, th scene.Theme) *Document {
	var (
		shapes     []scene.Shape
		placements []layout.Placement
	)
	if s != nil {
		shapes = s.Shapes
		placements = layout.Place(s, th, layout.BuildOptions{})
	}
	return FromPlacements(f, shapes, placements, th)
}

// FromPlacements builds the document from already placed text.
func FromPlacements(f layout.Frame, shapes []scene.Shape, placements []layout.Placement, th scene.Theme) *Document {
	doc := &Document{
		Width:      f.Width,
		Height:     f.Height,
		TranslateX: f.TranslateX,
		TranslateY: f.TranslateY,
		Style: Style{
			FontFamily: FontFamily,
			FontSizePx: DefaultFontSizePx,
			Fill:       th.Text,
		},
		Background: th.Background,
		Shapes:     make([]scene.Shape, 0, len(shapes)),
	}
	for _, sh := range shapes {
		doc.Shapes = append(doc.Shapes, applyTheme(sh, th))
	}
	for _, p := range placements {
		doc.Texts = append(doc.Texts, p.Commands...)
	}
	return doc
}

// applyTheme fills in the colours the live renderer takes from the theme.
// Only node marker circles take theme defaults: the marker stroke and the
// canvas background as fill. Paths and lines pass through unchanged.
func applyTheme(sh scene.Shape, th scene.Theme) scene.Shape {
	if sh.Kind != scene.ShapeCircle {
		return sh
	}
	if sh.Stroke == "" {
		sh.Stroke = th.Marker
	}
	if sh.Fill == "" {
		sh.Fill = th.Background
	}
	return sh
}
