package canvasrenderer

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/colornames"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/fonts"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/scene"
)

// defaultStrokeWidth applies to shapes that arrive without a stroke width,
// matching the SVG default of one user unit.
const defaultStrokeWidth = 1.0

// Options configures the fonts of the drawing surfaces.
type Options struct {
	// Fonts overrides the built-in faces by weight name (fonts.Regular,
	// fonts.Medium, fonts.Bold). A single override for fonts.Regular is used
	// for every weight that has none of its own; CJK text needs a font with
	// CJK glyphs here.
	Fonts map[string]Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// fontSource resolves font bytes per weight.
type fontSource struct {
	blobs map[string][]byte
}

func newFontSource(opts Options) (*fontSource, error) {
	src := &fontSource{blobs: map[string][]byte{}}
	for name, res := range opts.Fonts {
		key := strings.ToLower(strings.TrimSpace(name))
		if len(res.Bytes) > 0 {
			src.blobs[key] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				return nil, fmt.Errorf("读取字体 %s 失败: %w", res.Path, err)
			}
			src.blobs[key] = data
		}
	}
	return src, nil
}

func (s *fontSource) bytes(weight string) ([]byte, error) {
	if data, ok := s.blobs[weight]; ok {
		return data, nil
	}
	if data, ok := s.blobs[fonts.Regular]; ok {
		return data, nil
	}
	return fonts.Load(weight)
}

// family loads a fresh font family with every weight. Families are built per
// call and dropped with the surface.
func (s *fontSource) family() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("mindexport")
	for _, name := range fonts.Names() {
		data, err := s.bytes(name)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, fontStyle(name)); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
		}
	}
	return family, nil
}

func fontStyle(weight string) canvas.FontStyle {
	switch weight {
	case fonts.Bold:
		return canvas.FontBold
	case fonts.Medium:
		return canvas.FontMedium
	default:
		return canvas.FontRegular
	}
}

// surface draws an assembled document onto a tdewolff canvas. Document
// coordinates are CSS pixels; unit is the size of one pixel in canvas units
// (1 for raster output, px→mm for PDF).
type surface struct {
	family *canvas.FontFamily
	unit   float64
}

// build returns a canvas holding the whole document. It stops early once
// ctx is done.
func (s *surface) build(ctx context.Context, doc *document.Document) (*canvas.Canvas, error) {
	u := s.unit
	c := canvas.New(float64(doc.Width)*u, float64(doc.Height)*u)
	dc := canvas.NewContext(c)
	dc.SetCoordSystem(canvas.CartesianIV) // 使坐标与 SVG 保持左上角为原点

	bg, ok := parseColor(doc.Background)
	if !ok {
		return nil, fmt.Errorf("invalid background colour %q", doc.Background)
	}
	dc.SetFillColor(bg)
	dc.SetStrokeColor(canvas.Transparent)
	dc.DrawPath(0, 0, canvas.Rectangle(float64(doc.Width)*u, float64(doc.Height)*u))

	for i, sh := range doc.Shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.drawShape(dc, doc, sh); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	for i, t := range doc.Texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.drawText(dc, doc, t); err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
	}
	return c, nil
}

func (s *surface) drawShape(ctx *canvas.Context, doc *document.Document, sh scene.Shape) error {
	u := s.unit
	stroke, ok := parseColor(sh.Stroke)
	if !ok {
		return fmt.Errorf("invalid stroke colour %q", sh.Stroke)
	}
	fill, ok := parseColor(sh.Fill)
	if !ok {
		return fmt.Errorf("invalid fill colour %q", sh.Fill)
	}
	w := sh.StrokeWidth
	if w <= 0 {
		w = defaultStrokeWidth
	}
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(w * u)
	ctx.SetFillColor(fill)

	ox, oy := doc.TranslateX, doc.TranslateY
	switch sh.Kind {
	case scene.ShapePath:
		p, err := canvas.ParseSVGPath(sh.D)
		if err != nil {
			return fmt.Errorf("path data %q: %w", sh.D, err)
		}
		ctx.DrawPath(ox*u, oy*u, p.Transform(canvas.Identity.Scale(u, u)))
	case scene.ShapeLine:
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo((sh.X2-sh.X1)*u, (sh.Y2-sh.Y1)*u)
		ctx.SetFillColor(canvas.Transparent)
		ctx.DrawPath((sh.X1+ox)*u, (sh.Y1+oy)*u, p)
	case scene.ShapeCircle:
		ctx.DrawPath((sh.CX+ox)*u, (sh.CY+oy)*u, canvas.Circle(sh.R*u))
	default:
		return fmt.Errorf("unknown shape kind %q", sh.Kind)
	}
	return nil
}

func (s *surface) drawText(ctx *canvas.Context, doc *document.Document, t layout.Command) error {
	u := s.unit
	fill := t.Fill
	if strings.TrimSpace(fill) == "" {
		fill = doc.Style.Fill
	}
	col, ok := parseColor(fill)
	if !ok {
		return fmt.Errorf("invalid text colour %q", fill)
	}
	size := t.FontSizePx
	if size <= 0 {
		size = doc.Style.FontSizePx
	}
	face := s.family.Face(toPt(size*u), col, fontStyle(fonts.ForWeight(t.FontWeight)), canvas.FontNormal)
	// SVG 的 y 即基线位置
	ctx.DrawText((t.X+doc.TranslateX)*u, (t.Y+doc.TranslateY)*u, canvas.NewTextLine(face, t.Text, canvas.Left))
	return nil
}

// parseColor accepts "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", CSS colour
// names and "none". The empty string is transparent.
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch lower {
	case "", "none", "transparent":
		return canvas.Transparent, true
	}
	if c, ok := colornames.Map[lower]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return canvas.Transparent, false
	}
	hex := s[1:]
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return canvas.Transparent, false
		}
	}
	switch len(hex) {
	case 3, 4:
		// canvas.Hex mis-reads the alpha of the short form; expand it first
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return canvas.Transparent, false
	}
	return canvas.Hex(hex), true
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
