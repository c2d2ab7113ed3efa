package canvasrenderer

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/scene"
)

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer(DefaultScale, Options{})
	if err != nil {
		t.Fatalf("NewRasterizer: %v", err)
	}
	return r
}

func smallDoc(th scene.Theme) *document.Document {
	s := &scene.Scene{
		Nodes: []scene.Node{
			{ID: "root", X: 0, Y: 0, NativeBounds: &scene.BoundingBox{MaxX: 20, MaxY: 10}, Content: scene.TextLines("Hi")},
		},
		Shapes: []scene.Shape{
			{Kind: scene.ShapePath, D: "M0,10 C5,10 5,20 10,20", Stroke: scene.DepthColor(1), StrokeWidth: 1.5},
			{Kind: scene.ShapeLine, X1: 0, Y1: 20, X2: 20, Y2: 20, Stroke: scene.DepthColor(0)},
			{Kind: scene.ShapeCircle, CX: 20, CY: 20, R: 3},
		},
	}
	return document.Assemble(layout.Frame{Width: 40, Height: 30, TranslateX: 10, TranslateY: 5}, s, th)
}

func TestCheckSizeBoundary(t *testing.T) {
	if err := CheckSize(5000, 5000); err != nil {
		t.Fatalf("5000x5000 must pass the guard: %v", err)
	}
	for _, tc := range [][2]int{{5001, 5000}, {5000, 5001}, {6000, 6000}} {
		err := CheckSize(tc[0], tc[1])
		if !errors.Is(err, errors.ErrCodeTooLarge) {
			t.Fatalf("CheckSize(%d, %d) = %v, want TOO_LARGE", tc[0], tc[1], err)
		}
	}
}

func TestRasterizeTooLarge(t *testing.T) {
	r := newRasterizer(t)
	_, err := r.Rasterize(context.Background(), smallDoc(scene.Light), 6000, 1200, 3)
	var tl *errors.TooLargeError
	if !errors.As(err, &tl) {
		t.Fatalf("expected *TooLargeError, got %v", err)
	}
	if tl.BaseWidth != 6000 || tl.BaseHeight != 1200 || tl.MaxDimension != 5000 {
		t.Fatalf("fields = %+v", tl)
	}
	if !strings.Contains(err.Error(), "5000") || !strings.Contains(errors.UserMessage(err), "SVG") {
		t.Fatalf("message lacks limit or remediation: %q", err.Error())
	}
}

func TestRasterizeAtMaxDimension(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a 5000x5000 buffer")
	}
	r := newRasterizer(t)
	doc := document.Assemble(layout.Frame{Width: 5000, Height: 5000}, &scene.Scene{}, scene.Light)
	img, err := r.Rasterize(context.Background(), doc, 5000, 5000, 1)
	if err != nil {
		t.Fatalf("5000x5000 must rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5000 || b.Dy() != 5000 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRasterizeScalesAndFillsBackground(t *testing.T) {
	r := newRasterizer(t)
	img, err := r.Rasterize(context.Background(), smallDoc(scene.Dark), 40, 30, 3)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Fatalf("bounds = %v, want 120x90", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel %d is not opaque", i/4)
		}
	}
	// far corner holds only background
	c := img.RGBAAt(119, 89)
	if !near(c.R, 0x1E) || !near(c.G, 0x1E) || !near(c.B, 0x1E) {
		t.Fatalf("corner pixel = %v, want #1E1E1E", c)
	}
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -2 && d <= 2
}

func TestRenderEncodesPNG(t *testing.T) {
	r, err := NewRasterizer(2, Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Render(context.Background(), smallDoc(scene.Light))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Fatalf("bounds = %v, want 80x60", b)
	}
	if r.MimeType() != "image/png" || r.Extension() != ".png" {
		t.Fatalf("mime/ext = %s %s", r.MimeType(), r.Extension())
	}
}

func TestRasterizeDecodeFailed(t *testing.T) {
	r := newRasterizer(t)
	doc := smallDoc(scene.Light)
	doc.Shapes = append(doc.Shapes, scene.Shape{Kind: "polygon"})
	_, err := r.Rasterize(context.Background(), doc, doc.Width, doc.Height, 1)
	if !errors.Is(err, errors.ErrCodeDecodeFailed) {
		t.Fatalf("err = %v, want DECODE_FAILED", err)
	}
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	r := newRasterizer(t)
	doc := smallDoc(scene.Light)
	cases := []struct {
		name    string
		w, h, s int
		bg      string
	}{
		{"zero width", 0, 10, 1, "#FFFFFF"},
		{"zero scale", 10, 10, 0, "#FFFFFF"},
		{"bad background", 10, 10, 1, "blue-ish"},
	}
	for _, tc := range cases {
		d := *doc
		d.Background = tc.bg
		if _, err := r.Rasterize(context.Background(), &d, tc.w, tc.h, tc.s); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%s: err = %v, want INVALID_INPUT", tc.name, err)
		}
	}
}

func TestRasterizeHonoursCancellation(t *testing.T) {
	r := newRasterizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := document.Assemble(layout.Frame{Width: 2000, Height: 2000}, &scene.Scene{}, scene.Light)
	_, err := r.Rasterize(ctx, doc, 2000, 2000, 3)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestPDFRender(t *testing.T) {
	r, err := NewPDFRenderer(Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := smallDoc(scene.Light)
	doc.Title = "mindmap"
	data, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF: %q", data[:min(len(data), 16)])
	}
}

func TestMeasurer(t *testing.T) {
	m, err := NewMeasurer(11, Options{})
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	if m.TextWidth("") != 0 {
		t.Fatal("empty string must measure 0")
	}
	short, long := m.TextWidth("ab"), m.TextWidth("abcdef")
	if short <= 0 || long <= short {
		t.Fatalf("widths not increasing: %g, %g", short, long)
	}
	res, err := layout.Build(&scene.Scene{Nodes: []scene.Node{
		{ID: "t", Content: scene.NewTable([]string{"k", "v"})},
	}}, scene.Light, layout.BuildOptions{Measurer: m})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Commands()[1].X; got != 100 {
		t.Fatalf("short header column should keep the 100px minimum, got %g", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"#FFF", true}, {"#1e1e1e", true}, {"none", true}, {"", true},
		{"red", true}, {"SteelBlue", true}, {"#f008", true}, {"#FF000080", true},
		{"blue-ish", false}, {"#12345", false}, {"#GGGGGG", false},
	}
	for _, tt := range tests {
		if _, ok := parseColor(tt.in); ok != tt.ok {
			t.Errorf("parseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}

	if c, _ := parseColor("red"); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("red = %v", c)
	}
	short, _ := parseColor("#f008")
	long, _ := parseColor("#ff000088")
	if short != long || short.A != 0x88 {
		t.Errorf("#f008 = %v, want %v", short, long)
	}
}

func TestRasterizeRejectsOversizedScale(t *testing.T) {
	r := newRasterizer(t)
	doc := smallDoc(scene.Light)
	for _, scale := range []int{math.MaxInt32, 151, 10} {
		w := 100
		if scale == 10 {
			w = 5000
		}
		_, err := r.Rasterize(context.Background(), doc, w, 100, scale)
		if !errors.Is(err, errors.ErrCodeTooLarge) {
			t.Errorf("%dx100 at scale %d: err = %v, want TOO_LARGE", w, scale, err)
		}
	}
	if err := CheckScaledSize(5000, 5000, DefaultScale); err != nil {
		t.Fatalf("the largest unscaled canvas must pass at the default scale: %v", err)
	}
	if _, err := NewRasterizer(MaxScale+1, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("NewRasterizer(%d) err = %v, want INVALID_INPUT", MaxScale+1, err)
	}
}

func TestRasterizeDrawsShapesAndText(t *testing.T) {
	r := newRasterizer(t)
	s := &scene.Scene{
		Nodes: []scene.Node{
			{ID: "n", X: 10, Y: 10, NativeBounds: &scene.BoundingBox{MinX: 10, MinY: 10, MaxX: 60, MaxY: 30}, Content: scene.TextLines("Hello")},
		},
		Shapes: []scene.Shape{
			{Kind: scene.ShapeLine, X1: 10, Y1: 50, X2: 90, Y2: 50, Stroke: "red", StrokeWidth: 4},
		},
	}
	doc := document.Assemble(layout.Frame{Width: 100, Height: 60}, s, scene.Light)
	img, err := r.Rasterize(context.Background(), doc, 100, 60, 1)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	red := 0
	for x := 20; x < 80; x++ {
		c := img.RGBAAt(x, 50)
		if c.R > 200 && c.G < 80 && c.B < 80 {
			red++
		}
	}
	if red < 50 {
		t.Fatalf("red line pixels = %d, want the line drawn", red)
	}

	ink := 0
	for y := 12; y < 30; y++ {
		for x := 10; x < 60; x++ {
			if c := img.RGBAAt(x, y); c.R < 0xf0 || c.G < 0xf0 || c.B < 0xf0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatal("no text pixels drawn")
	}
}

func TestRasterizeRejectsUnknownColour(t *testing.T) {
	r := newRasterizer(t)
	doc := smallDoc(scene.Light)
	doc.Shapes = append(doc.Shapes, scene.Shape{Kind: scene.ShapeLine, X2: 10, Stroke: "blue-ish"})
	_, err := r.Rasterize(context.Background(), doc, doc.Width, doc.Height, 1)
	if !errors.Is(err, errors.ErrCodeDecodeFailed) {
		t.Fatalf("err = %v, want DECODE_FAILED", err)
	}
}

func TestSurfaceStopsWhenCancelled(t *testing.T) {
	src, err := newFontSource(Options{})
	if err != nil {
		t.Fatal(err)
	}
	family, err := src.family()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &surface{family: family, unit: 1}
	if _, err := s.build(ctx, smallDoc(scene.Light)); !stderrors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
