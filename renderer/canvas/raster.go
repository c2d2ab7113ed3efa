package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/renderer"
)

const (
	// MaxDimension bounds the unscaled canvas on either axis.
	MaxDimension = 5000
	// DefaultScale is the pixel density multiplier of raster exports.
	DefaultScale = 3
	// MaxScale is the largest accepted pixel density multiplier.
	MaxScale = 10
	// MaxScaledDimension bounds the scaled buffer on either axis.
	MaxScaledDimension = MaxDimension * DefaultScale
)

// Rasterizer draws assembled documents into scaled RGBA buffers and encodes
// them as PNG.
type Rasterizer struct {
	scale int
	fonts *fontSource
}

var _ renderer.Renderer = (*Rasterizer)(nil)

// NewRasterizer creates a rasterizer for the given scale. A scale below 1
// selects DefaultScale; a scale above MaxScale is rejected.
func NewRasterizer(scale int, opts Options) (*Rasterizer, error) {
	if scale < 1 {
		scale = DefaultScale
	}
	if scale > MaxScale {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale %d exceeds the maximum of %d", scale, MaxScale)
	}
	src, err := newFontSource(opts)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{scale: scale, fonts: src}, nil
}

// Scale returns the configured pixel density multiplier.
func (r *Rasterizer) Scale() int { return r.scale }

func (r *Rasterizer) MimeType() string  { return "image/png" }
func (r *Rasterizer) Extension() string { return ".png" }

// CheckSize returns a *errors.TooLargeError when the unscaled canvas exceeds
// MaxDimension on either axis.
func CheckSize(baseWidth, baseHeight int) error {
	if baseWidth > MaxDimension || baseHeight > MaxDimension {
		return &errors.TooLargeError{BaseWidth: baseWidth, BaseHeight: baseHeight, MaxDimension: MaxDimension}
	}
	return nil
}

// CheckScaledSize rejects buffers larger than MaxScaledDimension on either
// axis. The product is computed in 64 bits so huge scales cannot wrap.
func CheckScaledSize(baseWidth, baseHeight, scale int) error {
	w, h := int64(baseWidth)*int64(scale), int64(baseHeight)*int64(scale)
	if w > MaxScaledDimension || h > MaxScaledDimension {
		return errors.New(errors.ErrCodeTooLarge,
			"scaled canvas %dx%dpx exceeds %dpx per side; lower the scale or export as SVG", w, h, MaxScaledDimension)
	}
	return nil
}

// Render rasterizes doc at the configured scale and encodes it as PNG.
func (r *Rasterizer) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	img, err := r.Rasterize(ctx, doc, doc.Width, doc.Height, r.scale)
	if err != nil {
		return nil, err
	}
	return Encode(img)
}

// Encode writes img as PNG.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws doc into a baseWidth*scale × baseHeight*scale buffer whose
// background is painted before anything else. Both size guards run before any
// allocation. Building the drawing surface is the only step that waits: it
// runs on its own goroutine and ctx can abandon it. An abandoned surface stops
// drawing at the next shape or text run and is never rasterized.
func (r *Rasterizer) Rasterize(ctx context.Context, doc *document.Document, baseWidth, baseHeight, scale int) (*image.RGBA, error) {
	if err := CheckSize(baseWidth, baseHeight); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	if baseWidth <= 0 || baseHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size %dx%d must be positive", baseWidth, baseHeight)
	}
	if scale < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale %d must be at least 1", scale)
	}
	if err := CheckScaledSize(baseWidth, baseHeight, scale); err != nil {
		return nil, err
	}

	bg, ok := parseColor(doc.Background)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid background colour %q", doc.Background)
	}
	bg.A = 0xff
	dst := image.NewRGBA(image.Rect(0, 0, baseWidth*scale, baseHeight*scale))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sized := *doc
	sized.Width, sized.Height = baseWidth, baseHeight
	img, err := r.decode(ctx, &sized, scale)
	if err != nil {
		return nil, err
	}
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst, nil
}

type decoded struct {
	img *image.RGBA
	err error
}

func (r *Rasterizer) decode(ctx context.Context, doc *document.Document, scale int) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	done := make(chan decoded, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- decoded{err: errors.New(errors.ErrCodeDecodeFailed, "drawing backend failed: %v", p)}
			}
		}()
		family, err := r.fonts.family()
		if err != nil {
			done <- decoded{err: errors.Wrap(errors.ErrCodeDecodeFailed, err, "load fonts")}
			return
		}
		s := &surface{family: family, unit: 1}
		c, err := s.build(ctx, doc)
		if cerr := ctx.Err(); cerr != nil {
			done <- decoded{err: fmt.Errorf("rasterize: %w", cerr)}
			return
		}
		if err != nil {
			done <- decoded{err: errors.Wrap(errors.ErrCodeDecodeFailed, err, "build drawing surface")}
			return
		}
		done <- decoded{img: rasterizer.Draw(c, canvas.DPMM(float64(scale)), canvas.DefaultColorSpace)}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("rasterize: %w", ctx.Err())
	case d := <-done:
		return d.img, d.err
	}
}
