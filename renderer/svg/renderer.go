// Package svgrenderer serializes assembled documents as SVG.
package svgrenderer

import (
	"context"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/renderer"
)

// Renderer writes the vector target.
type Renderer struct {
	minify bool
}

var _ renderer.Renderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMinify strips whitespace and shortens numbers and colours in the output.
func WithMinify() Option { return func(r *Renderer) { r.minify = true } }

// New creates an SVG renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) MimeType() string  { return document.MimeType }
func (r *Renderer) Extension() string { return ".svg" }

// Render serializes doc. It never blocks, so ctx is not consulted.
func (r *Renderer) Render(_ context.Context, doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	data := doc.Marshal()
	if !r.minify {
		return data, nil
	}
	return Minify(data)
}

// Minify minifies serialized SVG, including its embedded stylesheet.
func Minify(data []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc(document.MimeType, svg.Minify)
	out, err := m.Bytes(document.MimeType, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "minify svg")
	}
	return out, nil
}
