package canvasrenderer

import (
	"bytes"
	"context"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/renderer"
)

// PDFRenderer writes assembled documents as single-page PDFs. One CSS pixel
// maps to 1/96 inch, so the page has the document's physical size at 96 dpi.
type PDFRenderer struct {
	fonts *fontSource
}

var _ renderer.Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(opts Options) (*PDFRenderer, error) {
	src, err := newFontSource(opts)
	if err != nil {
		return nil, err
	}
	return &PDFRenderer{fonts: src}, nil
}

func (r *PDFRenderer) MimeType() string  { return "application/pdf" }
func (r *PDFRenderer) Extension() string { return ".pdf" }

// Render draws doc onto one page. ctx is checked before each shape and
// text run.
func (r *PDFRenderer) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	family, err := r.fonts.family()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "load fonts")
	}
	s := &surface{family: family, unit: layout.PxToMm}
	c, err := s.build(ctx, doc)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "build drawing surface")
	}

	var buf bytes.Buffer
	w, h := float64(doc.Width)*layout.PxToMm, float64(doc.Height)*layout.PxToMm
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(doc.Title, "", "", "", "mindexport")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "写入 PDF 失败")
	}
	return buf.Bytes(), nil
}
