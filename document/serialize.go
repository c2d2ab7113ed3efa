package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/scene"
)

// MimeType of a serialized document.
const MimeType = "image/svg+xml"

const svgNS = "http://www.w3.org/2000/svg"

// Marshal serializes the document to SVG text.
func (d *Document) Marshal() []byte {
	var buf bytes.Buffer
	w, h := strconv.Itoa(d.Width), strconv.Itoa(d.Height)
	fmt.Fprintf(&buf, `<svg xmlns="%s" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", svgNS, w, h, w, h)

	buf.WriteString("  <style>\n")
	fmt.Fprintf(&buf, "    text { font-size: %spx; font-family: %s; fill: %s; }\n",
		num(d.Style.FontSizePx), cssEscaper.Replace(d.Style.FontFamily), cssEscaper.Replace(d.Style.Fill))
	buf.WriteString("  </style>\n")

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", w, h, EscapeXML(d.Background))

	fmt.Fprintf(&buf, `  <g transform="translate(%s, %s)">`+"\n", num(d.TranslateX), num(d.TranslateY))
	for _, sh := range d.Shapes {
		writeShape(&buf, sh)
	}
	for _, t := range d.Texts {
		writeText(&buf, t)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Marshal())
	return int64(n), err
}

func writeShape(buf *bytes.Buffer, sh scene.Shape) {
	switch sh.Kind {
	case scene.ShapePath:
		fill := sh.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="%s"%s/>`+"\n",
			EscapeXML(sh.D), EscapeXML(fill), EscapeXML(sh.Stroke), strokeWidth(sh.StrokeWidth))
	case scene.ShapeLine:
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"%s/>`+"\n",
			num(sh.X1), num(sh.Y1), num(sh.X2), num(sh.Y2), EscapeXML(sh.Stroke), strokeWidth(sh.StrokeWidth))
	case scene.ShapeCircle:
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s"%s/>`+"\n",
			num(sh.CX), num(sh.CY), num(sh.R), EscapeXML(sh.Fill), EscapeXML(sh.Stroke), strokeWidth(sh.StrokeWidth))
	}
}

func writeText(buf *bytes.Buffer, t layout.Command) {
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%s" font-weight="%d" fill="%s">%s</text>`+"\n",
		num(t.X), num(t.Y), num(t.FontSizePx), t.FontWeight, EscapeXML(t.Fill), EscapeXML(t.Text))
}

func strokeWidth(w float64) string {
	if w <= 0 {
		return ""
	}
	return ` stroke-width="` + num(w) + `"`
}

func num(v float64) string {
	if v == 0 {
		v = 0 // -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EscapeXML escapes s for use in element text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var cssEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Dimensions is what a serialized document declares on its root element.
type Dimensions struct {
	Width   int
	Height  int
	ViewBox [4]float64
}

// ReadDimensions parses the root element of a serialized document and returns
// its declared width, height and viewBox.
func ReadDimensions(r io.Reader) (Dimensions, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Dimensions{}, errors.New(errors.ErrCodeInvalidFormat, "no root element")
		}
		if err != nil {
			return Dimensions{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse document")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Dimensions{}, errors.New(errors.ErrCodeInvalidFormat, "root element is <%s>, want <svg>", start.Name.Local)
		}
		return parseRoot(start)
	}
}

func parseRoot(start xml.StartElement) (Dimensions, error) {
	var (
		d                Dimensions
		hasW, hasH, hasV bool
	)
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "width":
			v, err := strconv.Atoi(strings.TrimSpace(a.Value))
			if err != nil {
				return d, errors.Wrap(errors.ErrCodeInvalidFormat, err, "width %q", a.Value)
			}
			d.Width, hasW = v, true
		case "height":
			v, err := strconv.Atoi(strings.TrimSpace(a.Value))
			if err != nil {
				return d, errors.Wrap(errors.ErrCodeInvalidFormat, err, "height %q", a.Value)
			}
			d.Height, hasH = v, true
		case "viewBox":
			fields := strings.Fields(strings.ReplaceAll(a.Value, ",", " "))
			if len(fields) != 4 {
				return d, errors.New(errors.ErrCodeInvalidFormat, "viewBox %q", a.Value)
			}
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return d, errors.Wrap(errors.ErrCodeInvalidFormat, err, "viewBox %q", a.Value)
				}
				d.ViewBox[i] = v
			}
			hasV = true
		}
	}
	if !hasW || !hasH || !hasV {
		return d, errors.New(errors.ErrCodeInvalidFormat, "root element must declare width, height and viewBox")
	}
	return d, nil
}
