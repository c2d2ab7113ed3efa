package export

import (
	"fmt"
	"strings"

	"github.com/ByLCY/mindexport/errors"
	canvasrenderer "github.com/ByLCY/mindexport/renderer/canvas"
)

// Kind selects the output format of an export.
type Kind int

const (
	KindVector Kind = iota
	KindRaster
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "svg"
	case KindRaster:
		return "png"
	case KindPDF:
		return "pdf"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Target is what one export call produces. Scale only applies to raster
// targets.
type Target struct {
	Kind  Kind
	Scale int
}

// Vector is the SVG target.
func Vector() Target { return Target{Kind: KindVector} }

// Raster is the PNG target at the given pixel density. A scale below 1
// selects the default of 3.
func Raster(scale int) Target {
	if scale < 1 {
		scale = canvasrenderer.DefaultScale
	}
	return Target{Kind: KindRaster, Scale: scale}
}

// PDF is the single-page PDF target.
func PDF() Target { return Target{Kind: KindPDF} }

func (t Target) String() string {
	if t.Kind == KindRaster {
		return fmt.Sprintf("png@%dx", t.Scale)
	}
	return t.Kind.String()
}

// ParseTarget maps a format name ("svg", "png", "pdf") to a Target.
func ParseTarget(format string, scale int) (Target, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "svg", "vector":
		return Vector(), nil
	case "png", "raster":
		return Raster(scale), nil
	case "pdf":
		return PDF(), nil
	default:
		return Target{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png or pdf)", format)
	}
}
