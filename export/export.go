// Package export turns a scene into a finished artifact in one of the
// supported formats and hands it to a sink.
package export

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ByLCY/mindexport/document"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/renderer"
	canvasrenderer "github.com/ByLCY/mindexport/renderer/canvas"
	svgrenderer "github.com/ByLCY/mindexport/renderer/svg"
	"github.com/ByLCY/mindexport/scene"
)

// Options configures a Coordinator.
type Options struct {
	// Logger receives stage progress at debug level. Nil discards it.
	Logger *log.Logger
	// Hooks receives stage events. Nil selects NoopHooks.
	Hooks Hooks
	// Padding around measured bounds, in px. Zero selects layout.DefaultPadding.
	Padding int
	// Minify shrinks vector output.
	Minify bool
	// Measurer estimates table column text widths. Nil selects the heuristic.
	Measurer layout.Measurer
	// Fonts overrides the embedded faces used by raster and PDF output.
	Fonts canvasrenderer.Options
}

// Coordinator runs export calls. It holds no per-call state, so one
// Coordinator may serve concurrent calls.
type Coordinator struct {
	opts Options
}

// NewCoordinator creates a coordinator, filling unset options with defaults.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Hooks == nil {
		opts.Hooks = NoopHooks{}
	}
	if opts.Padding <= 0 {
		opts.Padding = layout.DefaultPadding
	}
	return &Coordinator{opts: opts}
}

// call tracks the progress of one export.
type call struct {
	ctx     context.Context
	id      string
	started time.Time
	stage   Stage
	logger  *log.Logger
	hooks   Hooks
}

func (c *call) reach(stage Stage, keyvals ...any) {
	c.stage = stage
	elapsed := time.Since(c.started)
	c.logger.Debug(string(stage), append(keyvals, "elapsed", elapsed)...)
	c.hooks.OnStage(c.ctx, c.id, stage, elapsed)
}

func (c *call) fail(err error) error {
	c.logger.Debug("export failed", "stage", c.stage, "err", err)
	c.hooks.OnError(c.ctx, c.id, c.stage, err)
	return err
}

// Export renders s in the requested target and theme. name is the suggested
// file stem; the artifact's file name gets the target's extension. Errors
// from any stage end the call and are returned unchanged.
func (c *Coordinator) Export(ctx context.Context, s *scene.Scene, target Target, th scene.Theme, name string) (Artifact, error) {
	id := uuid.NewString()
	cl := &call{
		ctx:     ctx,
		id:      id,
		started: time.Now(),
		logger:  c.opts.Logger.With("request", id[:8], "target", target),
		hooks:   c.opts.Hooks,
	}
	cl.reach(StageStart)

	if s == nil {
		return Artifact{}, cl.fail(errors.New(errors.ErrCodeInvalidInput, "scene is nil"))
	}
	r, err := c.rendererFor(target)
	if err != nil {
		return Artifact{}, cl.fail(err)
	}

	bounds, measured := layout.AggregateBounds(s)
	cl.reach(StageBoundsComputed, "bounds", bounds, "measured", measured)

	frame := layout.FrameFor(bounds, measured, c.opts.Padding)
	cl.reach(StageNormalized, "width", frame.Width, "height", frame.Height)

	placements := layout.Place(s, th, layout.BuildOptions{Padding: c.opts.Padding, Measurer: c.opts.Measurer})
	cl.reach(StageFlattened, "placements", len(placements))

	doc := document.FromPlacements(frame, s.Shapes, placements, th)
	doc.Title = title(name)
	cl.reach(StageAssembled, "shapes", len(doc.Shapes), "texts", len(doc.Texts))

	data, err := c.render(cl, r, target, doc)
	if err != nil {
		return Artifact{}, cl.fail(err)
	}
	return Artifact{
		MimeType:          r.MimeType(),
		Bytes:             data,
		SuggestedFileName: FileName(name, r.Extension()),
	}, nil
}

func (c *Coordinator) rendererFor(target Target) (renderer.Renderer, error) {
	switch target.Kind {
	case KindVector:
		var opts []svgrenderer.Option
		if c.opts.Minify {
			opts = append(opts, svgrenderer.WithMinify())
		}
		return svgrenderer.New(opts...), nil
	case KindRaster:
		return canvasrenderer.NewRasterizer(target.Scale, c.opts.Fonts)
	case KindPDF:
		return canvasrenderer.NewPDFRenderer(c.opts.Fonts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported target %s", target)
	}
}

func (c *Coordinator) render(cl *call, r renderer.Renderer, target Target, doc *document.Document) ([]byte, error) {
	switch rr := r.(type) {
	case *canvasrenderer.Rasterizer:
		img, err := rr.Rasterize(cl.ctx, doc, doc.Width, doc.Height, rr.Scale())
		if err != nil {
			return nil, err
		}
		cl.reach(StageRasterized, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		data, err := canvasrenderer.Encode(img)
		if err != nil {
			return nil, err
		}
		cl.reach(StageEncoded, "bytes", len(data))
		return data, nil
	default:
		data, err := r.Render(cl.ctx, doc)
		if err != nil {
			return nil, err
		}
		if target.Kind == KindVector {
			cl.reach(StageSerialized, "bytes", len(data))
		} else {
			cl.reach(StageRendered, "bytes", len(data))
		}
		return data, nil
	}
}

// Deliver hands a to sink. Sink errors are returned unchanged.
func (c *Coordinator) Deliver(ctx context.Context, sink Sink, a Artifact) error {
	if sink == nil {
		return errors.New(errors.ErrCodeSinkUnavailable, "no sink configured")
	}
	if err := sink.Deliver(ctx, a); err != nil {
		c.opts.Logger.Debug("deliver failed", "file", a.SuggestedFileName, "err", err)
		return err
	}
	c.opts.Logger.Debug("delivered", "file", a.SuggestedFileName, "bytes", len(a.Bytes))
	return nil
}

// ExportTo exports s and delivers the artifact to sink.
func (c *Coordinator) ExportTo(ctx context.Context, s *scene.Scene, target Target, th scene.Theme, name string, sink Sink) (Artifact, error) {
	a, err := c.Export(ctx, s, target, th, name)
	if err != nil {
		return Artifact{}, err
	}
	if err := c.Deliver(ctx, sink, a); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

func title(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
