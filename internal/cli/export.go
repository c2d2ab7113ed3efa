package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/mindexport/config"
	"github.com/ByLCY/mindexport/export"
	"github.com/ByLCY/mindexport/layout"
	canvasrenderer "github.com/ByLCY/mindexport/renderer/canvas"
	"github.com/ByLCY/mindexport/scene"
)

type exportOpts struct {
	format      string
	scale       int
	theme       string
	outputDir   string
	name        string
	minify      bool
	padding     int
	vars        string
	fontMetrics bool
}

func newExportCmd(root *rootFlags) *cobra.Command {
	opts := &exportOpts{}
	cmd := &cobra.Command{
		Use:   "export <input>",
		Short: "Export a scene as SVG, PNG or PDF",
		Long: `Export a scene file (.scene, .json or .html) into a standalone image.

The canvas is sized to the content plus padding. PNG output is limited to
5000px per side before scaling; larger scenes should be exported as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(root.config)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runExport(cmd, args[0], cfg, opts)
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaults.Format, "output format: svg, png or pdf")
	cmd.Flags().IntVarP(&opts.scale, "scale", "s", defaults.Scale, "PNG pixel density")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", defaults.Theme, "theme: light or dark")
	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", defaults.OutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output file name (default: scene name or "+export.DefaultName+")")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "minify SVG output")
	cmd.Flags().IntVar(&opts.padding, "padding", defaults.Padding, "padding around the content, in px")
	cmd.Flags().StringVar(&opts.vars, "vars", "", "variables for ${...} placeholders (.json, .yaml or .toml)")
	cmd.Flags().BoolVar(&opts.fontMetrics, "font-metrics", false, "size table columns with real font metrics")
	return cmd
}

// apply copies explicitly set flags over the loaded settings.
func (o *exportOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = o.format
	}
	if f.Changed("scale") {
		cfg.Scale = o.scale
	}
	if f.Changed("theme") {
		cfg.Theme = o.theme
	}
	if f.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if f.Changed("name") {
		cfg.Name = o.name
	}
	if f.Changed("minify") {
		cfg.Minify = o.minify
	}
	if f.Changed("padding") {
		cfg.Padding = o.padding
	}
}

func runExport(cmd *cobra.Command, input string, cfg *config.Config, opts *exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, settings, err := loadScene(input, opts.vars)
	if err != nil {
		return err
	}
	target, err := cfg.Target()
	if err != nil {
		return err
	}

	themeName := cfg.Theme
	if settings.Theme != "" && !cmd.Flags().Changed("theme") {
		themeName = settings.Theme
	}
	name := cfg.Name
	if settings.Name != "" && !cmd.Flags().Changed("name") {
		name = settings.Name
	}

	var measurer layout.Measurer
	if opts.fontMetrics {
		m, err := canvasrenderer.NewMeasurer(layout.TableFontSize, cfg.FontOptions())
		if err != nil {
			return fmt.Errorf("load font metrics: %w", err)
		}
		measurer = m
	}

	coord := export.NewCoordinator(export.Options{
		Logger:   logger,
		Padding:  cfg.Padding,
		Minify:   cfg.Minify,
		Measurer: measurer,
		Fonts:    cfg.FontOptions(),
	})
	logger.Debug("exporting", "input", input, "target", target, "theme", themeName, "nodes", len(s.Nodes))

	a, err := coord.ExportTo(ctx, s, target, scene.ResolveTheme(themeName), name, export.FileSink{Dir: cfg.OutputDir})
	if err != nil {
		return err
	}
	prog.done("Exported", "file", a.SuggestedFileName, "dir", cfg.OutputDir, "bytes", len(a.Bytes))
	return nil
}
