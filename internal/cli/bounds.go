package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/mindexport/config"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/scene"
)

func newBoundsCmd(root *rootFlags) *cobra.Command {
	var (
		out  string
		vars string
	)
	cmd := &cobra.Command{
		Use:   "bounds <input>",
		Short: "Print the computed canvas and text layout as JSON",
		Long: `Compute the export layout of a scene without rendering it: the aggregated
bounds, the padded canvas and every placed text run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(root.config)
			if err != nil {
				return err
			}
			s, settings, err := loadScene(args[0], vars)
			if err != nil {
				return err
			}
			theme := cfg.Theme
			if settings.Theme != "" {
				theme = settings.Theme
			}
			res, err := layout.Build(s, scene.ResolveTheme(theme), layout.BuildOptions{Padding: cfg.Padding})
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "layout")
			}
			loggerFromContext(cmd.Context()).Debug("layout computed",
				"width", res.Frame.Width, "height", res.Frame.Height, "placements", len(res.Placements))

			if out == "" {
				return layout.EncodeDebugJSON(cmd.OutOrStdout(), res)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "create %s", filepath.Dir(out))
			}
			if err := layout.WriteDebugJSON(res, out); err != nil {
				return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the JSON to this file instead of stdout")
	cmd.Flags().StringVar(&vars, "vars", "", "variables for ${...} placeholders (.json, .yaml or .toml)")
	return cmd
}
