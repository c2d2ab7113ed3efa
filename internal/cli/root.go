// Package cli implements the mindexport command line.
//
//	mindexport export roadmap.scene --format png --scale 2 --theme dark
//	mindexport bounds roadmap.scene
//
// All commands accept --verbose (-v) for debug logging and --config for a
// YAML or TOML settings file. Loggers travel through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

type rootFlags struct {
	verbose bool
	config  string
}

// NewRootCommand builds the command tree. Logs go to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "mindexport",
		Short:         "mindexport exports mind-map scenes as SVG, PNG or PDF",
		Long:          `mindexport turns a positioned mind-map scene (a .scene file, scene JSON or node HTML) into a standalone SVG, PNG or PDF sized to its content.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if flags.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "settings file (.yaml, .yml or .toml)")

	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newBoundsCmd(flags))
	return root
}

// Execute runs the command line with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stderr)
	root.SetOut(stdout)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
