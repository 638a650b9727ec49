// Package cli implements the comicbubble command-line interface.
//
// The commands are:
//   - overlay: draw one or two speech bubbles onto an image
//   - batch: apply a TOML scene list to a directory of images
//   - upscale: enlarge an image locally
//
// All commands accept --verbose (-v) for debug logging. The logger travels in
// the command's context.
package cli

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI with the given arguments, logging to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs are written to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "comicbubble",
		Short:         "Overlay comic speech bubbles onto images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newOverlayCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newUpscaleCmd())
	return root
}
