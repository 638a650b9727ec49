package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iopred/comicbubble"
)

const (
	defaultInputDir  = "output"
	defaultOutputDir = "output/final"
)

type batchOpts struct {
	inputDir  string
	outputDir string
	font      string
}

func newBatchCmd() *cobra.Command {
	opts := batchOpts{
		inputDir:  defaultInputDir,
		outputDir: defaultOutputDir,
		font:      comicbubble.DefaultFontPath,
	}

	cmd := &cobra.Command{
		Use:   "batch SCENES",
		Short: "Apply speech bubbles to every scene in a TOML scene list",
		Long: `Apply speech bubbles to every scene in a TOML scene list.

Each [[scene]] table names an input image (relative to --input-dir), an output
file (relative to --output-dir), and left/right text with optional
pos_left/pos_right anchors. Scenes whose input is missing are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputDir, "input-dir", opts.inputDir, "directory holding the input images")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", opts.outputDir, "directory to write results to")
	cmd.Flags().StringVar(&opts.font, "font", opts.font, "TrueType font for bubble text")

	return cmd
}

func runBatch(ctx context.Context, scenesPath string, opts *batchOpts) error {
	logger := loggerFromContext(ctx)

	f, err := os.Open(scenesPath)
	if err != nil {
		return err
	}
	scenes, err := comicbubble.DecodeScenes(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", scenesPath, err)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return err
	}

	r := comicbubble.New(comicbubble.WithFontPath(opts.font), comicbubble.WithLogger(logger))

	done := 0
	for _, s := range scenes {
		input := filepath.Join(opts.inputDir, s.Input)
		output := filepath.Join(opts.outputDir, s.Output)

		img, err := loadImage(input)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Skipping, input not found", "input", s.Input)
			continue
		}
		if err != nil {
			return err
		}

		bubbles, err := s.Bubbles()
		if err != nil {
			return fmt.Errorf("%s: %w", s.Input, err)
		}
		out, err := r.Overlay(img, bubbles...)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Input, err)
		}
		if err := savePNG(output, out); err != nil {
			return err
		}
		logger.Info("OK", "output", s.Output)
		done++
	}

	logger.Infof("Done! %d of %d images saved to %s", done, len(scenes), opts.outputDir)
	return nil
}
