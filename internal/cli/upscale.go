package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iopred/comicbubble"
)

func newUpscaleCmd() *cobra.Command {
	var scale int

	cmd := &cobra.Command{
		Use:   "upscale IMAGE",
		Short: "Upscale an image locally with Catmull-Rom resampling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpscale(cmd.Context(), args[0], scale)
		},
	}
	cmd.Flags().IntVarP(&scale, "scale", "s", 2, "upscale factor: 2, 3 or 4")

	return cmd
}

func runUpscale(ctx context.Context, input string, scale int) error {
	img, err := loadImage(input)
	if err != nil {
		return err
	}
	out, err := comicbubble.Upscale(img, scale)
	if err != nil {
		return err
	}

	path := upscaledPath(input, scale)
	if err := savePNG(path, out); err != nil {
		return err
	}
	b := out.Bounds()
	loggerFromContext(ctx).Infof("Upscaled %dx -> %s (%dx%d)", scale, path, b.Dx(), b.Dy())
	return nil
}

// upscaledPath names the output next to the input, e.g. cat.png -> cat_upscaled_2x.png.
func upscaledPath(input string, scale int) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), fmt.Sprintf("%s_upscaled_%dx.png", stem, scale))
}
