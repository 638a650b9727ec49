package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iopred/comicbubble"
)

// overlayOpts holds the flags of the overlay command.
type overlayOpts struct {
	left, right       string
	posLeft, posRight string // "x,y" fractions
	font              string
	width, height     int
}

func newOverlayCmd() *cobra.Command {
	style := comicbubble.DefaultStyle()
	opts := overlayOpts{
		font:   comicbubble.DefaultFontPath,
		width:  style.Width,
		height: style.Height,
	}

	cmd := &cobra.Command{
		Use:   "overlay INPUT OUTPUT",
		Short: "Draw speech bubbles onto an image",
		Long: `Draw a bubble for the left speaker, the right speaker, or both.

Positions are x,y fractions of the image size where 0,0 is the top-left
corner; the bubble's tail points at that spot.`,
		Example: `  comicbubble overlay in.png out.png --left "migwọ" --right "Vrẹndo"
  comicbubble overlay in.png out.png -l "Mavọ?" --pos-left 0.28,0.45`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.left, "left", "l", "", "text for the left speaker's bubble")
	cmd.Flags().StringVarP(&opts.right, "right", "r", "", "text for the right speaker's bubble")
	cmd.Flags().StringVar(&opts.posLeft, "pos-left", "", "anchor of the left bubble as x,y fractions")
	cmd.Flags().StringVar(&opts.posRight, "pos-right", "", "anchor of the right bubble as x,y fractions")
	cmd.Flags().StringVar(&opts.font, "font", opts.font, "TrueType font for bubble text")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "bubble width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "bubble height in pixels")

	return cmd
}

func runOverlay(ctx context.Context, input, output string, opts *overlayOpts) error {
	logger := loggerFromContext(ctx)

	if opts.left == "" && opts.right == "" {
		return errors.New("provide at least one of --left or --right text")
	}
	posLeft, err := parsePosition(opts.posLeft)
	if err != nil {
		return fmt.Errorf("--pos-left: %w", err)
	}
	posRight, err := parsePosition(opts.posRight)
	if err != nil {
		return fmt.Errorf("--pos-right: %w", err)
	}
	bubbles, err := comicbubble.NewBubbles(opts.left, opts.right, posLeft, posRight)
	if err != nil {
		return err
	}

	style := comicbubble.DefaultStyle()
	style.Width, style.Height = opts.width, opts.height
	r := comicbubble.New(
		comicbubble.WithFontPath(opts.font),
		comicbubble.WithStyle(style),
		comicbubble.WithLogger(logger),
	)

	img, err := loadImage(input)
	if err != nil {
		return err
	}
	out, err := r.Overlay(img, bubbles...)
	if err != nil {
		return err
	}
	if err := savePNG(output, out); err != nil {
		return err
	}
	logger.Info("Saved", "path", output, "bubbles", len(bubbles))
	return nil
}

// parsePosition parses "x,y" into a two element slice. An empty string means no position.
func parsePosition(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("position %q must be x,y", s)
	}
	pos := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", s, err)
		}
		pos[i] = v
	}
	return pos, nil
}
