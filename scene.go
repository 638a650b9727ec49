package comicbubble

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Scene is one entry of a batch scene list: an input image, where to write the
// result, and the text for up to two speakers.
type Scene struct {
	Input    string    `toml:"input"`
	Output   string    `toml:"output"`
	Left     string    `toml:"left"`
	Right    string    `toml:"right"`
	PosLeft  []float64 `toml:"pos_left"`
	PosRight []float64 `toml:"pos_right"`
}

// SceneList is the top level of a scene file, a sequence of [[scene]] tables.
type SceneList struct {
	Scenes []Scene `toml:"scene"`
}

// DecodeScenes reads a TOML scene list and validates every scene in it.
func DecodeScenes(r io.Reader) ([]Scene, error) {
	var list SceneList
	if _, err := toml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding scenes: %w", err)
	}
	for i, s := range list.Scenes {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("scene %d: %w", i+1, err)
		}
	}
	return list.Scenes, nil
}

// Validate checks that the scene names its files and has something to say.
func (s Scene) Validate() error {
	if s.Input == "" || s.Output == "" {
		return fmt.Errorf("%w: input and output are required", ErrInvalidSpec)
	}
	_, err := NewBubbles(s.Left, s.Right, s.PosLeft, s.PosRight)
	return err
}

// Bubbles returns the scene's bubbles, left speaker first.
func (s Scene) Bubbles() ([]BubbleSpec, error) {
	return NewBubbles(s.Left, s.Right, s.PosLeft, s.PosRight)
}

// Fallback anchors for speakers without an explicit position. The height is a
// fraction so the spot scales with the image.
var (
	defaultLeftAlone  = Anchor{1.0 / 3, 0.9}
	defaultRightAlone = Anchor{2.0 / 3, 0.9}
	defaultLeftPair   = Anchor{0.25, 0.9}
	defaultRightPair  = Anchor{0.75, 0.9}
)

// NewBubbles builds bubbles from the left/right text and position fields of a scene.
// Empty text means no bubble for that speaker. A nil position falls back to a
// spot near the bottom of the image on the speaker's side.
func NewBubbles(left, right string, posLeft, posRight []float64) ([]BubbleSpec, error) {
	if left == "" && right == "" {
		return nil, fmt.Errorf("%w: at least one of left or right text is required", ErrInvalidSpec)
	}
	pair := left != "" && right != ""

	var bubbles []BubbleSpec
	if left != "" {
		fallback := defaultLeftAlone
		if pair {
			fallback = defaultLeftPair
		}
		a, err := anchorFrom("pos_left", posLeft, fallback)
		if err != nil {
			return nil, err
		}
		bubbles = append(bubbles, BubbleSpec{Text: left, Anchor: a, Side: SideLeft})
	}
	if right != "" {
		fallback := defaultRightAlone
		if pair {
			fallback = defaultRightPair
		}
		a, err := anchorFrom("pos_right", posRight, fallback)
		if err != nil {
			return nil, err
		}
		bubbles = append(bubbles, BubbleSpec{Text: right, Anchor: a, Side: SideRight})
	}
	return bubbles, nil
}

func anchorFrom(field string, pos []float64, fallback Anchor) (Anchor, error) {
	if pos == nil {
		return fallback, nil
	}
	if len(pos) != 2 {
		return Anchor{}, fmt.Errorf("%w: %s needs 2 values, got %d", ErrInvalidSpec, field, len(pos))
	}
	a := Anchor{pos[0], pos[1]}
	if err := a.Validate(); err != nil {
		return Anchor{}, fmt.Errorf("%s: %w", field, err)
	}
	return a, nil
}
