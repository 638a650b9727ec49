package comicbubble

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sceneList = `
[[scene]]
input = "20260218_210849_An_Urhobo_traditional_marriage_scene_in.png"
output = "01_migwo_morning.png"
left = "migwọ"
pos_left = [0.30, 0.25]

[[scene]]
input = "20260218_211310_An_Urhobo_traditional_marriage_scene_fro.png"
output = "05_migwo_vrendo.png"
left = "migwọ"
right = "Vrẹndo"
pos_left = [0.28, 0.25]
pos_right = [0.85, 0.2]

[[scene]]
input = "20260216_144051_A_Nigerian_Urhobo_woman_standing_at_the.png"
output = "12_good_night.png"
right = "Todẹ!"
`

func TestDecodeScenes(t *testing.T) {
	scenes, err := DecodeScenes(strings.NewReader(sceneList))
	if err != nil {
		t.Fatalf("DecodeScenes() error = %v", err)
	}
	if len(scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(scenes))
	}

	tests := []struct {
		scene int
		want  []BubbleSpec
	}{
		{0, []BubbleSpec{{Text: "migwọ", Anchor: Anchor{0.30, 0.25}, Side: SideLeft}}},
		{1, []BubbleSpec{
			{Text: "migwọ", Anchor: Anchor{0.28, 0.25}, Side: SideLeft},
			{Text: "Vrẹndo", Anchor: Anchor{0.85, 0.2}, Side: SideRight},
		}},
		{2, []BubbleSpec{{Text: "Todẹ!", Anchor: defaultRightAlone, Side: SideRight}}},
	}

	for _, tt := range tests {
		got, err := scenes[tt.scene].Bubbles()
		if err != nil {
			t.Errorf("scene %d Bubbles() error = %v", tt.scene, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("scene %d Bubbles() = %+v, want %+v", tt.scene, got, tt.want)
		}
	}
}

func TestNewBubblesDefaultPositions(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		want        []Anchor
	}{
		{"left alone", "a", "", []Anchor{defaultLeftAlone}},
		{"right alone", "", "b", []Anchor{defaultRightAlone}},
		{"pair", "a", "b", []Anchor{defaultLeftPair, defaultRightPair}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBubbles(tt.left, tt.right, nil, nil)
			if err != nil {
				t.Fatalf("NewBubbles() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d bubbles, want %d", len(got), len(tt.want))
			}
			for i, b := range got {
				if b.Anchor != tt.want[i] {
					t.Errorf("bubble %d anchor = %v, want %v", i, b.Anchor, tt.want[i])
				}
			}
		})
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
	}{
		{"no output", Scene{Input: "a.png", Left: "hi"}},
		{"no input", Scene{Output: "b.png", Left: "hi"}},
		{"no text", Scene{Input: "a.png", Output: "b.png"}},
		{"short position", Scene{Input: "a.png", Output: "b.png", Left: "hi", PosLeft: []float64{0.5}}},
		{"long position", Scene{Input: "a.png", Output: "b.png", Right: "hi", PosRight: []float64{0.5, 0.5, 0.5}}},
		{"out of range", Scene{Input: "a.png", Output: "b.png", Right: "hi", PosRight: []float64{0.5, 1.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.scene.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("Validate() = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestDecodeScenesRejectsInvalid(t *testing.T) {
	_, err := DecodeScenes(strings.NewReader(`
[[scene]]
input = "a.png"
left = "hi"
`))
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("DecodeScenes() error = %v, want ErrInvalidSpec", err)
	}

	if _, err := DecodeScenes(strings.NewReader("[[scene]\n")); err == nil {
		t.Error("DecodeScenes() accepted malformed TOML")
	}
}
