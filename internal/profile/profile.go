// Package profile defines the closed set of output targets a conversion can
// aim for. A profile fixes the canvas geometry, frame-rate ceiling, and
// duration cap of one upload variant and is never mutated after selection.
package profile

import (
	"fmt"
	"strings"
)

// Kind names one output variant.
type Kind string

const (
	// KindSticker targets the 512px sticker format: the longer side becomes
	// 512 and the shorter side keeps the aspect ratio.
	KindSticker Kind = "sticker"
	// KindEmoji targets the fixed 100x100 emoji canvas, padded with
	// transparency when the aspect ratio differs.
	KindEmoji Kind = "emoji"
)

// Profile describes one output target.
type Profile struct {
	Kind         Kind
	Width        int
	Height       int
	MaxFrameRate int
	MaxDuration  float64

	// AdaptiveHeight selects longer-side scaling instead of the fixed
	// scale-and-pad canvas.
	AdaptiveHeight bool
}

// Sticker returns the sticker profile.
func Sticker() Profile {
	return Profile{
		Kind:           KindSticker,
		Width:          512,
		Height:         512,
		MaxFrameRate:   30,
		MaxDuration:    3.0,
		AdaptiveHeight: true,
	}
}

// Emoji returns the emoji profile.
func Emoji() Profile {
	return Profile{
		Kind:         KindEmoji,
		Width:        100,
		Height:       100,
		MaxFrameRate: 30,
		MaxDuration:  3.0,
	}
}

// ForKind resolves a profile from user input.
func ForKind(value string) (Profile, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindSticker:
		return Sticker(), nil
	case KindEmoji:
		return Emoji(), nil
	default:
		return Profile{}, fmt.Errorf("unknown mode %q (want sticker or emoji)", value)
	}
}
