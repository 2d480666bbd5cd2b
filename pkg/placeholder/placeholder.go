// Package placeholder resolves the blur-up placeholder shown beneath an image
// while it loads.
//
// A [State] is derived per render from the placeholder mode and optional
// explicit payload; its Complete flag is owned by the mounted image and flips
// to true once per load cycle.
package placeholder

import (
	"fmt"
	"strings"
)

// DefaultSize is the edge length, in pixels, requested from a Generator
// when no size is given.
const DefaultSize = 8

// Mode selects the placeholder behavior.
type Mode int

const (
	// ModeEmpty shows nothing while loading. This is the zero value.
	ModeEmpty Mode = iota
	// ModeBlur shows a blurred payload until the image settles.
	ModeBlur
)

// String returns the attribute spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeBlur:
		return "blur"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a placeholder value. "blur", "empty" and "" map to their
// modes. An inline "data:image/..." value selects ModeBlur and is returned as
// the explicit payload.
func ParseMode(value string) (Mode, string, error) {
	switch {
	case value == "" || value == "empty":
		return ModeEmpty, "", nil
	case value == "blur":
		return ModeBlur, "", nil
	case strings.HasPrefix(value, "data:image/"):
		return ModeBlur, value, nil
	default:
		return ModeEmpty, "", fmt.Errorf("unknown placeholder %q", value)
	}
}

// Generator synthesizes a placeholder payload as a data URL. It returns ""
// when synthesis is unavailable; callers treat that as "no placeholder".
type Generator func(width, height int) string

// State is the resolved placeholder for one render.
type State struct {
	Mode Mode
	// Data is the inline payload (a data URL). Empty means no overlay.
	Data string
	// Complete reports whether the load cycle has resolved the placeholder.
	Complete bool
}

// Resolve is ResolveSized with DefaultSize dimensions.
func Resolve(mode Mode, explicit string, gen Generator) State {
	return ResolveSized(mode, explicit, DefaultSize, DefaultSize, gen)
}

// ResolveSized resolves the placeholder state. Empty mode is trivially
// complete. Blur mode uses explicit verbatim when non-empty, otherwise asks
// gen for a width×height payload.
func ResolveSized(mode Mode, explicit string, width, height int, gen Generator) State {
	if mode != ModeBlur {
		return State{Mode: ModeEmpty, Complete: true}
	}
	data := explicit
	if data == "" && gen != nil {
		if width <= 0 {
			width = DefaultSize
		}
		if height <= 0 {
			height = DefaultSize
		}
		data = gen(width, height)
	}
	return State{Mode: ModeBlur, Data: data}
}

// Overlay reports whether the payload should currently be drawn beneath
// the image. A blur state without data renders exactly like ModeEmpty.
func (s State) Overlay() bool {
	return s.Mode == ModeBlur && !s.Complete && s.Data != ""
}

// Tracked reports whether the state participates in completion tracking.
func (s State) Tracked() bool {
	return s.Mode != ModeEmpty
}

// MarkComplete returns s with Complete set.
func (s State) MarkComplete() State {
	s.Complete = true
	return s
}

// WithComplete returns s with Complete set to complete. Empty mode stays
// complete regardless.
func (s State) WithComplete(complete bool) State {
	if s.Mode == ModeEmpty {
		s.Complete = true
		return s
	}
	s.Complete = complete
	return s
}
