// Package generators synthesizes timeline tracks from raw recorded input:
// smart zoom sessions, click ripples, keystroke overlays, and cursor-stop
// emphasis keyframes.
package generators

import (
	"github.com/opariffazman/lazyrec/internal/primitives"
)

// MouseButton identifies which physical button a click used.
type MouseButton string

const (
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// MousePositionSample is one raw polled cursor sample.
type MousePositionSample struct {
	Time     float64
	Position primitives.NormalizedPoint
	Velocity float64
}

// MouseClickRecord is a single mouse button press/hold.
type MouseClickRecord struct {
	Time     float64
	Position primitives.NormalizedPoint
	Button   MouseButton
	Duration float64
}

// KeyAction distinguishes key-down from key-up.
type KeyAction string

const (
	KeyDown KeyAction = "down"
	KeyUp   KeyAction = "up"
)

// ModifierState tracks which modifier keys were held during an event.
type ModifierState struct {
	Command bool
	Shift   bool
	Alt     bool
	Control bool
}

func (m ModifierState) Any() bool { return m.Command || m.Shift || m.Alt || m.Control }

// Prefix builds the "Ctrl+Alt+Shift+Cmd+" style modifier prefix string, in
// the fixed order the original spec requires.
func (m ModifierState) Prefix() string {
	s := ""
	if m.Control {
		s += "Ctrl+"
	}
	if m.Alt {
		s += "Alt+"
	}
	if m.Shift {
		s += "Shift+"
	}
	if m.Command {
		s += "Cmd+"
	}
	return s
}

// KeyboardRecord is a single keyboard event.
type KeyboardRecord struct {
	Time      float64
	Action    KeyAction
	KeyCode   uint16
	Character string // empty if non-printable
	Modifiers ModifierState
}

// DragRecord is a single click-drag gesture.
type DragRecord struct {
	StartTime     float64
	EndTime       float64
	StartPosition primitives.NormalizedPoint
	EndPosition   primitives.NormalizedPoint
}

// MouseData is the full raw-input recording fed to the generator pipeline.
type MouseData struct {
	Positions []MousePositionSample
	Clicks    []MouseClickRecord
	Keyboard  []KeyboardRecord
	Drags     []DragRecord
	Duration  float64
}
