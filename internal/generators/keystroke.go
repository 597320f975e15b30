package generators

import (
	"strings"

	"github.com/opariffazman/lazyrec/internal/timeline"
)

const keystrokeMinInterval = 0.2

// namedKeys maps virtual key codes (as delivered by the platform input
// backend, see internal/input) to their display names, for the handful of
// non-printable keys the keystroke overlay should still show.
var namedKeys = map[uint16]string{
	13: "Enter",
	9:  "Tab",
	32: "Space",
	8:  "Backspace",
	27: "Escape",
	46: "Delete",
	37: "Left",
	38: "Up",
	39: "Right",
	40: "Down",
	36: "Home",
	35: "End",
	33: "PageUp",
	34: "PageDown",
}

// modifierKeyCodes are standalone modifier keys that should never surface
// their own keystroke overlay.
var modifierKeyCodes = map[uint16]bool{
	16: true, 17: true, 18: true, 91: true, 92: true, // shift, ctrl, alt, cmd/win (left/right not distinguished here)
}

// EmitKeystrokeKeyframes iterates key-down events, resolving a display name,
// skipping standalone modifiers and (optionally) unmodified keys, and
// deduping auto-repeat within keystrokeMinInterval.
//
// shortcutsOnly, when true, skips any key event without an active modifier.
func EmitKeystrokeKeyframes(data MouseData, shortcutsOnly bool) []timeline.KeystrokeKeyframe {
	var out []timeline.KeystrokeKeyframe
	lastTime := -1.0

	for _, k := range data.Keyboard {
		if k.Action != KeyDown {
			continue
		}
		if modifierKeyCodes[k.KeyCode] {
			continue
		}
		if shortcutsOnly && !k.Modifiers.Any() {
			continue
		}
		if lastTime >= 0 && k.Time-lastTime < keystrokeMinInterval {
			continue
		}

		name := displayName(k)
		if name == "" {
			continue
		}
		text := k.Modifiers.Prefix() + name
		out = append(out, timeline.NewKeystrokeKeyframe(k.Time, text))
		lastTime = k.Time
	}
	return out
}

func displayName(k KeyboardRecord) string {
	if name, ok := namedKeys[k.KeyCode]; ok {
		return name
	}
	if k.Character != "" {
		return strings.ToUpper(k.Character)
	}
	return ""
}
