package generators

import (
	"github.com/opariffazman/lazyrec/internal/timeline"
)

const rippleMinInterval = 0.1

// EmitRippleKeyframes iterates left-button-down clicks, skipping any within
// rippleMinInterval of the previously emitted ripple.
func EmitRippleKeyframes(data MouseData) []timeline.RippleKeyframe {
	var out []timeline.RippleKeyframe
	lastTime := -1.0
	for _, c := range data.Clicks {
		if c.Button != ButtonLeft {
			continue
		}
		if lastTime >= 0 && c.Time-lastTime < rippleMinInterval {
			continue
		}
		k := timeline.NewRippleKeyframe(c.Time, c.Position)
		out = append(out, k)
		lastTime = c.Time
	}
	return out
}

const cursorClickMinInterval = 0.05
const cursorStopMinVelocity = 0.005
const cursorStopMinInterval = 0.3
const cursorDedupeWindow = 0.05

// EmitCursorKeyframes implements the cursor generator: a shrink/restore pair
// per click, plus cursor-stop emphasis keyframes where movement velocity
// drops below cursorStopMinVelocity.
func EmitCursorKeyframes(data MouseData) []timeline.CursorStyleKeyframe {
	var out []timeline.CursorStyleKeyframe

	for _, c := range data.Clicks {
		shrink := timeline.NewCursorStyleKeyframe(c.Time)
		shrink.Scale = 2.0
		out = append(out, shrink)

		restoreAt := c.Time + maxf(c.Duration, cursorClickMinInterval)
		restore := timeline.NewCursorStyleKeyframe(restoreAt)
		restore.Scale = 2.5
		out = append(out, restore)
	}

	lastEmitted := -cursorStopMinInterval
	for i := 1; i < len(data.Positions); i++ {
		prev, cur := data.Positions[i-1], data.Positions[i]
		dt := cur.Time - prev.Time
		if dt <= 0 {
			continue
		}
		v := prev.Position.Distance(cur.Position) / dt
		if v < cursorStopMinVelocity && cur.Time-lastEmitted >= cursorStopMinInterval {
			k := timeline.NewCursorStyleKeyframe(cur.Time)
			pos := cur.Position
			k.Position = &pos
			out = append(out, k)
			lastEmitted = cur.Time
		}
	}

	return dedupeCursorKeyframes(out)
}

func dedupeCursorKeyframes(kfs []timeline.CursorStyleKeyframe) []timeline.CursorStyleKeyframe {
	sortCursorKeyframes(kfs)
	var deduped []timeline.CursorStyleKeyframe
	for _, k := range kfs {
		if len(deduped) > 0 && k.Time-deduped[len(deduped)-1].Time < cursorDedupeWindow {
			continue
		}
		deduped = append(deduped, k)
	}
	return deduped
}

func sortCursorKeyframes(kfs []timeline.CursorStyleKeyframe) {
	for i := 1; i < len(kfs); i++ {
		for j := i; j > 0 && kfs[j].Time < kfs[j-1].Time; j-- {
			kfs[j], kfs[j-1] = kfs[j-1], kfs[j]
		}
	}
}
