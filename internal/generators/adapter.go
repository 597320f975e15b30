package generators

import (
	"math"
	"sort"

	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/recording"
)

// FromInputRecording converts a raw recording.InputRecording (screen-point
// samples from internal/input, in absolute desktop coordinates) into the
// normalized MouseData the generator pipeline operates on, via conv's
// screen->capture-pixel->normalized conversion. Drags are reconstructed
// from left-button click press/hold pairs whose duration exceeds
// dragMinDuration.
func FromInputRecording(rec recording.InputRecording, conv primitives.CoordinateConverter, dragMinDuration float64) MouseData {
	data := MouseData{Duration: 0}

	toNorm := func(x, y float64) primitives.NormalizedPoint {
		return conv.ScreenToNormalized(primitives.ScreenPoint{X: x, Y: y})
	}

	var prev *recording.TimedPosition
	for i := range rec.Positions {
		p := rec.Positions[i]
		var velocity float64
		if prev != nil {
			dt := p.Time - prev.Time
			if dt > 0 && conv.CaptureWidth > 0 && conv.CaptureHeight > 0 {
				dx := (p.X - prev.X) / conv.CaptureWidth
				dy := (p.Y - prev.Y) / conv.CaptureHeight
				velocity = math.Sqrt(dx*dx+dy*dy) / dt
			}
		}
		data.Positions = append(data.Positions, MousePositionSample{
			Time:     p.Time,
			Position: toNorm(p.X, p.Y),
			Velocity: velocity,
		})
		prev = &rec.Positions[i]
		if p.Time > data.Duration {
			data.Duration = p.Time
		}
	}

	for _, c := range rec.Clicks {
		btn := ButtonLeft
		switch c.Button {
		case "right":
			btn = ButtonRight
		case "middle":
			btn = ButtonMiddle
		}
		if btn == ButtonLeft && c.Duration > dragMinDuration {
			data.Drags = append(data.Drags, DragRecord{
				StartTime:     c.Time,
				EndTime:       c.Time + c.Duration,
				StartPosition: toNorm(c.X, c.Y),
				EndPosition:   toNorm(c.X, c.Y),
			})
		} else {
			data.Clicks = append(data.Clicks, MouseClickRecord{
				Time:     c.Time,
				Position: toNorm(c.X, c.Y),
				Button:   btn,
				Duration: c.Duration,
			})
		}
		if c.Time+c.Duration > data.Duration {
			data.Duration = c.Time + c.Duration
		}
	}

	for _, k := range rec.Keyboard {
		action := KeyDown
		if k.Action == "up" {
			action = KeyUp
		}
		data.Keyboard = append(data.Keyboard, KeyboardRecord{
			Time:      k.Time,
			Action:    action,
			KeyCode:   k.KeyCode,
			Character: k.Char,
			Modifiers: ModifierState{
				Command: k.Modifiers.Command,
				Shift:   k.Modifiers.Shift,
				Alt:     k.Modifiers.Alt,
				Control: k.Modifiers.Control,
			},
		})
		if k.Time > data.Duration {
			data.Duration = k.Time
		}
	}

	sort.Slice(data.Positions, func(i, j int) bool { return data.Positions[i].Time < data.Positions[j].Time })
	sort.Slice(data.Clicks, func(i, j int) bool { return data.Clicks[i].Time < data.Clicks[j].Time })
	sort.Slice(data.Keyboard, func(i, j int) bool { return data.Keyboard[i].Time < data.Keyboard[j].Time })

	return data
}
