package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/recording"
)

func TestFromInputRecordingSubtractsCaptureOrigin(t *testing.T) {
	// A non-primary display (or a "region" target) has a non-zero origin;
	// screen-point samples must have it subtracted before normalizing.
	conv := primitives.CoordinateConverter{
		CaptureBoundsX: 1920,
		CaptureBoundsY: 0,
		CaptureWidth:   800,
		CaptureHeight:  600,
	}
	rec := recording.InputRecording{
		Positions: []recording.TimedPosition{
			{Time: 0, X: 1920, Y: 0},
			{Time: 1, X: 2320, Y: 300},
		},
	}

	data := FromInputRecording(rec, conv, 0.15)

	assert.Equal(t, primitives.NormalizedPoint{X: 0, Y: 0}, data.Positions[0].Position)
	assert.Equal(t, primitives.NormalizedPoint{X: 0.5, Y: 0.5}, data.Positions[1].Position)
}

func TestFromInputRecordingScaleFactorNotAppliedTwice(t *testing.T) {
	// ScaleFactor must not be multiplied into the capture-pixel conversion;
	// CaptureWidth/CaptureHeight are already in the same units as the
	// origin-subtracted coordinates.
	conv := primitives.CoordinateConverter{
		CaptureBoundsX: 100,
		CaptureBoundsY: 200,
		CaptureWidth:   800,
		CaptureHeight:  600,
		ScaleFactor:    2.0,
	}
	rec := recording.InputRecording{
		Positions: []recording.TimedPosition{{Time: 0, X: 500, Y: 500}},
	}

	data := FromInputRecording(rec, conv, 0.15)

	assert.InDelta(t, 0.5, data.Positions[0].Position.X, 1e-10)
	assert.InDelta(t, 0.5, data.Positions[0].Position.Y, 1e-10)
}

func TestFromInputRecordingCarriesCharacterAndModifiers(t *testing.T) {
	rec := recording.InputRecording{
		Keyboard: []recording.TimedKey{
			{Time: 0, Action: "down", KeyCode: 65, Char: "a", Modifiers: recording.KeyModifiers{Control: true}},
		},
	}

	data := FromInputRecording(rec, primitives.CoordinateConverter{CaptureWidth: 1, CaptureHeight: 1}, 0.15)

	assert.Equal(t, "a", data.Keyboard[0].Character)
	assert.True(t, data.Keyboard[0].Modifiers.Control)
	assert.True(t, data.Keyboard[0].Modifiers.Any())
}
