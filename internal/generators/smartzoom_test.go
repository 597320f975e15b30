package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opariffazman/lazyrec/internal/primitives"
)

func TestRippleDebounce(t *testing.T) {
	data := MouseData{
		Clicks: []MouseClickRecord{
			{Time: 1.00, Position: primitives.Center, Button: ButtonLeft},
			{Time: 1.02, Position: primitives.Center, Button: ButtonLeft},
			{Time: 2.00, Position: primitives.Center, Button: ButtonLeft},
		},
	}
	out := EmitRippleKeyframes(data)
	assert.Len(t, out, 2)
}

func TestSessionClustering(t *testing.T) {
	activities := []Activity{
		{Time: 1.0, Position: primitives.NormalizedPoint{X: 0.3, Y: 0.3}, Type: ActivityClick},
		{Time: 1.5, Position: primitives.NormalizedPoint{X: 0.32, Y: 0.31}, Type: ActivityClick},
		{Time: 10.0, Position: primitives.NormalizedPoint{X: 0.8, Y: 0.8}, Type: ActivityClick},
	}
	sessions := ClusterSessions(activities)
	assert.Len(t, sessions, 2)
	assert.Len(t, sessions[0].Activities, 2)
	assert.Len(t, sessions[1].Activities, 1)
}

func TestZoomFit(t *testing.T) {
	bbox := primitives.BoundingBox{MinX: 0.4, MinY: 0.4, MaxX: 0.5, MaxY: 0.5}
	assert.InDelta(t, 4.0, FitZoom(bbox), 1e-6)
}

func TestKeystrokeDedupe(t *testing.T) {
	data := MouseData{
		Keyboard: []KeyboardRecord{
			{Time: 0.0, Action: KeyDown, KeyCode: 65, Character: "a"},
			{Time: 0.05, Action: KeyDown, KeyCode: 65, Character: "a"},
			{Time: 1.0, Action: KeyDown, KeyCode: 65, Character: "a"},
		},
	}
	out := EmitKeystrokeKeyframes(data, false)
	assert.Len(t, out, 2)
}
