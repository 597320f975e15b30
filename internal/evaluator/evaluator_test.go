package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

func buildTransformTimeline(kfs ...timeline.TransformKeyframe) timeline.Timeline {
	tl := timeline.WithDefaultTracks(10.0)
	track, _ := tl.TransformTrack()
	for _, k := range kfs {
		track.AddKeyframe(k)
	}
	return tl
}

func TestLinearZoomInterpolation(t *testing.T) {
	tl := buildTransformTimeline(
		timeline.NewTransformKeyframe(0, 1.0, primitives.Center, primitives.Linear()),
		timeline.NewTransformKeyframe(1, 3.0, primitives.Center, primitives.Linear()),
	)
	e := FrameEvaluator{}
	state := e.Evaluate(tl, 0.5, nil)
	assert.InDelta(t, 2.0, state.Transform.Zoom, 1e-9)
}

func TestTransformHoldsBeforeFirstAndAfterLast(t *testing.T) {
	tl := buildTransformTimeline(
		timeline.NewTransformKeyframe(1, 2.0, primitives.Center, primitives.Linear()),
		timeline.NewTransformKeyframe(2, 4.0, primitives.Center, primitives.Linear()),
	)
	e := FrameEvaluator{}
	before := e.Evaluate(tl, 0.0, nil)
	assert.Equal(t, 2.0, before.Transform.Zoom)
	assert.Equal(t, 0.0, before.Transform.Velocity)

	after := e.Evaluate(tl, 5.0, nil)
	assert.Equal(t, 4.0, after.Transform.Zoom)
	assert.Equal(t, 0.0, after.Transform.Velocity)
}

func TestTransformDisabledOrEmptyYieldsIdentity(t *testing.T) {
	tl := timeline.WithDefaultTracks(5.0)
	e := FrameEvaluator{}
	state := e.Evaluate(tl, 1.0, nil)
	assert.Equal(t, 1.0, state.Transform.Zoom)
	assert.Equal(t, primitives.Center, state.Transform.Center)
}

func TestClampCenterAppliedAboveZoomOne(t *testing.T) {
	tl := buildTransformTimeline(
		timeline.NewTransformKeyframe(0, 4.0, primitives.NormalizedPoint{X: 0, Y: 0}, primitives.Linear()),
		timeline.NewTransformKeyframe(1, 4.0, primitives.NormalizedPoint{X: 0, Y: 0}, primitives.Linear()),
	)
	e := FrameEvaluator{}
	state := e.Evaluate(tl, 0.5, nil)
	assert.InDelta(t, 0.125, state.Transform.Center.X, 1e-9)
	assert.InDelta(t, 0.125, state.Transform.Center.Y, 1e-9)
}

func TestRippleIsActiveWindow(t *testing.T) {
	tl := timeline.WithDefaultTracks(5.0)
	track, _ := tl.RippleTrack()
	k := timeline.NewRippleKeyframe(1.0, primitives.Center)
	track.AddKeyframe(k)

	e := FrameEvaluator{}
	assert.Empty(t, e.Evaluate(tl, 0.5, nil).Ripples)
	assert.Len(t, e.Evaluate(tl, 1.2, nil).Ripples, 1)
	assert.Empty(t, e.Evaluate(tl, 2.0, nil).Ripples)
}

func TestInterpolateMousePositionEdgeCases(t *testing.T) {
	assert.Equal(t, primitives.Center, interpolateMousePosition(nil, 1.0))

	single := []MousePosition{{Time: 0, Position: primitives.NormalizedPoint{X: 0.3, Y: 0.4}}}
	assert.Equal(t, single[0].Position, interpolateMousePosition(single, 5.0))

	linear := []MousePosition{
		{Time: 0, Position: primitives.NormalizedPoint{X: 0, Y: 0}},
		{Time: 1, Position: primitives.NormalizedPoint{X: 1, Y: 1}},
	}
	mid := interpolateMousePosition(linear, 0.5)
	assert.InDelta(t, 0.5, mid.X, 1e-9)
}

func TestKeyframeAtExactTime(t *testing.T) {
	tl := buildTransformTimeline(
		timeline.NewTransformKeyframe(0, 1.0, primitives.Center, primitives.Linear()),
		timeline.NewTransformKeyframe(1, 3.0, primitives.Center, primitives.Linear()),
	)
	e := FrameEvaluator{}
	state := e.Evaluate(tl, 0.0, nil)
	assert.Equal(t, 1.0, state.Transform.Zoom)
}
