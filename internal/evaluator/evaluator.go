// Package evaluator turns a Timeline plus a time and a list of raw mouse
// samples into a deterministic, fully-resolved FrameState.
package evaluator

import (
	"sort"

	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

// MousePosition is a single timestamped raw mouse sample, the evaluator's
// input for cursor interpolation.
type MousePosition struct {
	Time     float64
	Position primitives.NormalizedPoint
}

// TransformState is the resolved zoom/center/velocity at one instant.
type TransformState struct {
	Zoom     float64
	Center   primitives.NormalizedPoint
	Velocity float64
}

// ActiveRipple is a ripple effect alive at one instant.
type ActiveRipple struct {
	Position      primitives.NormalizedPoint
	ProgressEased float64
	Intensity     float64
	Color         timeline.RippleColor
}

// CursorState is the resolved cursor appearance at one instant.
type CursorState struct {
	Position          primitives.NormalizedPoint
	Style             timeline.CursorStyle
	Visible           bool
	Scale             float64
	Velocity          float64
	MovementDirection float64
}

// ActiveKeystroke is a keystroke overlay alive at one instant.
type ActiveKeystroke struct {
	DisplayText string
	Position    primitives.NormalizedPoint
	Opacity     float64
}

// EvaluatedFrameState is the complete evaluated animation result for one
// instant, consumed by the renderer.
type EvaluatedFrameState struct {
	Time       float64
	Transform  TransformState
	Ripples    []ActiveRipple
	Cursor     CursorState
	Keystrokes []ActiveKeystroke
}

// FrameEvaluator evaluates a Timeline at a point in time. WindowMode toggles
// anchor-based transform interpolation (render_settings.background_enabled
// in the project).
type FrameEvaluator struct {
	WindowMode bool
}

// Evaluate is a pure function of (timeline, time, mouse samples).
func (e FrameEvaluator) Evaluate(tl timeline.Timeline, t float64, mouse []MousePosition) EvaluatedFrameState {
	return EvaluatedFrameState{
		Time:       t,
		Transform:  e.evaluateTransform(tl, t),
		Ripples:    e.evaluateRipples(tl, t),
		Cursor:     e.evaluateCursor(tl, t, mouse),
		Keystrokes: e.evaluateKeystrokes(tl, t),
	}
}

func (e FrameEvaluator) evaluateTransform(tl timeline.Timeline, t float64) TransformState {
	track, ok := tl.TransformTrack()
	if !ok || !track.IsEnabled || len(track.Keyframes) == 0 {
		return TransformState{Zoom: 1.0, Center: primitives.Center, Velocity: 0}
	}
	kfs := track.Keyframes
	first, last := kfs[0], kfs[len(kfs)-1]
	if t <= first.Time {
		return TransformState{Zoom: first.Zoom, Center: first.Center, Velocity: 0}
	}
	if t >= last.Time {
		return TransformState{Zoom: last.Zoom, Center: last.Center, Velocity: 0}
	}

	from, to := findBoundingKeyframes(kfs, t)
	segDuration := to.Time - from.Time
	if segDuration <= 0.001 {
		return TransformState{Zoom: to.Zoom, Center: to.Center, Velocity: 0}
	}
	u := (t - from.Time) / segDuration
	easedU := from.Easing.Apply(u, segDuration)

	var interpolated timeline.TransformValue
	if e.WindowMode {
		interpolated = from.Value().InterpolatedForWindowMode(to.Value(), easedU)
	} else {
		interpolated = from.Value().Interpolated(to.Value(), easedU)
		if interpolated.Zoom > 1.0 {
			interpolated.Center = primitives.ClampCenter(interpolated.Center, interpolated.Zoom)
		}
	}

	velocity := from.Easing.Derivative(u, segDuration)
	return TransformState{Zoom: interpolated.Zoom, Center: interpolated.Center, Velocity: velocity}
}

// findBoundingKeyframes binary-searches kfs (len>=2) for the adjacent pair
// (lo,hi) such that kfs[lo].Time <= t < kfs[hi].Time.
func findBoundingKeyframes(kfs []timeline.TransformKeyframe, t float64) (timeline.TransformKeyframe, timeline.TransformKeyframe) {
	lo, hi := 0, len(kfs)-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if kfs[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return kfs[lo], kfs[hi]
}

func (e FrameEvaluator) evaluateRipples(tl timeline.Timeline, t float64) []ActiveRipple {
	track, ok := tl.RippleTrack()
	if !ok || !track.IsEnabled {
		return nil
	}
	var out []ActiveRipple
	for _, k := range track.ActiveRipples(t) {
		out = append(out, ActiveRipple{
			Position:      k.Position,
			ProgressEased: k.Progress(t),
			Intensity:     k.Intensity,
			Color:         k.Color,
		})
	}
	return out
}

func (e FrameEvaluator) evaluateKeystrokes(tl timeline.Timeline, t float64) []ActiveKeystroke {
	track, ok := tl.KeystrokeTrack()
	if !ok || !track.IsEnabled {
		return nil
	}
	var out []ActiveKeystroke
	for _, k := range track.ActiveKeystrokes(t) {
		out = append(out, ActiveKeystroke{
			DisplayText: k.DisplayText,
			Position:    k.Position,
			Opacity:     k.Opacity(t),
		})
	}
	return out
}

func (e FrameEvaluator) evaluateCursor(tl timeline.Timeline, t float64, mouse []MousePosition) CursorState {
	basePos := interpolateMousePosition(mouse, t)
	defaultState := CursorState{
		Position: basePos,
		Style:    timeline.CursorArrow,
		Visible:  true,
		Scale:    2.5,
	}

	track, ok := tl.CursorTrack()
	if ok {
		defaultState.Style = track.DefaultStyle
		defaultState.Scale = track.DefaultScale
		defaultState.Visible = track.DefaultVisible
	}
	if !ok || !track.IsEnabled || len(track.StyleKeyframes) == 0 {
		return defaultState
	}

	var active *timeline.CursorStyleKeyframe
	for i := len(track.StyleKeyframes) - 1; i >= 0; i-- {
		if track.StyleKeyframes[i].Time <= t {
			active = &track.StyleKeyframes[i]
			break
		}
	}
	if active == nil {
		return defaultState
	}

	state := CursorState{
		Position: basePos,
		Style:    active.Style,
		Visible:  active.Visible,
		Scale:    active.Scale,
	}
	if active.Position != nil {
		state.Position = *active.Position
	}
	if active.Velocity != nil {
		state.Velocity = *active.Velocity
	}
	if active.MovementDirection != nil {
		state.MovementDirection = *active.MovementDirection
	}
	return state
}

// interpolateMousePosition resolves the smoothed cursor position at time t
// from a time-ordered sample list, using Catmull-Rom smoothing over 4
// neighbors when enough samples exist.
func interpolateMousePosition(samples []MousePosition, t float64) primitives.NormalizedPoint {
	switch len(samples) {
	case 0:
		return primitives.Center
	case 1:
		return samples[0].Position
	}

	idx := sort.Search(len(samples), func(i int) bool { return samples[i].Time >= t })
	if idx < len(samples) && samples[idx].Time == t {
		return samples[idx].Position
	}
	if idx == 0 {
		return samples[0].Position
	}
	if idx >= len(samples) {
		return samples[len(samples)-1].Position
	}

	if len(samples) < 4 {
		prev, next := samples[idx-1], samples[idx]
		span := next.Time - prev.Time
		if span <= 0 {
			return prev.Position
		}
		frac := (t - prev.Time) / span
		return prev.Position.Interpolated(next.Position, frac)
	}

	i1 := idx - 1
	i2 := idx
	i0 := i1
	if i1 > 0 {
		i0 = i1 - 1
	}
	i3 := i2 + 1
	if i3 > len(samples)-1 {
		i3 = len(samples) - 1
	}

	p0, p1, p2, p3 := samples[i0].Position, samples[i1].Position, samples[i2].Position, samples[i3].Position
	span := samples[i2].Time - samples[i1].Time
	frac := 0.0
	if span > 0 {
		frac = (t - samples[i1].Time) / span
	}
	return catmullRom(p0, p1, p2, p3, frac).Clamped()
}

const catmullRomTension = 0.2

func catmullRom(p0, p1, p2, p3 primitives.NormalizedPoint, t float64) primitives.NormalizedPoint {
	return primitives.NormalizedPoint{
		X: catmullRom1D(p0.X, p1.X, p2.X, p3.X, t),
		Y: catmullRom1D(p0.Y, p1.Y, p2.Y, p3.Y, t),
	}
}

// catmullRom1D is the standard basis-matrix Catmull-Rom form with a tension
// parameter, matching the original core's evaluator.rs.
func catmullRom1D(p0, p1, p2, p3, t float64) float64 {
	tau := catmullRomTension
	t2 := t * t
	t3 := t2 * t

	m1 := tau * (p2 - p0)
	m2 := tau * (p3 - p1)

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p1 + h10*m1 + h01*p2 + h11*m2
}
