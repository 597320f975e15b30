// Package timeline defines the keyframe/track/timeline data model: typed
// tracks of keyframes describing transform, ripple, cursor, and keystroke
// animation over the life of a recording.
package timeline

import (
	"github.com/google/uuid"

	"github.com/opariffazman/lazyrec/internal/primitives"
)

// TransformValue is the zoom/center pair a TransformKeyframe carries.
type TransformValue struct {
	Zoom   float64
	Center primitives.NormalizedPoint
}

// IdentityTransform is the neutral (no zoom, centered) transform value.
var IdentityTransform = TransformValue{Zoom: 1.0, Center: primitives.Center}

// Interpolated performs standard-mode linear interpolation on zoom and
// center independently.
func (v TransformValue) Interpolated(o TransformValue, t float64) TransformValue {
	return TransformValue{
		Zoom:   v.Zoom + (o.Zoom-v.Zoom)*t,
		Center: v.Center.Interpolated(o.Center, t),
	}
}

// InterpolatedForWindowMode performs window-mode interpolation: the anchor
// center*zoom is interpolated linearly, then center is recovered by dividing
// by the interpolated zoom (floored to avoid division blowups).
func (v TransformValue) InterpolatedForWindowMode(o TransformValue, t float64) TransformValue {
	zoom := v.Zoom + (o.Zoom-v.Zoom)*t
	anchor := v.Center.Scaled(v.Zoom).Interpolated(o.Center.Scaled(o.Zoom), t)
	zoomInterp := zoom
	if zoomInterp < 1e-3 {
		zoomInterp = 1e-3
	}
	return TransformValue{Zoom: zoom, Center: anchor.Scaled(1.0 / zoomInterp)}
}

// TransformKeyframe describes a target zoom/center/easing at a point in time.
type TransformKeyframe struct {
	ID     uuid.UUID
	Time   float64
	Zoom   float64
	Center primitives.NormalizedPoint
	Easing primitives.EasingCurve
}

// NewTransformKeyframe constructs a keyframe, clamping zoom to >= 1.0 and
// center to [0,1]^2 (the zoom-aware clamp is applied later by the
// evaluator/generators, not here).
func NewTransformKeyframe(time, zoom float64, center primitives.NormalizedPoint, easing primitives.EasingCurve) TransformKeyframe {
	if zoom < 1.0 {
		zoom = 1.0
	}
	return TransformKeyframe{
		ID:     uuid.New(),
		Time:   time,
		Zoom:   zoom,
		Center: center.Clamped(),
		Easing: easing,
	}
}

// IdentityTransformKeyframe builds a keyframe at the identity transform.
func IdentityTransformKeyframe(time float64) TransformKeyframe {
	return NewTransformKeyframe(time, 1.0, primitives.Center, primitives.Linear())
}

func (k TransformKeyframe) Value() TransformValue {
	return TransformValue{Zoom: k.Zoom, Center: k.Center}
}

// RippleColor is the color applied to a click-ripple effect.
type RippleColor struct {
	R, G, B, A float64
}

var (
	RippleColorLeftClick  = RippleColor{R: 0.2, G: 0.5, B: 1.0, A: 0.6}
	RippleColorRightClick = RippleColor{R: 1.0, G: 0.5, B: 0.2, A: 0.6}
)

// RippleColorCustom builds a custom ripple color.
func RippleColorCustom(r, g, b, a float64) RippleColor { return RippleColor{R: r, G: g, B: b, A: a} }

// RippleKeyframe describes a single click-ripple effect.
type RippleKeyframe struct {
	ID        uuid.UUID
	Time      float64
	Position  primitives.NormalizedPoint
	Intensity float64
	Duration  float64
	Color     RippleColor
	Easing    primitives.EasingCurve
}

// NewRippleKeyframe applies the original's defaults: intensity 0.8,
// duration 0.4s, left-click color, bouncy spring.
func NewRippleKeyframe(time float64, position primitives.NormalizedPoint) RippleKeyframe {
	return RippleKeyframe{
		ID:        uuid.New(),
		Time:      time,
		Position:  position.Clamped(),
		Intensity: 0.8,
		Duration:  0.4,
		Color:     RippleColorLeftClick,
		Easing:    primitives.SpringBouncy(),
	}
}

func (k RippleKeyframe) EndTime() float64 { return k.Time + k.Duration }

func (k RippleKeyframe) IsActive(t float64) bool {
	return t >= k.Time && t <= k.EndTime()
}

// Progress returns the eased [0,1] progress of the ripple at time t, or 0 if
// the ripple is inactive or has a non-positive duration.
func (k RippleKeyframe) Progress(t float64) float64 {
	if k.Duration <= 0 || !k.IsActive(t) {
		return 0.0
	}
	raw := (t - k.Time) / k.Duration
	return k.Easing.Apply(raw, k.Duration)
}

// CursorStyle enumerates the built-in cursor glyph styles.
type CursorStyle string

const (
	CursorArrow       CursorStyle = "arrow"
	CursorPointer     CursorStyle = "pointer"
	CursorIBeam       CursorStyle = "ibeam"
	CursorCrosshair   CursorStyle = "crosshair"
	CursorOpenHand    CursorStyle = "openHand"
	CursorClosedHand  CursorStyle = "closedHand"
	CursorContextMenu CursorStyle = "contextMenu"
)

func (s CursorStyle) DisplayName() string {
	switch s {
	case CursorArrow:
		return "Arrow"
	case CursorPointer:
		return "Pointer"
	case CursorIBeam:
		return "I-Beam"
	case CursorCrosshair:
		return "Crosshair"
	case CursorOpenHand:
		return "Open Hand"
	case CursorClosedHand:
		return "Closed Hand"
	case CursorContextMenu:
		return "Context Menu"
	default:
		return string(s)
	}
}

// CursorStyleKeyframe describes a discrete cursor appearance change.
type CursorStyleKeyframe struct {
	ID                uuid.UUID
	Time              float64
	Position          *primitives.NormalizedPoint
	Style             CursorStyle
	Visible           bool
	Scale             float64
	Velocity          *float64
	MovementDirection *float64
	Easing            primitives.EasingCurve
}

// NewCursorStyleKeyframe applies the original's defaults: Arrow, scale 2.5,
// visible, snappy spring.
func NewCursorStyleKeyframe(time float64) CursorStyleKeyframe {
	return CursorStyleKeyframe{
		ID:      uuid.New(),
		Time:    time,
		Style:   CursorArrow,
		Visible: true,
		Scale:   2.5,
		Easing:  primitives.SpringSnappy(),
	}
}

// KeystrokeKeyframe describes a single on-screen key overlay.
type KeystrokeKeyframe struct {
	ID              uuid.UUID
	Time            float64
	DisplayText     string
	Duration        float64
	FadeInDuration  float64
	FadeOutDuration float64
	Position        primitives.NormalizedPoint
	Easing          primitives.EasingCurve
}

// NewKeystrokeKeyframe applies the original's defaults: duration 1.5s,
// fade-in 0.15s, fade-out 0.3s, position (0.5, 0.95), ease-out.
func NewKeystrokeKeyframe(time float64, displayText string) KeystrokeKeyframe {
	return KeystrokeKeyframe{
		ID:              uuid.New(),
		Time:            time,
		DisplayText:     displayText,
		Duration:        1.5,
		FadeInDuration:  0.15,
		FadeOutDuration: 0.3,
		Position:        primitives.NormalizedPoint{X: 0.5, Y: 0.95},
		Easing:          primitives.EaseOut(),
	}
}

func (k KeystrokeKeyframe) EndTime() float64 { return k.Time + k.Duration }

func (k KeystrokeKeyframe) IsActive(t float64) bool {
	return t >= k.Time && t <= k.EndTime()
}

// Opacity computes the fade-in/hold/fade-out piecewise opacity curve.
func (k KeystrokeKeyframe) Opacity(currentTime float64) float64 {
	if !k.IsActive(currentTime) {
		return 0.0
	}
	elapsed := currentTime - k.Time
	remaining := k.EndTime() - currentTime
	if k.FadeInDuration > 0 && elapsed < k.FadeInDuration {
		return elapsed / k.FadeInDuration
	}
	if k.FadeOutDuration > 0 && remaining < k.FadeOutDuration {
		return remaining / k.FadeOutDuration
	}
	return 1.0
}
