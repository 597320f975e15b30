package timeline

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// TrackType tags which kind of track an AnyTrack wraps.
type TrackType string

const (
	TrackTransform TrackType = "transform"
	TrackRipple    TrackType = "ripple"
	TrackCursor    TrackType = "cursor"
	TrackKeystroke TrackType = "keystroke"
)

// TransformTrack holds an ordered sequence of TransformKeyframe.
type TransformTrack struct {
	ID        uuid.UUID
	Name      string
	IsEnabled bool
	Keyframes []TransformKeyframe
}

func NewTransformTrack() TransformTrack {
	return TransformTrack{ID: uuid.New(), Name: "Transform", IsEnabled: true}
}

func (t *TransformTrack) AddKeyframe(k TransformKeyframe) {
	t.Keyframes = append(t.Keyframes, k)
	sort.Slice(t.Keyframes, func(i, j int) bool { return t.Keyframes[i].Time < t.Keyframes[j].Time })
}

func (t *TransformTrack) RemoveKeyframe(id uuid.UUID) {
	out := t.Keyframes[:0]
	for _, k := range t.Keyframes {
		if k.ID != id {
			out = append(out, k)
		}
	}
	t.Keyframes = out
}

func (t *TransformTrack) UpdateKeyframe(k TransformKeyframe) {
	for i, existing := range t.Keyframes {
		if existing.ID == k.ID {
			t.Keyframes[i] = k
			sort.Slice(t.Keyframes, func(a, b int) bool { return t.Keyframes[a].Time < t.Keyframes[b].Time })
			return
		}
	}
}

func (t TransformTrack) KeyframeAt(time, tolerance float64) (TransformKeyframe, bool) {
	for _, k := range t.Keyframes {
		if math.Abs(k.Time-time) <= tolerance {
			return k, true
		}
	}
	return TransformKeyframe{}, false
}

func (t TransformTrack) KeyframesInRange(start, end float64) []TransformKeyframe {
	var out []TransformKeyframe
	for _, k := range t.Keyframes {
		if k.Time >= start && k.Time <= end {
			out = append(out, k)
		}
	}
	return out
}

// RippleTrack holds an ordered sequence of RippleKeyframe.
type RippleTrack struct {
	ID        uuid.UUID
	Name      string
	IsEnabled bool
	Keyframes []RippleKeyframe
}

func NewRippleTrack() RippleTrack {
	return RippleTrack{ID: uuid.New(), Name: "Ripples", IsEnabled: true}
}

func (t *RippleTrack) AddKeyframe(k RippleKeyframe) {
	t.Keyframes = append(t.Keyframes, k)
	sort.Slice(t.Keyframes, func(i, j int) bool { return t.Keyframes[i].Time < t.Keyframes[j].Time })
}

func (t *RippleTrack) RemoveKeyframe(id uuid.UUID) {
	out := t.Keyframes[:0]
	for _, k := range t.Keyframes {
		if k.ID != id {
			out = append(out, k)
		}
	}
	t.Keyframes = out
}

func (t *RippleTrack) UpdateKeyframe(k RippleKeyframe) {
	for i, existing := range t.Keyframes {
		if existing.ID == k.ID {
			t.Keyframes[i] = k
			sort.Slice(t.Keyframes, func(a, b int) bool { return t.Keyframes[a].Time < t.Keyframes[b].Time })
			return
		}
	}
}

func (t RippleTrack) ActiveRipples(time float64) []RippleKeyframe {
	var out []RippleKeyframe
	for _, k := range t.Keyframes {
		if k.IsActive(time) {
			out = append(out, k)
		}
	}
	return out
}

// CursorTrack carries defaults plus an optional ordered sequence of discrete
// style keyframes.
type CursorTrack struct {
	ID             uuid.UUID
	Name           string
	IsEnabled      bool
	DefaultStyle   CursorStyle
	DefaultScale   float64
	DefaultVisible bool
	StyleKeyframes []CursorStyleKeyframe // nil means "no style keyframes"
}

func NewCursorTrack() CursorTrack {
	return CursorTrack{
		ID:             uuid.New(),
		Name:           "Cursor",
		IsEnabled:      true,
		DefaultStyle:   CursorArrow,
		DefaultScale:   2.5,
		DefaultVisible: true,
	}
}

func (t *CursorTrack) AddStyleKeyframe(k CursorStyleKeyframe) {
	t.StyleKeyframes = append(t.StyleKeyframes, k)
	sort.Slice(t.StyleKeyframes, func(i, j int) bool { return t.StyleKeyframes[i].Time < t.StyleKeyframes[j].Time })
}

func (t CursorTrack) KeyframeCount() int { return len(t.StyleKeyframes) }

// KeystrokeTrack holds an ordered sequence of KeystrokeKeyframe.
type KeystrokeTrack struct {
	ID        uuid.UUID
	Name      string
	IsEnabled bool
	Keyframes []KeystrokeKeyframe
}

func NewKeystrokeTrack() KeystrokeTrack {
	return KeystrokeTrack{ID: uuid.New(), Name: "Keystrokes", IsEnabled: true}
}

func (t *KeystrokeTrack) AddKeyframe(k KeystrokeKeyframe) {
	t.Keyframes = append(t.Keyframes, k)
	sort.Slice(t.Keyframes, func(i, j int) bool { return t.Keyframes[i].Time < t.Keyframes[j].Time })
}

func (t *KeystrokeTrack) RemoveKeyframe(id uuid.UUID) {
	out := t.Keyframes[:0]
	for _, k := range t.Keyframes {
		if k.ID != id {
			out = append(out, k)
		}
	}
	t.Keyframes = out
}

func (t KeystrokeTrack) ActiveKeystrokes(time float64) []KeystrokeKeyframe {
	var out []KeystrokeKeyframe
	for _, k := range t.Keyframes {
		if k.IsActive(time) {
			out = append(out, k)
		}
	}
	return out
}

// AnyTrack is a tagged union over the four track kinds, giving Timeline a
// homogeneous slice while preserving typed access via its typed pointer
// fields (set by the Wrap* constructors below) and the typed accessors on
// Timeline.
type AnyTrack struct {
	Type      TrackType
	Transform *TransformTrack
	Ripple    *RippleTrack
	Cursor    *CursorTrack
	Keystroke *KeystrokeTrack
}

func WrapTransform(t TransformTrack) AnyTrack { return AnyTrack{Type: TrackTransform, Transform: &t} }
func WrapRipple(t RippleTrack) AnyTrack       { return AnyTrack{Type: TrackRipple, Ripple: &t} }
func WrapCursor(t CursorTrack) AnyTrack       { return AnyTrack{Type: TrackCursor, Cursor: &t} }
func WrapKeystroke(t KeystrokeTrack) AnyTrack { return AnyTrack{Type: TrackKeystroke, Keystroke: &t} }

func (a AnyTrack) ID() uuid.UUID {
	switch a.Type {
	case TrackTransform:
		return a.Transform.ID
	case TrackRipple:
		return a.Ripple.ID
	case TrackCursor:
		return a.Cursor.ID
	case TrackKeystroke:
		return a.Keystroke.ID
	}
	return uuid.UUID{}
}

func (a AnyTrack) Name() string {
	switch a.Type {
	case TrackTransform:
		return a.Transform.Name
	case TrackRipple:
		return a.Ripple.Name
	case TrackCursor:
		return a.Cursor.Name
	case TrackKeystroke:
		return a.Keystroke.Name
	}
	return ""
}

func (a AnyTrack) IsEnabled() bool {
	switch a.Type {
	case TrackTransform:
		return a.Transform.IsEnabled
	case TrackRipple:
		return a.Ripple.IsEnabled
	case TrackCursor:
		return a.Cursor.IsEnabled
	case TrackKeystroke:
		return a.Keystroke.IsEnabled
	}
	return false
}

func (a AnyTrack) TrackType() TrackType { return a.Type }

func (a AnyTrack) KeyframeCount() int {
	switch a.Type {
	case TrackTransform:
		return len(a.Transform.Keyframes)
	case TrackRipple:
		return len(a.Ripple.Keyframes)
	case TrackCursor:
		return a.Cursor.KeyframeCount()
	case TrackKeystroke:
		return len(a.Keystroke.Keyframes)
	}
	return 0
}

type anyTrackWire struct {
	Type TrackType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (a AnyTrack) MarshalJSON() ([]byte, error) {
	var data interface{}
	switch a.Type {
	case TrackTransform:
		data = a.Transform
	case TrackRipple:
		data = a.Ripple
	case TrackCursor:
		data = a.Cursor
	case TrackKeystroke:
		data = a.Keystroke
	default:
		return nil, fmt.Errorf("timeline: unknown track type %q", a.Type)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(anyTrackWire{Type: a.Type, Data: raw})
}

func (a *AnyTrack) UnmarshalJSON(b []byte) error {
	var w anyTrackWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	switch w.Type {
	case TrackTransform:
		var t TransformTrack
		if err := json.Unmarshal(w.Data, &t); err != nil {
			return err
		}
		*a = WrapTransform(t)
	case TrackRipple:
		var t RippleTrack
		if err := json.Unmarshal(w.Data, &t); err != nil {
			return err
		}
		*a = WrapRipple(t)
	case TrackCursor:
		var t CursorTrack
		if err := json.Unmarshal(w.Data, &t); err != nil {
			return err
		}
		*a = WrapCursor(t)
	case TrackKeystroke:
		var t KeystrokeTrack
		if err := json.Unmarshal(w.Data, &t); err != nil {
			return err
		}
		*a = WrapKeystroke(t)
	default:
		return fmt.Errorf("timeline: unknown track type %q", w.Type)
	}
	return nil
}
