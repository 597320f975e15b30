package timeline

import "github.com/google/uuid"

// Timeline contains multiple tracks and the trim window applied over them.
type Timeline struct {
	Tracks    []AnyTrack
	Duration  float64
	TrimStart float64
	TrimEnd   *float64 // nil uses Duration
}

// New builds an empty timeline of the given duration.
func New(duration float64) Timeline {
	return Timeline{Duration: duration}
}

// WithDefaultTracks builds a timeline pre-populated with one of each track
// kind, in Transform/Ripple/Cursor/Keystroke order.
func WithDefaultTracks(duration float64) Timeline {
	return Timeline{
		Tracks: []AnyTrack{
			WrapTransform(NewTransformTrack()),
			WrapRipple(NewRippleTrack()),
			WrapCursor(NewCursorTrack()),
			WrapKeystroke(NewKeystrokeTrack()),
		},
		Duration: duration,
	}
}

func (t Timeline) EffectiveTrimStart() float64 {
	return clamp(t.TrimStart, 0, t.Duration)
}

func (t Timeline) EffectiveTrimEnd() float64 {
	if t.TrimEnd == nil {
		return t.Duration
	}
	end := *t.TrimEnd
	if end > t.Duration {
		return t.Duration
	}
	return end
}

func (t Timeline) TrimmedDuration() float64 {
	d := t.EffectiveTrimEnd() - t.EffectiveTrimStart()
	if d < 0 {
		return 0
	}
	return d
}

func (t Timeline) IsTrimmed() bool {
	return t.EffectiveTrimStart() > 0 || t.EffectiveTrimEnd() < t.Duration
}

func (t Timeline) IsTimeInTrimRange(time float64) bool {
	return time >= t.EffectiveTrimStart() && time <= t.EffectiveTrimEnd()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t Timeline) TransformTrack() (*TransformTrack, bool) {
	for i := range t.Tracks {
		if t.Tracks[i].Type == TrackTransform {
			return t.Tracks[i].Transform, true
		}
	}
	return nil, false
}

func (t Timeline) RippleTrack() (*RippleTrack, bool) {
	for i := range t.Tracks {
		if t.Tracks[i].Type == TrackRipple {
			return t.Tracks[i].Ripple, true
		}
	}
	return nil, false
}

func (t Timeline) CursorTrack() (*CursorTrack, bool) {
	for i := range t.Tracks {
		if t.Tracks[i].Type == TrackCursor {
			return t.Tracks[i].Cursor, true
		}
	}
	return nil, false
}

func (t Timeline) KeystrokeTrack() (*KeystrokeTrack, bool) {
	for i := range t.Tracks {
		if t.Tracks[i].Type == TrackKeystroke {
			return t.Tracks[i].Keystroke, true
		}
	}
	return nil, false
}

func (t *Timeline) AddTrack(track AnyTrack) {
	t.Tracks = append(t.Tracks, track)
}

func (t *Timeline) RemoveTrack(id uuid.UUID) {
	out := t.Tracks[:0]
	for _, tr := range t.Tracks {
		if tr.ID() != id {
			out = append(out, tr)
		}
	}
	t.Tracks = out
}

func (t Timeline) Track(id uuid.UUID) (AnyTrack, bool) {
	for _, tr := range t.Tracks {
		if tr.ID() == id {
			return tr, true
		}
	}
	return AnyTrack{}, false
}

func (t *Timeline) UpdateTrack(track AnyTrack) {
	for i, tr := range t.Tracks {
		if tr.ID() == track.ID() {
			t.Tracks[i] = track
			return
		}
	}
}

func (t Timeline) TotalKeyframeCount() int {
	n := 0
	for _, tr := range t.Tracks {
		n += tr.KeyframeCount()
	}
	return n
}

func (t Timeline) IsEmpty() bool { return t.TotalKeyframeCount() == 0 }

func (t Timeline) IsValid() bool { return t.Duration > 0 }
