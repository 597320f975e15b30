package timeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opariffazman/lazyrec/internal/primitives"
)

func nowPoint() primitives.NormalizedPoint { return primitives.Center }
func nowEasing() primitives.EasingCurve    { return primitives.Linear() }

func TestWithDefaultTracks(t *testing.T) {
	tl := WithDefaultTracks(30.0)
	assert.Len(t, tl.Tracks, 4)
	assert.Equal(t, TrackTransform, tl.Tracks[0].TrackType())
	assert.Equal(t, TrackRipple, tl.Tracks[1].TrackType())
	assert.Equal(t, TrackCursor, tl.Tracks[2].TrackType())
	assert.Equal(t, TrackKeystroke, tl.Tracks[3].TrackType())
}

func TestEffectiveTrimClamped(t *testing.T) {
	tl := New(10.0)
	tl.TrimStart = -5.0
	assert.Equal(t, 0.0, tl.EffectiveTrimStart())
	tl.TrimStart = 15.0
	assert.Equal(t, 10.0, tl.EffectiveTrimStart())
}

func TestTrimmedDuration(t *testing.T) {
	tl := New(10.0)
	end := 8.0
	tl.TrimStart = 2.0
	tl.TrimEnd = &end
	assert.Equal(t, 6.0, tl.TrimmedDuration())
}

func TestAddAndRemoveTrack(t *testing.T) {
	tl := New(10.0)
	track := NewTransformTrack()
	id := track.ID
	tl.AddTrack(WrapTransform(track))
	assert.Len(t, tl.Tracks, 1)
	tl.RemoveTrack(id)
	assert.Empty(t, tl.Tracks)
}

func TestTrackByID(t *testing.T) {
	tl := New(10.0)
	track := NewRippleTrack()
	id := track.ID
	tl.AddTrack(WrapRipple(track))
	_, ok := tl.Track(id)
	assert.True(t, ok)
	_, ok = tl.Track(uuid.New())
	assert.False(t, ok)
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(10.0).IsValid())
	assert.False(t, New(0.0).IsValid())
	assert.False(t, New(-1.0).IsValid())
}

func TestKeyframeOrderingInvariant(t *testing.T) {
	track := NewTransformTrack()
	track.AddKeyframe(NewTransformKeyframe(2.0, 1.0, nowPoint(), nowEasing()))
	track.AddKeyframe(NewTransformKeyframe(1.0, 1.0, nowPoint(), nowEasing()))
	track.AddKeyframe(NewTransformKeyframe(1.5, 1.0, nowPoint(), nowEasing()))
	for i := 1; i < len(track.Keyframes); i++ {
		assert.GreaterOrEqual(t, track.Keyframes[i].Time, track.Keyframes[i-1].Time)
	}
}
