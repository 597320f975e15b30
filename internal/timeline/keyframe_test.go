package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorStyleDisplayName(t *testing.T) {
	assert.Equal(t, "Arrow", CursorArrow.DisplayName())
	assert.Equal(t, "Pointer", CursorPointer.DisplayName())
	assert.Equal(t, "I-Beam", CursorIBeam.DisplayName())
}

func TestKeystrokeKeyframeOpacity(t *testing.T) {
	k := NewKeystrokeKeyframe(1.0, "A")
	assert.Equal(t, 0.0, k.Opacity(k.Time))
	assert.InDelta(t, 1.0, k.Opacity(k.Time+k.Duration/2), 1e-10)
	assert.False(t, k.IsActive(k.EndTime()+1))
	assert.Equal(t, 0.0, k.Opacity(k.EndTime()+1))
}
