package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opariffazman/lazyrec/internal/recording"
)

func TestBoundsForTargetRegion(t *testing.T) {
	bounds, err := boundsForTarget(recording.CaptureTarget{Kind: "region", X: 10, Y: 20, W: 100, H: 50})
	require.NoError(t, err)
	assert.Equal(t, 10, bounds.Min.X)
	assert.Equal(t, 20, bounds.Min.Y)
	assert.Equal(t, 110, bounds.Max.X)
	assert.Equal(t, 70, bounds.Max.Y)
}

func TestBoundsForTargetUnsupportedKind(t *testing.T) {
	_, err := boundsForTarget(recording.CaptureTarget{Kind: "window"})
	assert.Error(t, err)
}

func TestNewScreenshotCaptureDefaultsFPS(t *testing.T) {
	c := NewScreenshotCapture(0)
	assert.Equal(t, 30, c.fps)
}

func TestStopCaptureWithoutStartIsNoop(t *testing.T) {
	c := NewScreenshotCapture(30)
	assert.NoError(t, c.StopCapture())
}
