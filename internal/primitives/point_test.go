package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampCenterIdentityBelowOne(t *testing.T) {
	p := NormalizedPoint{X: 0.1, Y: 0.9}
	assert.Equal(t, p, ClampCenter(p, 1.0))
}

func TestClampCenterZoomed(t *testing.T) {
	c := ClampCenter(NormalizedPoint{X: 0.0, Y: 1.0}, 2.0)
	assert.InDelta(t, 0.25, c.X, 1e-9)
	assert.InDelta(t, 0.75, c.Y, 1e-9)
}

func TestCoordinateConverterZeroDimensionGuard(t *testing.T) {
	c := CoordinateConverter{}
	got := c.CapturePixelToNormalized(CapturePixelPoint{X: 10, Y: 10})
	assert.Equal(t, Center, got)
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	pts := []NormalizedPoint{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.1}, {X: 0.2, Y: 0.4}}
	bb := BoundingBoxOf(pts)
	assert.InDelta(t, 0.1, bb.MinX, 1e-9)
	assert.InDelta(t, 0.4, bb.MaxY, 1e-9)
	c := Centroid(pts)
	assert.InDelta(t, 0.2, c.X, 1e-9)
}
