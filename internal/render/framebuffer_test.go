package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeOverTransparentIsNoop(t *testing.T) {
	fb := NewSolidFrameBuffer(2, 2, 10, 20, 30, 255)
	fb.CompositeOver(0, 0, 1, 2, 3, 0)
	b, g, r, a := fb.At(0, 0)
	assert.Equal(t, byte(10), b)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(30), r)
	assert.Equal(t, byte(255), a)
}

func TestCompositeOverOpaqueReplaces(t *testing.T) {
	fb := NewSolidFrameBuffer(2, 2, 10, 20, 30, 255)
	fb.CompositeOver(0, 0, 1, 2, 3, 255)
	b, g, r, a := fb.At(0, 0)
	assert.Equal(t, byte(1), b)
	assert.Equal(t, byte(2), g)
	assert.Equal(t, byte(3), r)
	assert.Equal(t, byte(255), a)
}

func TestBilinearSampleClampsEdges(t *testing.T) {
	fb := NewSolidFrameBuffer(4, 4, 5, 5, 5, 255)
	b, g, r, a := fb.BilinearSample(-10, -10)
	assert.Equal(t, byte(5), b)
	assert.Equal(t, byte(5), g)
	assert.Equal(t, byte(5), r)
	assert.Equal(t, byte(255), a)
}
