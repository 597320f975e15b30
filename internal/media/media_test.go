package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opariffazman/lazyrec/internal/render"
)

func TestRGBAToFrameBufferSwapsChannels(t *testing.T) {
	rgba := []byte{10, 20, 30, 255}
	fb := rgbaToFrameBuffer(rgba, 1, 1)
	b, g, r, a := fb.At(0, 0)
	assert.Equal(t, byte(30), b)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(10), r)
	assert.Equal(t, byte(255), a)
}

func TestFrameBufferToRGBARoundTrips(t *testing.T) {
	fb := render.NewFrameBuffer(1, 1)
	fb.Set(0, 0, 30, 20, 10, 255)
	rgba := frameBufferToRGBA(fb)
	assert.Equal(t, []byte{10, 20, 30, 255}, rgba)

	back := rgbaToFrameBuffer(rgba, 1, 1)
	b, g, r, a := back.At(0, 0)
	assert.Equal(t, byte(30), b)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(10), r)
	assert.Equal(t, byte(255), a)
}
