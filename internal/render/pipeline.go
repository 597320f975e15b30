package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/opariffazman/lazyrec/internal/evaluator"
	"github.com/opariffazman/lazyrec/internal/primitives"
)

// Settings carries the renderer's per-export configuration (resolved from
// project.RenderSettings by the export engine).
type Settings struct {
	SourceWidth, SourceHeight int
	OutputWidth, OutputHeight int
	WindowMode                bool
}

// Renderer implements the spec's five-stage per-frame composition: ripples,
// cursor, transform crop/zoom, keystroke overlay.
type Renderer struct {
	Settings Settings
}

// RenderFrame composes one output frame from a source frame and an
// evaluated animation state.
func (r Renderer) RenderFrame(source *FrameBuffer, state evaluator.EvaluatedFrameState) *FrameBuffer {
	working := source
	if len(state.Ripples) > 0 || state.Cursor.Visible {
		working = source.Clone()
		r.drawRipples(working, state.Ripples)
		r.drawCursor(working, state.Cursor)
	}

	transformed := r.applyTransform(working, state.Transform)
	r.drawKeystrokes(transformed, state.Keystrokes)
	return transformed
}

func (r Renderer) drawRipples(fb *FrameBuffer, ripples []evaluator.ActiveRipple) {
	baseRadius := 80.0 * (float64(fb.Width) / 1920.0)
	for _, rp := range ripples {
		cx, cy := primitives.NormalizedToVideoPixel(rp.Position, fb.Width, fb.Height)
		radius := baseRadius * rp.ProgressEased
		ringWidth := radius * 0.15
		if radius <= 0 {
			continue
		}
		opacity := (1 - rp.ProgressEased) * rp.Intensity

		minX := clampi(int(cx-radius-ringWidth), fb.Width)
		maxX := clampi(int(cx+radius+ringWidth), fb.Width)
		minY := clampi(int(cy-radius-ringWidth), fb.Height)
		maxY := clampi(int(cy+radius+ringWidth), fb.Height)

		rB := byte(clampByte(rp.Color.R * 255))
		gB := byte(clampByte(rp.Color.G * 255))
		bB := byte(clampByte(rp.Color.B * 255))

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				d := math.Hypot(float64(x)-cx, float64(y)-cy)
				dist := math.Abs(d - radius)
				if dist > ringWidth {
					continue
				}
				edge := smoothstep(0, ringWidth, ringWidth-dist)
				a := clampByte(opacity * edge * 255)
				fb.CompositeOver(x, y, bB, gB, rB, a)
			}
		}
	}
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		return 0
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func (r Renderer) drawCursor(fb *FrameBuffer, cursor evaluator.CursorState) {
	if !cursor.Visible {
		return
	}
	cx, cy := primitives.NormalizedToVideoPixel(cursor.Position, fb.Width, fb.Height)
	radius := math.Max(6*cursor.Scale, 2)
	outline := 1.5

	minX := clampi(int(cx-radius-outline), fb.Width)
	maxX := clampi(int(cx+radius+outline), fb.Width)
	minY := clampi(int(cy-radius-outline), fb.Height)
	maxY := clampi(int(cy+radius+outline), fb.Height)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case d <= radius-1:
				fb.CompositeOver(x, y, 255, 255, 255, 255)
			case d <= radius:
				edge := 1 - (d - (radius - 1))
				fb.CompositeOver(x, y, 255, 255, 255, clampByte(edge*255))
			case d <= radius+outline:
				fb.CompositeOver(x, y, 0, 0, 0, 255)
			}
		}
	}
}

// applyTransform implements the crop+scale stage: identity shortcut,
// nearest-neighbor for small zoom, bilinear otherwise.
func (r Renderer) applyTransform(source *FrameBuffer, t evaluator.TransformState) *FrameBuffer {
	sameSize := source.Width == r.Settings.OutputWidth && source.Height == r.Settings.OutputHeight
	if t.Zoom <= 1.001 && sameSize {
		return source.Clone()
	}
	if t.Zoom <= 1.001 && !sameSize {
		// No crop needed, only a resolution change: delegate to
		// golang.org/x/image/draw's high-quality scaler instead of the
		// crop-aware bilinear sampler below.
		return resizeWithXImage(source, r.Settings.OutputWidth, r.Settings.OutputHeight)
	}

	cropW := float64(source.Width) / t.Zoom
	cropH := float64(source.Height) / t.Zoom
	originX := t.Center.X*float64(source.Width) - cropW/2
	originY := t.Center.Y*float64(source.Height) - cropH/2

	out := NewFrameBuffer(r.Settings.OutputWidth, r.Settings.OutputHeight)
	scaleX := cropW / float64(r.Settings.OutputWidth)
	scaleY := cropH / float64(r.Settings.OutputHeight)

	nearest := t.Zoom < 1.5
	for oy := 0; oy < out.Height; oy++ {
		for ox := 0; ox < out.Width; ox++ {
			sx := originX + (float64(ox)+0.5)*scaleX
			sy := originY + (float64(oy)+0.5)*scaleY
			var b, g, rr, a byte
			if nearest {
				b, g, rr, a = source.NearestSample(float32(sx), float32(sy))
			} else {
				b, g, rr, a = source.BilinearSample(float32(sx), float32(sy))
			}
			out.Set(ox, oy, b, g, rr, a)
		}
	}
	return out
}

// resizeWithXImage converts the BGRA buffer to an image.RGBA, scales it with
// draw.BiLinear, and converts back.
func resizeWithXImage(source *FrameBuffer, outW, outH int) *FrameBuffer {
	src := image.NewRGBA(image.Rect(0, 0, source.Width, source.Height))
	for y := 0; y < source.Height; y++ {
		for x := 0; x < source.Width; x++ {
			b, g, rr, a := source.At(x, y)
			src.SetRGBA(x, y, color.RGBA{R: rr, G: g, B: b, A: a})
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := NewFrameBuffer(outW, outH)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			c := dst.RGBAAt(x, y)
			out.Set(x, y, c.B, c.G, c.R, c.A)
		}
	}
	return out
}

func (r Renderer) drawKeystrokes(fb *FrameBuffer, keystrokes []evaluator.ActiveKeystroke) {
	for _, k := range keystrokes {
		if k.Opacity <= 0 {
			continue
		}
		drawKeystrokePill(fb, k)
	}
}

// drawKeystrokePill renders a rounded-rectangle "pill" with block glyphs, per
// spec.md §4.E (block glyphs are acceptable in this spec).
func drawKeystrokePill(fb *FrameBuffer, k evaluator.ActiveKeystroke) {
	cx, cy := primitives.NormalizedToVideoPixel(k.Position, fb.Width, fb.Height)
	charH := float64(fb.Height) * 0.03
	charW := charH * 0.6
	pillH := charH
	pillW := math.Min(float64(len(k.DisplayText))*charW+charH, 0.8*float64(fb.Width))

	left := cx - pillW/2
	top := cy - pillH/2
	bgAlpha := clampByte(0.75 * k.Opacity * 255)

	minX := clampi(int(left), fb.Width)
	maxX := clampi(int(left+pillW), fb.Width)
	minY := clampi(int(top), fb.Height)
	maxY := clampi(int(top+pillH), fb.Height)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			fb.CompositeOver(x, y, 20, 20, 20, bgAlpha)
		}
	}

	glyphAlpha := clampByte(k.Opacity * 255)
	textLeft := left + charH/2
	for i := range k.DisplayText {
		gx0 := clampi(int(textLeft+float64(i)*charW), fb.Width)
		gx1 := clampi(int(textLeft+float64(i)*charW+charW*0.7), fb.Width)
		gy0 := clampi(int(top+pillH*0.2), fb.Height)
		gy1 := clampi(int(top+pillH*0.8), fb.Height)
		for y := gy0; y <= gy1; y++ {
			for x := gx0; x <= gx1; x++ {
				fb.CompositeOver(x, y, 255, 255, 255, glyphAlpha)
			}
		}
	}
}
