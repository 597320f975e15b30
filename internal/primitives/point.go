// Package primitives holds the small value types shared by every other
// lazyrec package: normalized coordinates, coordinate conversion, and
// easing curves.
package primitives

import "math"

// NormalizedPoint is a point in [0,1]x[0,1], top-left origin.
type NormalizedPoint struct {
	X float64
	Y float64
}

// Zero and Center are the two normalized points used as defaults throughout
// the timeline/evaluator packages.
var (
	Zero   = NormalizedPoint{X: 0, Y: 0}
	Center = NormalizedPoint{X: 0.5, Y: 0.5}
)

// Clamped returns p with both components clamped to [0,1].
func (p NormalizedPoint) Clamped() NormalizedPoint {
	return NormalizedPoint{X: clamp01(p.X), Y: clamp01(p.Y)}
}

// Distance returns the Euclidean distance between p and o.
func (p NormalizedPoint) Distance(o NormalizedPoint) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Interpolated performs linear interpolation from p to o at parameter t.
func (p NormalizedPoint) Interpolated(o NormalizedPoint, t float64) NormalizedPoint {
	return NormalizedPoint{
		X: p.X + (o.X-p.X)*t,
		Y: p.Y + (o.Y-p.Y)*t,
	}
}

// Scaled multiplies both components by s.
func (p NormalizedPoint) Scaled(s float64) NormalizedPoint {
	return NormalizedPoint{X: p.X * s, Y: p.Y * s}
}

// Add returns the component-wise sum of p and o.
func (p NormalizedPoint) Add(o NormalizedPoint) NormalizedPoint {
	return NormalizedPoint{X: p.X + o.X, Y: p.Y + o.Y}
}

// HashKey returns a bit-exact, total-ordered representation suitable for use
// as a map key, mirroring the original's `to_bits()`-based Hash impl.
func (p NormalizedPoint) HashKey() [2]uint64 {
	return [2]uint64{math.Float64bits(p.X), math.Float64bits(p.Y)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BoundingBox is an axis-aligned box in normalized space.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width and Height of the box.
func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the box's midpoint.
func (b BoundingBox) Center() NormalizedPoint {
	return NormalizedPoint{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Padded expands the box by pad on every side, clamping to [0,1]^2.
func (b BoundingBox) Padded(pad float64) BoundingBox {
	return BoundingBox{
		MinX: clamp01(b.MinX - pad),
		MinY: clamp01(b.MinY - pad),
		MaxX: clamp01(b.MaxX + pad),
		MaxY: clamp01(b.MaxY + pad),
	}
}

// BoundingBoxOf computes the bounding box of a non-empty set of points.
// Callers must ensure points is non-empty.
func BoundingBoxOf(points []NormalizedPoint) BoundingBox {
	b := BoundingBox{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Centroid returns the mean of a non-empty set of points.
func Centroid(points []NormalizedPoint) NormalizedPoint {
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return NormalizedPoint{X: sx / n, Y: sy / n}
}

// ViewportBounds returns the visible region of source space when zoomed in
// on center at the given zoom factor.
func ViewportBounds(zoom float64, center NormalizedPoint) BoundingBox {
	if zoom < 1e-3 {
		zoom = 1e-3
	}
	halfW := 0.5 / zoom
	halfH := 0.5 / zoom
	return BoundingBox{
		MinX: center.X - halfW,
		MinY: center.Y - halfH,
		MaxX: center.X + halfW,
		MaxY: center.Y + halfH,
	}
}

// IsOutsideViewport reports whether p lies outside the viewport defined by
// zoom/center.
func IsOutsideViewport(p NormalizedPoint, zoom float64, center NormalizedPoint) bool {
	vb := ViewportBounds(zoom, center)
	return p.X < vb.MinX || p.X > vb.MaxX || p.Y < vb.MinY || p.Y > vb.MaxY
}

// CenterToIncludeInViewport nudges center so that p falls inside the
// viewport at the given zoom, moving by the minimal amount necessary.
func CenterToIncludeInViewport(p NormalizedPoint, zoom float64, center NormalizedPoint) NormalizedPoint {
	if !IsOutsideViewport(p, zoom, center) {
		return center
	}
	vb := ViewportBounds(zoom, center)
	nc := center
	if p.X < vb.MinX {
		nc.X = center.X - (vb.MinX - p.X)
	} else if p.X > vb.MaxX {
		nc.X = center.X + (p.X - vb.MaxX)
	}
	if p.Y < vb.MinY {
		nc.Y = center.Y - (vb.MinY - p.Y)
	} else if p.Y > vb.MaxY {
		nc.Y = center.Y + (p.Y - vb.MaxY)
	}
	return ClampCenter(nc, zoom)
}

// ClampCenter clamps center so the viewport at the given zoom never leaves
// [0,1]^2, per spec.md invariant 4 / §4.C.
func ClampCenter(center NormalizedPoint, zoom float64) NormalizedPoint {
	if zoom <= 1.0 {
		return center
	}
	halfCrop := 0.5 / zoom
	lo := halfCrop
	hi := 1 - halfCrop
	return NormalizedPoint{
		X: clampRange(center.X, lo, hi),
		Y: clampRange(center.Y, lo, hi),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
