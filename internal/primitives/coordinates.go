package primitives

// CapturePixelPoint is a pixel coordinate within the raw captured frame.
type CapturePixelPoint struct {
	X, Y float64
}

// ScreenPoint is a coordinate in platform screen-point space (pre scale
// factor), as delivered by OS input APIs.
type ScreenPoint struct {
	X, Y float64
}

// CoordinateConverter maps between screen points, capture pixels, and
// normalized [0,1]^2 coordinates for one capture session.
type CoordinateConverter struct {
	CaptureBoundsX float64
	CaptureBoundsY float64
	CaptureWidth   float64
	CaptureHeight  float64
	ScaleFactor    float64
}

// ScreenToCapturePixel subtracts the capture origin to produce a pixel
// coordinate within the captured frame. The scale factor maps platform
// screen points to physical pixels on HiDPI displays, but capture origin
// and capture frame are already both in the same (physical pixel) space by
// the time a CoordinateConverter is built, so no multiply happens here.
func (c CoordinateConverter) ScreenToCapturePixel(p ScreenPoint) CapturePixelPoint {
	return CapturePixelPoint{
		X: p.X - c.CaptureBoundsX,
		Y: p.Y - c.CaptureBoundsY,
	}
}

// CapturePixelToNormalized divides by the capture size; guards against a
// zero-area capture by returning Center.
func (c CoordinateConverter) CapturePixelToNormalized(p CapturePixelPoint) NormalizedPoint {
	if c.CaptureWidth <= 0 || c.CaptureHeight <= 0 {
		return Center
	}
	return NormalizedPoint{X: p.X / c.CaptureWidth, Y: p.Y / c.CaptureHeight}.Clamped()
}

// ScreenToNormalized composes ScreenToCapturePixel and CapturePixelToNormalized.
func (c CoordinateConverter) ScreenToNormalized(p ScreenPoint) NormalizedPoint {
	return c.CapturePixelToNormalized(c.ScreenToCapturePixel(p))
}

// NormalizedToCapturePixel is the inverse of CapturePixelToNormalized.
func (c CoordinateConverter) NormalizedToCapturePixel(p NormalizedPoint) CapturePixelPoint {
	return CapturePixelPoint{X: p.X * c.CaptureWidth, Y: p.Y * c.CaptureHeight}
}

// NormalizedToVideoPixel maps a normalized point onto a video frame of the
// given pixel dimensions. Static helper: doesn't depend on converter state.
func NormalizedToVideoPixel(p NormalizedPoint, width, height int) (x, y float64) {
	return p.X * float64(width), p.Y * float64(height)
}

// NormalizedToPixel is an alias kept for parity with the original's naming
// (used by generic image-space callers that don't distinguish "video" frames
// from other raster targets).
func NormalizedToPixel(p NormalizedPoint, width, height float64) (x, y float64) {
	return p.X * width, p.Y * height
}

// PixelToNormalized is the inverse of NormalizedToPixel; guards against a
// zero-area target by returning Center.
func PixelToNormalized(x, y, width, height float64) NormalizedPoint {
	if width <= 0 || height <= 0 {
		return Center
	}
	return NormalizedPoint{X: x / width, Y: y / height}.Clamped()
}
