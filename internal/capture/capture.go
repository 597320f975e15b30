// Package capture implements the screen-capture producer side of a
// recording: a ticker-driven loop pulling frames from the OS and handing
// them to a per-frame callback (spec.md §6).
package capture

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/opariffazman/lazyrec/internal/logging"
	"github.com/opariffazman/lazyrec/internal/recording"
)

// PixelFormat names the frame's pixel layout.
type PixelFormat string

const (
	PixelFormatRGBA PixelFormat = "rgba"
	PixelFormatBGRA PixelFormat = "bgra"
)

// Config selects what to capture and at what rate.
type Config struct {
	Target    recording.CaptureTarget
	TargetFPS int
}

// Error wraps a capture-backend failure with the display/window it was
// attempting to read from.
type Error struct {
	Target recording.CaptureTarget
	Op     string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture: %s on target %q: %v", e.Op, e.Target.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// ScreenCapture is the producer contract a recording coordinator drives.
type ScreenCapture interface {
	StartCapture(target recording.CaptureTarget, onFrame func(recording.CapturedFrame)) error
	StopCapture() error
}

var logger = logging.Named("capture")

// ScreenshotCapture implements ScreenCapture atop github.com/kbinani/screenshot,
// grounded on the teacher's ticker-driven capture loop (timing.go).
type ScreenshotCapture struct {
	fps int

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewScreenshotCapture builds a capture backend targeting fps frames/sec.
// fps <= 0 defaults to 30, matching the teacher's targetFPS.
func NewScreenshotCapture(fps int) *ScreenshotCapture {
	if fps <= 0 {
		fps = 30
	}
	return &ScreenshotCapture{fps: fps}
}

func (s *ScreenshotCapture) StartCapture(target recording.CaptureTarget, onFrame func(recording.CapturedFrame)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return &Error{Target: target, Op: "start", Cause: fmt.Errorf("already running")}
	}

	bounds, err := boundsForTarget(target)
	if err != nil {
		return &Error{Target: target, Op: "start", Cause: err}
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	go s.captureLoop(bounds, onFrame)
	return nil
}

func (s *ScreenshotCapture) captureLoop(bounds image.Rectangle, onFrame func(recording.CapturedFrame)) {
	defer close(s.done)

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			img, err := screenshot.CaptureRect(bounds)
			if err != nil {
				logger.Warn().Err(err).Msg("capture frame dropped")
				continue
			}
			onFrame(recording.CapturedFrame{
				Data:      img.Pix,
				Width:     img.Rect.Dx(),
				Height:    img.Rect.Dy(),
				Stride:    img.Stride,
				Timestamp: time.Since(start).Seconds(),
			})
		}
	}
}

func (s *ScreenshotCapture) StopCapture() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	close(s.stop)
	done := s.done
	s.running = false
	s.mu.Unlock()

	<-done
	return nil
}

func boundsForTarget(target recording.CaptureTarget) (image.Rectangle, error) {
	switch target.Kind {
	case "region":
		return image.Rect(int(target.X), int(target.Y), int(target.X+target.W), int(target.Y+target.H)), nil
	case "display", "":
		n := screenshot.NumActiveDisplays()
		idx := int(target.DisplayID)
		if idx < 0 || idx >= n {
			idx = 0
		}
		return screenshot.GetDisplayBounds(idx), nil
	default:
		return image.Rectangle{}, fmt.Errorf("capture target kind %q not supported on this backend", target.Kind)
	}
}

// DisplayCount reports the number of active displays, used by callers
// building a CaptureTarget selection list.
func DisplayCount() int { return screenshot.NumActiveDisplays() }

// DisplayBounds returns a display's bounds in screen points.
func DisplayBounds(index int) image.Rectangle { return screenshot.GetDisplayBounds(index) }
