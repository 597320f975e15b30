// Package media adapts github.com/AlexEidt/Vidio into the decoder/encoder
// contracts the export and recording packages depend on (spec.md §6).
package media

import (
	"context"
	"fmt"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/opariffazman/lazyrec/internal/logging"
	"github.com/opariffazman/lazyrec/internal/recording"
	"github.com/opariffazman/lazyrec/internal/render"
)

var logger = logging.Named("media")

// Error wraps a decode/encode failure with the file it was operating on.
type Error struct {
	Path  string
	Op    string
	Cause error
}

func (e *Error) Error() string { return fmt.Sprintf("media: %s %q: %v", e.Op, e.Path, e.Cause) }
func (e *Error) Unwrap() error { return e.Cause }

// Source decodes a video file sequentially, satisfying export.VideoSource.
// Vidio's reader is forward-only, so ReadFrame must be called with
// monotonically increasing t; out-of-order requests return the most
// recently decoded frame instead of seeking.
type Source struct {
	path      string
	video     *vidio.Video
	current   *render.FrameBuffer
	lastIndex int
}

// NewSource opens path for sequential decode.
func NewSource(path string) (*Source, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return nil, &Error{Path: path, Op: "open", Cause: err}
	}
	logger.Debug().Str("path", path).Int("width", v.Width()).Int("height", v.Height()).Msg("opened video source")
	return &Source{path: path, video: v, lastIndex: -1}, nil
}

func (s *Source) TotalFrames() int   { return s.video.Frames() }
func (s *Source) FrameRate() float64 { return s.video.FPS() }
func (s *Source) Duration() float64  { return s.video.Duration() }

// ReadFrame advances the decoder until the frame covering time t is current,
// converting Vidio's RGBA buffer into our BGRA FrameBuffer.
func (s *Source) ReadFrame(ctx context.Context, t float64) (*render.FrameBuffer, error) {
	targetIndex := int(t * s.video.FPS())
	for s.lastIndex < targetIndex {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !s.video.Read() {
			if s.current != nil {
				return s.current, nil
			}
			return nil, &Error{Path: s.path, Op: "read", Cause: fmt.Errorf("no frames decoded")}
		}
		s.lastIndex++
		s.current = rgbaToFrameBuffer(s.video.FrameBuffer(), s.video.Width(), s.video.Height())
	}
	return s.current, nil
}

// Close releases the underlying decoder.
func (s *Source) Close() error {
	s.video.Close()
	return nil
}

func rgbaToFrameBuffer(rgba []byte, width, height int) *render.FrameBuffer {
	fb := render.NewFrameBuffer(width, height)
	n := width * height
	for i := 0; i < n; i++ {
		r := rgba[i*4]
		g := rgba[i*4+1]
		b := rgba[i*4+2]
		a := rgba[i*4+3]
		fb.Pix[i*4] = b
		fb.Pix[i*4+1] = g
		fb.Pix[i*4+2] = r
		fb.Pix[i*4+3] = a
	}
	return fb
}

func frameBufferToRGBA(fb *render.FrameBuffer) []byte {
	out := make([]byte, fb.Width*fb.Height*4)
	n := fb.Width * fb.Height
	for i := 0; i < n; i++ {
		b := fb.Pix[i*4]
		g := fb.Pix[i*4+1]
		r := fb.Pix[i*4+2]
		a := fb.Pix[i*4+3]
		out[i*4] = r
		out[i*4+1] = g
		out[i*4+2] = b
		out[i*4+3] = a
	}
	return out
}

// Config configures an output encoder.
type Config struct {
	Width, Height int
	FPS           float64
	BitRate       int64
}

// Encoder writes frames via Vidio's writer, satisfying export.Encoder.
// LiveEncoder below wraps it to satisfy recording.VideoEncoder.
type Encoder struct {
	path   string
	cfg    Config
	writer *vidio.VideoWriter
}

// NewEncoder builds an encoder; Start() opens the underlying writer.
func NewEncoder(path string, cfg Config) *Encoder {
	return &Encoder{path: path, cfg: cfg}
}

func (e *Encoder) Start() error {
	writer, err := vidio.NewVideoWriter(e.path, e.cfg.Width, e.cfg.Height, &vidio.Options{
		FPS:     e.cfg.FPS,
		Bitrate: int(e.cfg.BitRate),
	})
	if err != nil {
		return &Error{Path: e.path, Op: "open-writer", Cause: err}
	}
	e.writer = writer
	return nil
}

// AppendFrame satisfies export.Encoder: writes a rendered BGRA frame.
func (e *Encoder) AppendFrame(frame *render.FrameBuffer, ptsSeconds float64) error {
	if err := e.writer.Write(frameBufferToRGBA(frame)); err != nil {
		return &Error{Path: e.path, Op: "write", Cause: err}
	}
	return nil
}

func (e *Encoder) Finish() (string, error) {
	e.writer.Close()
	return e.path, nil
}

// LiveEncoder adapts Encoder to recording.VideoEncoder, writing raw
// CapturedFrame buffers (already RGBA off the capture backend) straight to
// the Vidio writer with no render-pipeline pass.
type LiveEncoder struct {
	*Encoder
	framesWritten int
}

// NewLiveEncoder builds a recording-time encoder.
func NewLiveEncoder(path string, cfg Config) *LiveEncoder {
	return &LiveEncoder{Encoder: NewEncoder(path, cfg)}
}

func (e *LiveEncoder) AppendFrame(frame recording.CapturedFrame) error {
	if err := e.writer.Write(frame.Data); err != nil {
		return &Error{Path: e.path, Op: "write", Cause: err}
	}
	e.framesWritten++
	return nil
}

func (e *LiveEncoder) Finish() (int, error) {
	if _, err := e.Encoder.Finish(); err != nil {
		return e.framesWritten, err
	}
	return e.framesWritten, nil
}
