package recording

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opariffazman/lazyrec/internal/logging"
)

// CaptureTarget selects what region of the screen to capture.
type CaptureTarget struct {
	Kind       string // "display", "window", "region"
	DisplayID  uint32
	WindowID   uint64
	Title      string
	X, Y, W, H float64
}

// CaptureBackend is the minimal producer-side contract the coordinator
// needs (spec.md §6's capture contract, trimmed to what the FSM drives).
type CaptureBackend interface {
	StartCapture(target CaptureTarget, onFrame func(CapturedFrame)) error
	StopCapture() error
}

// InputMonitorBackend is the input contract (spec.md §6).
type InputMonitorBackend interface {
	StartMonitoring() error
	StopMonitoring() (InputRecording, error)
}

// InputRecording is the monitor's accumulated result, detailed enough for
// the generators package to consume (see internal/generators.MouseData,
// which the coordinator's caller adapts this into).
type InputRecording struct {
	Positions []TimedPosition
	Clicks    []TimedClick
	Keyboard  []TimedKey
}

type TimedPosition struct {
	Time float64
	X, Y float64
}

type TimedClick struct {
	Time     float64
	X, Y     float64
	Button   string
	Duration float64
}

type TimedKey struct {
	Time      float64
	Action    string
	KeyCode   uint16
	Char      string
	Modifiers KeyModifiers
}

// KeyModifiers records which modifier keys were held during a key event.
// Kept as plain bools here (rather than importing internal/generators'
// ModifierState) so internal/recording stays free of the one-way
// generators -> recording import edge internal/generators/adapter.go
// introduces.
type KeyModifiers struct {
	Command bool
	Shift   bool
	Alt     bool
	Control bool
}

func (m KeyModifiers) Any() bool { return m.Command || m.Shift || m.Alt || m.Control }

// VideoEncoder is the consumer-side contract: append raw frames, finish to
// flush and close the output file.
type VideoEncoder interface {
	Start() error
	AppendFrame(frame CapturedFrame) error
	Finish() (framesEncoded int, err error)
}

// RecordingResult is returned by Stop.
type RecordingResult struct {
	VideoPath     string
	InputData     InputRecording
	Duration      time.Duration
	FrameRate     float64
	FrameCount    int
	DroppedFrames int64
	CaptureBounds CaptureTarget
}

// Coordinator drives one recording's lifecycle: FSM, bounded queue, encoder
// thread, and bounded-latency shutdown (spec.md §4.G).
type Coordinator struct {
	mu    sync.Mutex
	state State

	capture CaptureBackend
	input   InputMonitorBackend
	encoder VideoEncoder

	target        CaptureTarget
	captureWidth  int
	captureHeight int
	scaleFactor   float64
	outputDir     string

	queue       *frameQueue
	isPaused    int32
	sharedCount int64
	encoderDone chan struct{}
	framesCoded int64
	encoderErr  error

	recordingStart time.Time
	pauseStart     time.Time
	totalPaused    time.Duration

	outputPath string
}

var logger = logging.Named("recording")

// NewCoordinator builds an idle coordinator around the given backends.
func NewCoordinator(capture CaptureBackend, input InputMonitorBackend, encoder VideoEncoder) *Coordinator {
	return &Coordinator{state: StateIdle, capture: capture, input: input, encoder: encoder}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FrameCount is a lock-light status read that must not block on the encoder
// thread: it reads the shared atomic counter while Recording/Paused.
func (c *Coordinator) FrameCount() int64 {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state == StateRecording || state == StatePaused {
		return atomic.LoadInt64(&c.sharedCount)
	}
	return atomic.LoadInt64(&c.framesCoded)
}

// Elapsed returns wall-clock time since start minus accumulated pause time,
// never negative.
func (c *Coordinator) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

// SetTarget is valid only in Idle.
func (c *Coordinator) SetTarget(target CaptureTarget) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return invalidTransition(c.state, "set_target")
	}
	c.target = target
	return nil
}

// SetCaptureDimensions is valid only in Idle.
func (c *Coordinator) SetCaptureDimensions(w, h int, scale float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return invalidTransition(c.state, "set_capture_dimensions")
	}
	c.captureWidth, c.captureHeight, c.scaleFactor = w, h, scale
	return nil
}

// Start transitions Idle -> Countdown -> Recording, wiring the bounded
// queue, encoder thread, capture backend, and input monitor in the order
// spec.md §4.G requires: queue -> encoder thread -> capture -> input
// monitor. Countdown has no timer of its own; it is the state the
// coordinator occupies while that setup is in flight, matching spec.md's
// FSM diagram.
func (c *Coordinator) Start(outputDir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	countdown, ok := c.state.next("start")
	if !ok {
		return invalidTransition(c.state, "start")
	}
	c.state = countdown

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("recording: creating output dir: %w", err)
	}
	c.outputDir = outputDir
	c.outputPath = filepath.Join(outputDir, fmt.Sprintf("recording-%d.mp4", time.Now().UnixNano()))

	c.queue = newFrameQueue(FrameChannelCapacity)
	c.encoderDone = make(chan struct{})
	atomic.StoreInt64(&c.sharedCount, 0)
	atomic.StoreInt64(&c.framesCoded, 0)
	atomic.StoreInt32(&c.isPaused, 0)
	c.totalPaused = 0

	if err := c.encoder.Start(); err != nil {
		c.state = StateFailed
		return fmt.Errorf("recording: starting encoder: %w", err)
	}

	go c.runEncoderThread()

	onFrame := func(f CapturedFrame) {
		if atomic.LoadInt32(&c.isPaused) == 1 {
			return
		}
		if c.queue.TryPush(f) {
			atomic.AddInt64(&c.sharedCount, 1)
		}
	}
	if err := c.capture.StartCapture(c.target, onFrame); err != nil {
		c.state = StateFailed
		return fmt.Errorf("recording: starting capture: %w", err)
	}

	if err := c.input.StartMonitoring(); err != nil {
		logger.Warn().Err(err).Msg("input monitor failed to start, continuing without it")
	}

	recording, ok := c.state.next("beginCapture")
	if !ok {
		c.state = StateFailed
		return invalidTransition(c.state, "beginCapture")
	}
	c.recordingStart = time.Now()
	c.state = recording
	return nil
}

func (c *Coordinator) runEncoderThread() {
	defer close(c.encoderDone)
	for frame := range c.queue.ch {
		if err := c.encoder.AppendFrame(frame); err != nil {
			logger.Error().Err(err).Msg("encoder rejected frame during recording")
			continue
		}
		atomic.AddInt64(&c.framesCoded, 1)
	}
	n, err := c.encoder.Finish()
	c.encoderErr = err
	atomic.StoreInt64(&c.framesCoded, int64(n))
}

// Pause transitions Recording -> Paused.
func (c *Coordinator) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	to, ok := c.state.next("pause")
	if !ok {
		return invalidTransition(c.state, "pause")
	}
	atomic.StoreInt32(&c.isPaused, 1)
	c.pauseStart = time.Now()
	c.state = to
	return nil
}

// Resume transitions Paused -> Recording.
func (c *Coordinator) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	to, ok := c.state.next("resume")
	if !ok {
		return invalidTransition(c.state, "resume")
	}
	if !c.pauseStart.IsZero() {
		c.totalPaused += time.Since(c.pauseStart)
		c.pauseStart = time.Time{}
	}
	atomic.StoreInt32(&c.isPaused, 0)
	c.state = to
	return nil
}

const (
	encoderStopDeadline = 5 * time.Second
	inputStopDeadline   = 2 * time.Second
)

// Stop implements the bounded-latency shutdown procedure of spec.md §4.G.
func (c *Coordinator) Stop() (RecordingResult, error) {
	c.mu.Lock()
	to, ok := c.state.next("stop")
	if !ok {
		state := c.state
		c.mu.Unlock()
		return RecordingResult{}, invalidTransition(state, "stop")
	}
	c.state = to
	c.mu.Unlock()

	c.queue.Close()

	if err := c.capture.StopCapture(); err != nil {
		logger.Warn().Err(err).Msg("capture backend reported error on stop")
	}

	frameCount := int(atomic.LoadInt64(&c.framesCoded))
	select {
	case <-c.encoderDone:
		frameCount = int(atomic.LoadInt64(&c.framesCoded))
	case <-time.After(encoderStopDeadline):
		logger.Warn().Msg("encoder join timed out, falling back to shared frame count")
		frameCount = int(atomic.LoadInt64(&c.sharedCount))
	}

	var inputData InputRecording
	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		rec, err := c.input.StopMonitoring()
		if err != nil {
			logger.Warn().Err(err).Msg("input monitor stop reported error")
		}
		inputData = rec
	}()
	select {
	case <-inputDone:
	case <-time.After(inputStopDeadline):
		logger.Warn().Msg("input monitor stop timed out, proceeding without it")
	}

	dropped := c.queue.Dropped()
	if dropped > 0 {
		logger.Warn().Int64("dropped_frames", dropped).Msg("frames dropped during recording")
	}

	c.mu.Lock()
	elapsed := c.elapsedLocked()
	c.state = StateCompleted
	result := RecordingResult{
		VideoPath:     c.outputPath,
		InputData:     inputData,
		Duration:      elapsed,
		FrameCount:    frameCount,
		DroppedFrames: dropped,
		CaptureBounds: c.target,
	}
	c.mu.Unlock()

	return result, nil
}

// elapsedLocked is Elapsed's body, used internally while already holding mu.
func (c *Coordinator) elapsedLocked() time.Duration {
	if c.recordingStart.IsZero() {
		return 0
	}
	paused := c.totalPaused
	if atomic.LoadInt32(&c.isPaused) == 1 && !c.pauseStart.IsZero() {
		paused += time.Since(c.pauseStart)
	}
	e := time.Since(c.recordingStart) - paused
	if e < 0 {
		return 0
	}
	return e
}

// Reset clears all per-recording state and returns the coordinator to Idle.
// If the input monitor is somehow still running (partial failure), it is
// stopped first.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.input.StopMonitoring()
	c.state = StateIdle
	c.queue = nil
	c.recordingStart = time.Time{}
	c.pauseStart = time.Time{}
	c.totalPaused = 0
	atomic.StoreInt64(&c.sharedCount, 0)
	atomic.StoreInt64(&c.framesCoded, 0)
}

func (c *Coordinator) DroppedFrames() int64 {
	if c.queue == nil {
		return 0
	}
	return c.queue.Dropped()
}

// MouseDataPath derives the companion mouse-data path from a video path,
// matching the original's `video.mp4 -> video_mouse.json` convention.
func MouseDataPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	base := strings.TrimSuffix(videoPath, ext)
	return base + "_mouse.json"
}
