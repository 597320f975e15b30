package recording

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapture struct {
	mu      sync.Mutex
	onFrame func(CapturedFrame)
	stopped bool
}

func (f *fakeCapture) StartCapture(target CaptureTarget, onFrame func(CapturedFrame)) error {
	f.mu.Lock()
	f.onFrame = onFrame
	f.mu.Unlock()
	return nil
}

func (f *fakeCapture) StopCapture() error {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
	return nil
}

func (f *fakeCapture) push(n int) {
	f.mu.Lock()
	cb := f.onFrame
	f.mu.Unlock()
	if cb == nil {
		return
	}
	for i := 0; i < n; i++ {
		cb(CapturedFrame{Width: 4, Height: 4, Stride: 16, Data: make([]byte, 64)})
	}
}

type fakeInput struct {
	started bool
	stopped bool
}

func (f *fakeInput) StartMonitoring() error {
	f.started = true
	return nil
}

func (f *fakeInput) StopMonitoring() (InputRecording, error) {
	f.stopped = true
	return InputRecording{Positions: []TimedPosition{{Time: 0, X: 0.5, Y: 0.5}}}, nil
}

type fakeEncoder struct {
	mu      sync.Mutex
	started bool
	frames  int
	finish  bool
}

func (f *fakeEncoder) Start() error {
	f.started = true
	return nil
}

func (f *fakeEncoder) AppendFrame(frame CapturedFrame) error {
	f.mu.Lock()
	f.frames++
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) Finish() (int, error) {
	f.finish = true
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames, nil
}

func TestCoordinatorLifecycle(t *testing.T) {
	capt := &fakeCapture{}
	in := &fakeInput{}
	enc := &fakeEncoder{}
	c := NewCoordinator(capt, in, enc)

	require.NoError(t, c.SetTarget(CaptureTarget{Kind: "display", DisplayID: 1}))
	dir := t.TempDir()
	require.NoError(t, c.Start(dir))
	assert.Equal(t, StateRecording, c.State())
	assert.True(t, in.started)

	capt.push(5)
	time.Sleep(20 * time.Millisecond)
	assert.GreaterOrEqual(t, c.FrameCount(), int64(0))

	require.NoError(t, c.Pause())
	assert.Equal(t, StatePaused, c.State())
	require.NoError(t, c.Resume())
	assert.Equal(t, StateRecording, c.State())

	result, err := c.Stop()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, c.State())
	assert.True(t, capt.stopped)
	assert.True(t, in.stopped)
	assert.True(t, enc.finish)
	assert.NotEmpty(t, result.VideoPath)
}

func TestCoordinatorInvalidTransitions(t *testing.T) {
	c := NewCoordinator(&fakeCapture{}, &fakeInput{}, &fakeEncoder{})
	err := c.Pause()
	require.Error(t, err)
	var coordErr *CoordinatorError
	require.ErrorAs(t, err, &coordErr)
	assert.Equal(t, StateIdle, coordErr.State)
}

func TestMouseDataPath(t *testing.T) {
	assert.Equal(t, "/tmp/video_mouse.json", MouseDataPath("/tmp/video.mp4"))
}
