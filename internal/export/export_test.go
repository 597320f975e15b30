package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opariffazman/lazyrec/internal/render"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

type fakeSource struct {
	total  int
	fps    float64
	width  int
	height int
	reads  int
}

func (s *fakeSource) TotalFrames() int   { return s.total }
func (s *fakeSource) FrameRate() float64 { return s.fps }
func (s *fakeSource) Duration() float64  { return float64(s.total) / s.fps }
func (s *fakeSource) ReadFrame(ctx context.Context, t float64) (*render.FrameBuffer, error) {
	s.reads++
	return render.NewFrameBuffer(s.width, s.height), nil
}

type fakeEncoder struct {
	started  bool
	finished bool
	frames   int
}

func (e *fakeEncoder) Start() error { e.started = true; return nil }
func (e *fakeEncoder) AppendFrame(frame *render.FrameBuffer, ptsSeconds float64) error {
	e.frames++
	return nil
}
func (e *fakeEncoder) Finish() (string, error) { e.finished = true; return "out.mp4", nil }

func TestEngineRunDrivesFullPipeline(t *testing.T) {
	src := &fakeSource{total: 5, fps: 30, width: 4, height: 4}
	enc := &fakeEncoder{}

	var phases []Phase
	engine := Engine{
		Timeline:  timeline.New(5.0 / 30),
		Renderer:  render.Renderer{Settings: render.Settings{SourceWidth: 4, SourceHeight: 4, OutputWidth: 4, OutputHeight: 4}},
		Source:    src,
		Encoder:   enc,
		OutputFPS: 30,
		OnProgress: func(p Progress) bool {
			phases = append(phases, p.Phase)
			return false
		},
	}

	err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, enc.started)
	assert.True(t, enc.finished)
	assert.Equal(t, 5, enc.frames)
	assert.Equal(t, 5, src.reads)
	assert.Contains(t, phases, PhasePreparing)
	assert.Contains(t, phases, PhaseCompleted)
}

func TestEngineRunRespectsCancellation(t *testing.T) {
	src := &fakeSource{total: 100, fps: 30, width: 2, height: 2}
	enc := &fakeEncoder{}

	calls := 0
	engine := Engine{
		Timeline:  timeline.New(100.0 / 30),
		Renderer:  render.Renderer{Settings: render.Settings{SourceWidth: 2, SourceHeight: 2, OutputWidth: 2, OutputHeight: 2}},
		Source:    src,
		Encoder:   enc,
		OutputFPS: 30,
		OnProgress: func(p Progress) bool {
			calls++
			return p.Phase == PhaseRendering
		},
	}

	err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, enc.finished)
	assert.Less(t, enc.frames, 100)
}

func TestCanFastCopy(t *testing.T) {
	empty := timeline.New(10)
	assert.True(t, CanFastCopy(empty, true, true))
	assert.False(t, CanFastCopy(empty, false, true))

	withTracks := timeline.WithDefaultTracks(10)
	assert.True(t, withTracks.IsEmpty())
}
