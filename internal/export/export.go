// Package export drives the source -> evaluate -> render -> encode loop
// that turns a Project's timeline into a finished output video.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/opariffazman/lazyrec/internal/evaluator"
	"github.com/opariffazman/lazyrec/internal/logging"
	"github.com/opariffazman/lazyrec/internal/render"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

// Phase tags the export run's current stage, surfaced via Progress.
type Phase string

const (
	PhasePreparing  Phase = "preparing"
	PhaseRendering  Phase = "rendering"
	PhaseFinalizing Phase = "finalizing"
	PhaseCompleted  Phase = "completed"
	PhaseCancelled  Phase = "cancelled"
)

// Progress is reported periodically during the run.
type Progress struct {
	Phase        Phase
	FramesDone   int
	TotalFrames  int
	EstimatedETA time.Duration
}

// ProgressFunc receives progress updates; returning true requests
// cancellation.
type ProgressFunc func(Progress) (cancel bool)

// VideoSource is the decoder contract (spec.md §6): sequential, non-seeking
// frame reads.
type VideoSource interface {
	TotalFrames() int
	FrameRate() float64
	Duration() float64
	ReadFrame(ctx context.Context, t float64) (*render.FrameBuffer, error)
}

// Encoder is the encoder contract (spec.md §6).
type Encoder interface {
	Start() error
	AppendFrame(frame *render.FrameBuffer, ptsSeconds float64) error
	Finish() (outputPath string, err error)
}

// Engine drives one export run.
type Engine struct {
	Timeline     timeline.Timeline
	Renderer     render.Renderer
	MouseSamples []evaluator.MousePosition
	Source       VideoSource
	Encoder      Encoder
	OutputFPS    float64
	OnProgress   ProgressFunc
}

var logger = logging.Named("export")

// Run executes the source->evaluate->render->encode loop described in
// spec.md §4.F.
func (e Engine) Run(ctx context.Context) error {
	e.report(Progress{Phase: PhasePreparing})

	if err := e.Encoder.Start(); err != nil {
		return fmt.Errorf("export: starting encoder: %w", err)
	}

	eval := evaluator.FrameEvaluator{WindowMode: e.Renderer.Settings.WindowMode}
	total := e.Source.TotalFrames()
	start := time.Now()

	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			logger.Warn().Msg("export cancelled via context")
			break
		}

		t := float64(i) / e.OutputFPS
		src, err := e.Source.ReadFrame(ctx, t)
		if err != nil {
			return fmt.Errorf("export: reading frame %d: %w", i, err)
		}

		state := eval.Evaluate(e.Timeline, t, e.MouseSamples)
		out := e.Renderer.RenderFrame(src, state)

		if err := e.Encoder.AppendFrame(out, t); err != nil {
			logger.Error().Err(err).Int("frame", i).Msg("encoder rejected frame, continuing")
			continue
		}

		if i%10 == 0 || i == total-1 {
			elapsed := time.Since(start)
			fps := float64(i+1) / elapsed.Seconds()
			var eta time.Duration
			if fps > 0 {
				eta = time.Duration(float64(total-i-1)/fps) * time.Second
			}
			if cancel := e.report(Progress{Phase: PhaseRendering, FramesDone: i + 1, TotalFrames: total, EstimatedETA: eta}); cancel {
				break
			}
		}
	}

	e.report(Progress{Phase: PhaseFinalizing, TotalFrames: total})
	if _, err := e.Encoder.Finish(); err != nil {
		return fmt.Errorf("export: finishing encoder: %w", err)
	}
	e.report(Progress{Phase: PhaseCompleted, TotalFrames: total, FramesDone: total})
	return nil
}

func (e Engine) report(p Progress) bool {
	if e.OnProgress == nil {
		return false
	}
	return e.OnProgress(p)
}

// CanFastCopy reports whether the fast-copy shortcut of spec.md §4.F
// applies: zero keyframes in every track and no resolution/fps change.
func CanFastCopy(tl timeline.Timeline, resolutionUnchanged, frameRateUnchanged bool) bool {
	return tl.IsEmpty() && resolutionUnchanged && frameRateUnchanged
}
