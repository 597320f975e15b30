package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opariffazman/lazyrec/internal/generators"
	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/project"
	"github.com/opariffazman/lazyrec/internal/recording"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

// dragMinDuration is the press-hold length above which a click is treated
// as a drag gesture rather than a click, mirroring a typical UI drag
// threshold.
const dragMinDuration = 0.15

func newGenerateCmd() *cobra.Command {
	var shortcutsOnly bool

	cmd := &cobra.Command{
		Use:   "generate <project.lazyrec>",
		Short: "Synthesize timeline keyframes from a recorded project's input data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], shortcutsOnly)
		},
	}
	cmd.Flags().BoolVar(&shortcutsOnly, "shortcuts-only", true, "only emit keyframes for modifier-combo keystrokes")
	return cmd
}

func runGenerate(packageDir string, shortcutsOnly bool) error {
	p, err := project.Load(packageDir)
	if err != nil {
		return fmt.Errorf("generate: loading project: %w", err)
	}

	rec, err := loadInputRecording(packageDir, p.Media.MouseDataRelativePath)
	if err != nil {
		return fmt.Errorf("generate: loading input data: %w", err)
	}

	conv := primitives.CoordinateConverter{
		CaptureBoundsX: p.CaptureMeta.BoundsPt.X,
		CaptureBoundsY: p.CaptureMeta.BoundsPt.Y,
		CaptureWidth:   p.CaptureMeta.BoundsPt.Width,
		CaptureHeight:  p.CaptureMeta.BoundsPt.Height,
		ScaleFactor:    p.CaptureMeta.ScaleFactor,
	}
	data := generators.FromInputRecording(rec, conv, dragMinDuration)
	if data.Duration == 0 {
		data.Duration = p.Media.Duration
	}

	activities := generators.CollectActivities(data)
	sessions := generators.ClusterSessions(activities)
	transformKeyframes := generators.EmitSmartZoomKeyframes(sessions, p.Media.Duration)
	rippleKeyframes := generators.EmitRippleKeyframes(data)
	cursorKeyframes := generators.EmitCursorKeyframes(data)
	keystrokeKeyframes := generators.EmitKeystrokeKeyframes(data, shortcutsOnly)

	if transformTrack, ok := p.Timeline.TransformTrack(); ok {
		for _, k := range transformKeyframes {
			transformTrack.AddKeyframe(k)
		}
		p.Timeline.UpdateTrack(timeline.WrapTransform(*transformTrack))
	}
	if rippleTrack, ok := p.Timeline.RippleTrack(); ok {
		for _, k := range rippleKeyframes {
			rippleTrack.AddKeyframe(k)
		}
		p.Timeline.UpdateTrack(timeline.WrapRipple(*rippleTrack))
	}
	if cursorTrack, ok := p.Timeline.CursorTrack(); ok {
		for _, k := range cursorKeyframes {
			cursorTrack.AddStyleKeyframe(k)
		}
		p.Timeline.UpdateTrack(timeline.WrapCursor(*cursorTrack))
	}
	if keystrokeTrack, ok := p.Timeline.KeystrokeTrack(); ok {
		for _, k := range keystrokeKeyframes {
			keystrokeTrack.AddKeyframe(k)
		}
		p.Timeline.UpdateTrack(timeline.WrapKeystroke(*keystrokeTrack))
	}

	quality := generators.AssessFitQuality(sessions)
	fmt.Printf("Generated %d transform, %d ripple, %d cursor, %d keystroke keyframes (fit R^2=%.3f)\n",
		len(transformKeyframes), len(rippleKeyframes), len(cursorKeyframes), len(keystrokeKeyframes), quality.R2)

	if err := p.Save(packageDir, "", ""); err != nil {
		return fmt.Errorf("generate: saving project: %w", err)
	}
	return nil
}

// loadInputRecording reads the companion mouse/keyboard file `record` wrote
// via writeInputRecording. A project with no recorded input data (e.g. an
// imported video) yields an empty recording rather than an error, so
// generate degrades to emitting whatever keyframes are possible from zero
// activity.
func loadInputRecording(packageDir, mouseDataRelativePath string) (recording.InputRecording, error) {
	if mouseDataRelativePath == "" {
		return recording.InputRecording{}, nil
	}
	path := filepath.Join(packageDir, mouseDataRelativePath)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return recording.InputRecording{}, nil
	}
	if err != nil {
		return recording.InputRecording{}, err
	}
	var rec recording.InputRecording
	if err := json.Unmarshal(b, &rec); err != nil {
		return recording.InputRecording{}, err
	}
	return rec, nil
}
