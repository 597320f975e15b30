package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opariffazman/lazyrec/internal/capture"
	"github.com/opariffazman/lazyrec/internal/config"
	"github.com/opariffazman/lazyrec/internal/input"
	"github.com/opariffazman/lazyrec/internal/media"
	"github.com/opariffazman/lazyrec/internal/project"
	"github.com/opariffazman/lazyrec/internal/recording"
)

func newRecordCmd() *cobra.Command {
	var displayID int
	var outDir string
	var name string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the screen until Ctrl+C, then save a project package",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Recording.OutputDir
			}
			return runRecord(cfg, displayID, outDir, name)
		},
	}

	cmd.Flags().IntVar(&displayID, "display", 0, "display index to capture")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVar(&name, "name", "recording", "project name")
	return cmd
}

func runRecord(cfg *config.Config, displayID int, outDir, name string) error {
	bounds := capture.DisplayBounds(displayID)
	width, height := bounds.Dx(), bounds.Dy()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("record: creating output dir: %w", err)
	}
	videoPath := filepath.Join(outDir, fmt.Sprintf("%s.mp4", name))

	capBackend := capture.NewScreenshotCapture(cfg.Recording.TargetFPS)
	inputBackend := input.NewHookMonitor()
	encoder := media.NewLiveEncoder(videoPath, media.Config{
		Width:  width,
		Height: height,
		FPS:    float64(cfg.Recording.TargetFPS),
	})

	coord := recording.NewCoordinator(capBackend, inputBackend, encoder)
	if err := coord.SetTarget(recording.CaptureTarget{Kind: "display", DisplayID: uint32(displayID), W: float64(width), H: float64(height)}); err != nil {
		return err
	}

	if err := coord.Start(outDir); err != nil {
		return fmt.Errorf("record: starting: %w", err)
	}
	fmt.Println("Recording... press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	result, err := coord.Stop()
	if err != nil {
		return fmt.Errorf("record: stopping: %w", err)
	}
	fmt.Printf("Recorded %d frames (%d dropped) over %s\n", result.FrameCount, result.DroppedFrames, result.Duration)

	mouseDataPath := recording.MouseDataPath(videoPath)
	if err := writeInputRecording(mouseDataPath, result.InputData); err != nil {
		return fmt.Errorf("record: writing input data: %w", err)
	}

	asset := project.MediaAsset{
		VideoRelativePath:     filepath.Join("recording", filepath.Base(videoPath)),
		MouseDataRelativePath: filepath.Join("recording", filepath.Base(mouseDataPath)),
		PixelSize:             project.Size{Width: width, Height: height},
		FrameRate:             float64(cfg.Recording.TargetFPS),
		Duration:              result.Duration.Seconds(),
	}
	capMeta := project.CaptureMeta{
		BoundsPt:    project.Rect{X: float64(bounds.Min.X), Y: float64(bounds.Min.Y), Width: float64(width), Height: float64(height)},
		ScaleFactor: cfg.Capture.ScaleHint,
	}
	p := project.New(name, asset, capMeta)

	packageDir := filepath.Join(outDir, name+"."+project.PackageExtension)
	if err := p.Save(packageDir, videoPath, mouseDataPath); err != nil {
		return fmt.Errorf("record: saving project: %w", err)
	}
	fmt.Printf("Saved project to %s\n", packageDir)
	return nil
}

// writeInputRecording JSON-encodes the raw positions/clicks/keyboard
// history to the path project.Save will copy into the package's
// recording/ directory.
func writeInputRecording(path string, rec recording.InputRecording) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding input data: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}
