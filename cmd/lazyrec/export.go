package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opariffazman/lazyrec/internal/export"
	"github.com/opariffazman/lazyrec/internal/media"
	"github.com/opariffazman/lazyrec/internal/project"
	"github.com/opariffazman/lazyrec/internal/render"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <project.lazyrec>",
		Short: "Render and encode a project's timeline to a finished video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], outPath)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output video path (default: <project>_export.mp4)")
	return cmd
}

func runExport(packageDir, outPath string) error {
	p, err := project.Load(packageDir)
	if err != nil {
		return fmt.Errorf("export: loading project: %w", err)
	}

	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(packageDir), "."+project.PackageExtension)
		outPath = filepath.Join(filepath.Dir(packageDir), base+"_export.mp4")
	}

	videoPath := filepath.Join(packageDir, p.Media.VideoRelativePath)
	source, err := media.NewSource(videoPath)
	if err != nil {
		return fmt.Errorf("export: opening source video: %w", err)
	}
	defer source.Close()

	outSize := p.RenderSettings.OutputResolution.Size(p.Media.PixelSize)
	outFPS := p.RenderSettings.OutputFrameRate.Value(p.Media.FrameRate)

	encoder := media.NewEncoder(outPath, media.Config{
		Width:   outSize.Width,
		Height:  outSize.Height,
		FPS:     outFPS,
		BitRate: p.RenderSettings.Quality.BitRate(outSize.Width, outSize.Height),
	})

	renderer := render.Renderer{Settings: render.Settings{
		SourceWidth:  p.Media.PixelSize.Width,
		SourceHeight: p.Media.PixelSize.Height,
		OutputWidth:  outSize.Width,
		OutputHeight: outSize.Height,
		WindowMode:   p.IsWindowMode(),
	}}

	engine := export.Engine{
		Timeline:  p.Timeline,
		Renderer:  renderer,
		Source:    source,
		Encoder:   encoder,
		OutputFPS: outFPS,
		OnProgress: func(pr export.Progress) bool {
			if pr.Phase == export.PhaseRendering {
				fmt.Printf("\rRendering %d/%d frames (eta %s)", pr.FramesDone, pr.TotalFrames, pr.EstimatedETA)
			} else {
				fmt.Printf("\n%s\n", pr.Phase)
			}
			return false
		},
	}

	if err := engine.Run(context.Background()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("Exported to %s\n", outPath)
	return nil
}
