package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opariffazman/lazyrec/internal/project"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect a saved .lazyrec project package",
	}
	cmd.AddCommand(newProjectInfoCmd())
	return cmd
}

func newProjectInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.lazyrec>",
		Short: "Print a project's metadata and track summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return fmt.Errorf("project info: %w", err)
			}
			fmt.Printf("Name:       %s\n", p.Name)
			fmt.Printf("Created:    %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Modified:   %s\n", p.ModifiedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Duration:   %.2fs\n", p.Duration())
			fmt.Printf("Resolution: %dx%d @ %.2ffps\n", p.Media.PixelSize.Width, p.Media.PixelSize.Height, p.Media.FrameRate)
			fmt.Printf("Window mode: %v\n", p.IsWindowMode())
			fmt.Printf("Codec:      %s\n", p.RenderSettings.Codec.DisplayName())
			fmt.Printf("Keyframes:  %d total\n", p.Timeline.TotalKeyframeCount())
			return nil
		},
	}
}
