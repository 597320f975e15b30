// Package config loads lazyrec's configuration via viper, keeping the
// teacher's nested Processing/Recording sections (its Effects section is
// not carried) and adding the render, capture, and export sections this
// tool needs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide settings object.
type Config struct {
	Recording struct {
		TargetFPS int
		OutputDir string
	}
	Capture struct {
		DisplayID int
		ScaleHint float64
	}
	Render struct {
		WindowMode   bool
		CornerRadius float64
		Padding      float64
	}
	Export struct {
		Codec     string
		Quality   string
		OutputFPS float64
		Parallel  bool
		Workers   int
	}
	Processing struct {
		Parallel bool
		Workers  int
	}
}

// Default mirrors the teacher's NewConfig() defaults, extended with the new
// sections.
func Default() *Config {
	c := &Config{}
	c.Recording.TargetFPS = 60
	c.Recording.OutputDir = "output"
	c.Capture.DisplayID = 0
	c.Capture.ScaleHint = 1.0
	c.Render.WindowMode = false
	c.Render.CornerRadius = 22.0
	c.Render.Padding = 40.0
	c.Export.Codec = "h265"
	c.Export.Quality = "high"
	c.Export.OutputFPS = 0
	c.Export.Parallel = true
	c.Export.Workers = 4
	c.Processing.Parallel = true
	c.Processing.Workers = 4
	return c
}

// Load reads configuration from (in precedence order) flags already bound
// to v, LAZYREC_-prefixed environment variables, and a config file named
// lazyrec.{yaml,toml,json} searched in the given dirs, falling back to
// Default() for anything unset.
func Load(v *viper.Viper, configDirs []string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigName("lazyrec")
	v.SetEnvPrefix("LAZYREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	def := Default()
	v.SetDefault("recording.targetfps", def.Recording.TargetFPS)
	v.SetDefault("recording.outputdir", def.Recording.OutputDir)
	v.SetDefault("capture.displayid", def.Capture.DisplayID)
	v.SetDefault("capture.scalehint", def.Capture.ScaleHint)
	v.SetDefault("render.windowmode", def.Render.WindowMode)
	v.SetDefault("render.cornerradius", def.Render.CornerRadius)
	v.SetDefault("render.padding", def.Render.Padding)
	v.SetDefault("export.codec", def.Export.Codec)
	v.SetDefault("export.quality", def.Export.Quality)
	v.SetDefault("export.outputfps", def.Export.OutputFPS)
	v.SetDefault("export.parallel", def.Export.Parallel)
	v.SetDefault("export.workers", def.Export.Workers)
	v.SetDefault("processing.parallel", def.Processing.Parallel)
	v.SetDefault("processing.workers", def.Processing.Workers)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return &c, nil
}
