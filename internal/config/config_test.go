package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 60, c.Recording.TargetFPS)
	assert.Equal(t, "h265", c.Export.Codec)
	assert.Equal(t, 4, c.Processing.Workers)
}

func TestLoadFallsBackToDefaultsWithoutConfigFile(t *testing.T) {
	c, err := Load(viper.New(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 60, c.Recording.TargetFPS)
	assert.Equal(t, "output", c.Recording.OutputDir)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "recording:\n  targetfps: 24\n  outputdir: captures\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lazyrec.yaml"), []byte(content), 0o644))

	c, err := Load(viper.New(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 24, c.Recording.TargetFPS)
	assert.Equal(t, "captures", c.Recording.OutputDir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LAZYREC_RECORDING_TARGETFPS", "15")
	c, err := Load(viper.New(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 15, c.Recording.TargetFPS)
}
