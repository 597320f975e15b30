package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaAssetDerivedFields(t *testing.T) {
	m := MediaAsset{PixelSize: Size{Width: 1920, Height: 1080}, FrameRate: 30, Duration: 2.0}
	assert.InDelta(t, 16.0/9.0, m.AspectRatio(), 1e-6)
	assert.Equal(t, 60, m.TotalFrames())
	assert.InDelta(t, 1.0/30.0, m.FrameDuration(), 1e-9)

	zero := MediaAsset{}
	assert.InDelta(t, 16.0/9.0, zero.AspectRatio(), 1e-6)
	assert.InDelta(t, 1.0/60.0, zero.FrameDuration(), 1e-9)
}

func TestOutputResolutionSize(t *testing.T) {
	source := Size{Width: 2560, Height: 1440}
	assert.Equal(t, Size{3840, 2160}, OutputResolution{Kind: "uhd4k"}.Size(source))
	assert.Equal(t, Size{1920, 1080}, OutputResolution{Kind: "fhd1080"}.Size(source))
	assert.Equal(t, Size{640, 480}, OutputResolution{Kind: "custom", CustomWidth: 640, CustomHeight: 480}.Size(source))
	assert.Equal(t, source, OutputResolution{Kind: "original"}.Size(source))
}

func TestVideoCodecDisplayName(t *testing.T) {
	assert.Equal(t, "H.265 / HEVC", CodecH265.DisplayName())
	assert.Equal(t, "H.264 / AVC", CodecH264.DisplayName())
	assert.Equal(t, "mp4", CodecH264.FileExtension())
}

func TestExportQualityBitRate(t *testing.T) {
	assert.Equal(t, int64(8*1920*1080), QualityHigh.BitRate(1920, 1080))
	assert.Greater(t, QualityOriginal.BitRateMultiplier(), QualityHigh.BitRateMultiplier())
}

func TestNewProjectHasDefaults(t *testing.T) {
	p := New("demo", MediaAsset{Duration: 5.0}, CaptureMeta{ScaleFactor: 2.0})
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, CodecH265, p.RenderSettings.Codec)
	assert.False(t, p.IsWindowMode())
	assert.Equal(t, 5.0, p.Duration())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	videoSrc := filepath.Join(dir, "source.mp4")
	require.NoError(t, os.WriteFile(videoSrc, []byte("video-bytes"), 0o644))
	mouseSrc := filepath.Join(dir, "source_mouse.json")
	require.NoError(t, os.WriteFile(mouseSrc, []byte(`{"Positions":null,"Clicks":null,"Keyboard":null}`), 0o644))

	asset := MediaAsset{
		VideoRelativePath:     filepath.Join("recording", "source.mp4"),
		MouseDataRelativePath: filepath.Join("recording", "source_mouse.json"),
		PixelSize:             Size{Width: 1280, Height: 720},
		FrameRate:             30,
		Duration:              1.0,
	}
	p := New("demo", asset, CaptureMeta{ScaleFactor: 1.0})

	packageDir := filepath.Join(dir, "demo."+PackageExtension)
	require.NoError(t, p.Save(packageDir, videoSrc, mouseSrc))

	copiedVideo, err := os.ReadFile(filepath.Join(packageDir, "recording", "source.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(copiedVideo))

	loaded, err := Load(packageDir)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Media.VideoRelativePath, loaded.Media.VideoRelativePath)
}

func TestLoadMissingProjectReturnsNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}
