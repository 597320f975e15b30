// Package project defines the persisted Project aggregate and its
// `.lazyrec` package directory layout.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/opariffazman/lazyrec/internal/timeline"
)

// PackageExtension is the directory suffix for a saved project.
const PackageExtension = "lazyrec"

// Size is a pixel width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle in platform screen points.
type Rect struct {
	X, Y, Width, Height float64
}

// CaptureMeta records the physical capture geometry needed to reproduce
// coordinate conversions during editing/export.
type CaptureMeta struct {
	BoundsPt    Rect
	ScaleFactor float64
}

// SizePixel returns the capture bounds converted to pixels via ScaleFactor.
func (c CaptureMeta) SizePixel() Size {
	return Size{
		Width:  int(c.BoundsPt.Width * c.ScaleFactor),
		Height: int(c.BoundsPt.Height * c.ScaleFactor),
	}
}

// MediaAsset describes the recorded source video and its companion mouse
// data file, both stored relative to the package directory.
type MediaAsset struct {
	VideoRelativePath     string
	MouseDataRelativePath string
	PixelSize             Size
	FrameRate             float64
	Duration              float64
}

func (m MediaAsset) AspectRatio() float64 {
	if m.PixelSize.Height <= 0 {
		return 16.0 / 9.0
	}
	return float64(m.PixelSize.Width) / float64(m.PixelSize.Height)
}

func (m MediaAsset) TotalFrames() int {
	return int(m.Duration * m.FrameRate)
}

func (m MediaAsset) FrameDuration() float64 {
	if m.FrameRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / m.FrameRate
}

// OutputResolution selects the export target frame size.
type OutputResolution struct {
	Kind         string // "original", "uhd4k", "qhd1440", "fhd1080", "hd720", "custom"
	CustomWidth  int
	CustomHeight int
}

func (o OutputResolution) Size(source Size) Size {
	switch o.Kind {
	case "uhd4k":
		return Size{3840, 2160}
	case "qhd1440":
		return Size{2560, 1440}
	case "fhd1080":
		return Size{1920, 1080}
	case "hd720":
		return Size{1280, 720}
	case "custom":
		return Size{o.CustomWidth, o.CustomHeight}
	default:
		return source
	}
}

// OutputFrameRate selects the export target fps.
type OutputFrameRate struct {
	Kind  string // "original" or "fixed"
	Fixed float64
}

func (o OutputFrameRate) Value(sourceFps float64) float64 {
	if o.Kind == "fixed" {
		return o.Fixed
	}
	return sourceFps
}

// VideoCodec selects H.264 or H.265.
type VideoCodec string

const (
	CodecH264 VideoCodec = "h264"
	CodecH265 VideoCodec = "h265"
)

func (c VideoCodec) FileExtension() string { return "mp4" }

func (c VideoCodec) DisplayName() string {
	if c == CodecH265 {
		return "H.265 / HEVC"
	}
	return "H.264 / AVC"
}

// ExportQuality maps to a bit-rate multiplier.
type ExportQuality string

const (
	QualityLow      ExportQuality = "low"
	QualityMedium   ExportQuality = "medium"
	QualityHigh     ExportQuality = "high"
	QualityOriginal ExportQuality = "original"
)

func (q ExportQuality) BitRateMultiplier() float64 {
	switch q {
	case QualityLow:
		return 2.0
	case QualityMedium:
		return 4.0
	case QualityHigh:
		return 8.0
	case QualityOriginal:
		return 12.0
	default:
		return 4.0
	}
}

func (q ExportQuality) BitRate(width, height int) int64 {
	return int64(q.BitRateMultiplier() * float64(width*height))
}

// RenderSettings holds cosmetic and encoding options for export.
type RenderSettings struct {
	OutputResolution  OutputResolution
	OutputFrameRate   OutputFrameRate
	Codec             VideoCodec
	Quality           ExportQuality
	BackgroundEnabled bool
	CornerRadius      float64
	ShadowRadius      float64
	ShadowOpacity     float64
	Padding           float64
	WindowInset       float64
}

// DefaultRenderSettings mirrors the original's RenderSettings::default().
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		OutputResolution:  OutputResolution{Kind: "original"},
		OutputFrameRate:   OutputFrameRate{Kind: "original"},
		Codec:             CodecH265,
		Quality:           QualityHigh,
		BackgroundEnabled: false,
		CornerRadius:      22.0,
		ShadowRadius:      40.0,
		ShadowOpacity:     0.7,
		Padding:           40.0,
		WindowInset:       12.0,
	}
}

// Project is the aggregate persisted as a `.lazyrec` package.
type Project struct {
	ID             uuid.UUID
	Version        int
	Name           string
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Media          MediaAsset
	CaptureMeta    CaptureMeta
	Timeline       timeline.Timeline
	RenderSettings RenderSettings
}

// New creates a project with default tracks/settings from a fresh recording.
func New(name string, media MediaAsset, captureMeta CaptureMeta) Project {
	now := time.Now().UTC()
	return Project{
		ID:             uuid.New(),
		Version:        1,
		Name:           name,
		CreatedAt:      now,
		ModifiedAt:     now,
		Media:          media,
		CaptureMeta:    captureMeta,
		Timeline:       timeline.WithDefaultTracks(media.Duration),
		RenderSettings: DefaultRenderSettings(),
	}
}

func (p Project) Duration() float64  { return p.Timeline.Duration }
func (p Project) TotalFrames() int   { return p.Media.TotalFrames() }
func (p Project) IsWindowMode() bool { return p.RenderSettings.BackgroundEnabled }

// ErrNotFound is returned by Load when the package directory has no
// project.json.
var ErrNotFound = errors.New("project: not found")

const (
	recordingDirName = "recording"
	manifestFileName = "project.json"
)

func (p Project) videoPath(packageDir string) string {
	return filepath.Join(packageDir, p.Media.VideoRelativePath)
}

func (p Project) mouseDataPath(packageDir string) string {
	return filepath.Join(packageDir, p.Media.MouseDataRelativePath)
}

// Save writes the package directory: creates recording/, copies in the
// video/mouse source files if they aren't already at the destination,
// bumps ModifiedAt, and writes project.json.
func (p *Project) Save(packageDir string, videoSource, mouseSource string) error {
	recordingDir := filepath.Join(packageDir, recordingDirName)
	if err := os.MkdirAll(recordingDir, 0o755); err != nil {
		return fmt.Errorf("project: creating recording dir: %w", err)
	}

	if videoSource != "" {
		dest := p.videoPath(packageDir)
		if videoSource != dest {
			if err := copyFile(videoSource, dest); err != nil {
				return fmt.Errorf("project: copying video: %w", err)
			}
		}
	}
	if mouseSource != "" {
		dest := p.mouseDataPath(packageDir)
		if mouseSource != dest {
			if err := copyFile(mouseSource, dest); err != nil {
				return fmt.Errorf("project: copying mouse data: %w", err)
			}
		}
	}

	p.ModifiedAt = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("project: serializing: %w", err)
	}
	manifestPath := filepath.Join(packageDir, manifestFileName)
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("project: writing manifest: %w", err)
	}
	return nil
}

// Load reads project.json from a package directory.
func Load(packageDir string) (Project, error) {
	manifestPath := filepath.Join(packageDir, manifestFileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Project{}, fmt.Errorf("%w: %s", ErrNotFound, manifestPath)
		}
		return Project{}, fmt.Errorf("project: reading manifest: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("project: parsing manifest: %w", err)
	}
	return p, nil
}

func copyFile(src, dst string) error {
	in, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, in, 0o644)
}
