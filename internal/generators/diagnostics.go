package generators

import (
	"github.com/sajari/regression"
)

// FitQuality summarizes how well a session's zoom level tracked cursor
// dwell time, an auxiliary diagnostic surfaced alongside generated sessions
// (not consumed by the evaluator/renderer, purely informational for the
// summary line the `generate` command prints).
type FitQuality struct {
	// Slope is the fitted trend of zoom against session dwell time
	// (seconds); positive means longer sessions tend to zoom in more.
	Slope float64
	// R2 is the regression's R-squared; low values mean zoom level is
	// weakly explained by dwell time alone (expected for click-driven
	// sessions, more informative for typing-heavy ones).
	R2 float64
}

// AssessFitQuality regresses each session's chosen zoom against its dwell
// time (End-Start). Returns the zero value if fewer than two sessions are
// available (regression is undefined with <2 points).
func AssessFitQuality(sessions []Session) FitQuality {
	if len(sessions) < 2 {
		return FitQuality{}
	}

	r := new(regression.Regression)
	r.SetObserved("zoom")
	r.SetVar(0, "dwellSeconds")

	for _, s := range sessions {
		dwell := s.End - s.Start
		zoom := FitZoom(s.BBox)
		r.Train(regression.DataPoint(zoom, []float64{dwell}))
	}
	if err := r.Run(); err != nil {
		return FitQuality{}
	}

	return FitQuality{Slope: r.Coeff(1), R2: r.R2}
}
