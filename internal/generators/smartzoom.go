package generators

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/opariffazman/lazyrec/internal/primitives"
	"github.com/opariffazman/lazyrec/internal/timeline"
)

const (
	typingSessionTimeout = 1.5
	sessionMergeDistance = 0.15
	sessionMergeInterval = 2.0
	workAreaPadding      = 0.02
	targetAreaCoverage   = 0.4
	minZoom              = 2.0
	maxZoom              = 8.0
	defaultZoom          = 4.0
	focusingDuration     = 0.5
	idleTimeout          = 1.0
	keyframeDedupeWindow = 0.01
)

// ActivityType tags what kind of user action produced an Activity.
type ActivityType string

const (
	ActivityClick       ActivityType = "click"
	ActivityDragStart   ActivityType = "dragStart"
	ActivityDragEnd     ActivityType = "dragEnd"
	ActivityTypingStart ActivityType = "typingStart"
	ActivityTypingEnd   ActivityType = "typingEnd"
)

// Activity is a single significant event extracted from raw input, the
// smart-zoom pipeline's first-stage output.
type Activity struct {
	Time     float64
	Position primitives.NormalizedPoint
	Type     ActivityType
}

// CollectActivities implements step 1 of the smart-zoom pipeline: emits one
// Activity per left click, drag start/end, and typing session start (plus
// end, if the session ran over 0.5s).
func CollectActivities(data MouseData) []Activity {
	var activities []Activity

	for _, c := range data.Clicks {
		if c.Button == ButtonLeft {
			activities = append(activities, Activity{Time: c.Time, Position: c.Position, Type: ActivityClick})
		}
	}

	for _, d := range data.Drags {
		activities = append(activities, Activity{Time: d.StartTime, Position: d.StartPosition, Type: ActivityDragStart})
		activities = append(activities, Activity{Time: d.EndTime, Position: d.EndPosition, Type: ActivityDragEnd})
	}

	for _, session := range typingSessions(data.Keyboard) {
		pos := mostRecentMouseBefore(data.Positions, session.start)
		activities = append(activities, Activity{Time: session.start, Position: pos, Type: ActivityTypingStart})
		if session.end-session.start > 0.5 {
			activities = append(activities, Activity{Time: session.end, Position: pos, Type: ActivityTypingEnd})
		}
	}

	sort.Slice(activities, func(i, j int) bool { return activities[i].Time < activities[j].Time })
	return activities
}

type typingSpan struct{ start, end float64 }

// typingSessions groups unmodified key-down events into maximal runs with no
// gap larger than typingSessionTimeout.
func typingSessions(keys []KeyboardRecord) []typingSpan {
	var downs []float64
	for _, k := range keys {
		if k.Action == KeyDown && !k.Modifiers.Any() {
			downs = append(downs, k.Time)
		}
	}
	sort.Float64s(downs)
	if len(downs) == 0 {
		return nil
	}

	var spans []typingSpan
	start := downs[0]
	prev := downs[0]
	for _, t := range downs[1:] {
		if t-prev > typingSessionTimeout {
			spans = append(spans, typingSpan{start: start, end: prev})
			start = t
		}
		prev = t
	}
	spans = append(spans, typingSpan{start: start, end: prev})
	return spans
}

// mostRecentMouseBefore binary-searches for the most recent sample at or
// before t; falls back to Center if there are none.
func mostRecentMouseBefore(samples []MousePositionSample, t float64) primitives.NormalizedPoint {
	if len(samples) == 0 {
		return primitives.Center
	}
	idx := sort.Search(len(samples), func(i int) bool { return samples[i].Time > t })
	if idx == 0 {
		return samples[0].Position
	}
	return samples[idx-1].Position
}

// Session is a temporally-and-spatially clustered batch of activities that
// shares a single zoom target.
type Session struct {
	Activities []Activity
	BBox       primitives.BoundingBox
	Center     primitives.NormalizedPoint
	Start      float64
	End        float64
}

// ClusterSessions implements step 2: a greedy sweep merging activities into
// sessions by distance/time thresholds.
func ClusterSessions(activities []Activity) []Session {
	if len(activities) == 0 {
		return nil
	}

	var sessions []Session
	cur := []Activity{activities[0]}
	curCentroid := activities[0].Position
	curEnd := activities[0].Time

	flush := func() {
		sessions = append(sessions, buildSession(cur))
	}

	isTyping := func(a Activity) bool {
		return a.Type == ActivityTypingStart || a.Type == ActivityTypingEnd
	}

	for _, a := range activities[1:] {
		d := a.Position.Distance(curCentroid)
		dt := a.Time - curEnd
		merge := false
		if isTyping(a) && isTyping(cur[len(cur)-1]) && d < sessionMergeDistance {
			merge = true
		} else if dt < sessionMergeInterval && d < sessionMergeDistance {
			merge = true
		}

		if merge {
			cur = append(cur, a)
			pts := make([]primitives.NormalizedPoint, len(cur))
			for i, c := range cur {
				pts[i] = c.Position
			}
			curCentroid = primitives.Centroid(pts)
			curEnd = a.Time
		} else {
			flush()
			cur = []Activity{a}
			curCentroid = a.Position
			curEnd = a.Time
		}
	}
	flush()
	return sessions
}

func buildSession(activities []Activity) Session {
	pts := make([]primitives.NormalizedPoint, len(activities))
	for i, a := range activities {
		pts[i] = a.Position
	}
	bbox := primitives.BoundingBoxOf(pts).Padded(workAreaPadding)
	return Session{
		Activities: activities,
		BBox:       bbox,
		Center:     bbox.Center(),
		Start:      activities[0].Time,
		End:        activities[len(activities)-1].Time,
	}
}

// FitZoom implements step 3: picks a zoom level so the session's bounding
// box covers roughly targetAreaCoverage of the frame.
func FitZoom(bbox primitives.BoundingBox) float64 {
	a := bbox.Width()
	if bbox.Height() > a {
		a = bbox.Height()
	}
	if a <= 0.01 {
		return defaultZoom
	}
	aEff := a
	if aEff > targetAreaCoverage {
		aEff = targetAreaCoverage
	}
	zoom := targetAreaCoverage / aEff
	return floats.Round(clampZoom(zoom), 6)
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// EmitSmartZoomKeyframes implements step 4-5: turns a list of sessions into
// an ordered, deduped, clamp-postprocessed list of TransformKeyframe.
func EmitSmartZoomKeyframes(sessions []Session, duration float64) []timeline.TransformKeyframe {
	if len(sessions) == 0 {
		return nil
	}

	var out []timeline.TransformKeyframe
	prevEnd := 0.0
	directFromPrev := false

	for i, s := range sessions {
		zoom := clampZoom(FitZoom(s.BBox))

		if !directFromPrev {
			outTime := maxf(s.Start-focusingDuration, prevEnd+0.1)
			outTime = maxf(outTime, 0)
			out = append(out, timeline.NewTransformKeyframe(outTime, minZoom, primitives.Center, primitives.SpringDefault()))
		}
		directFromPrev = false

		out = append(out, timeline.NewTransformKeyframe(s.Start, zoom, s.Center, primitives.SpringSmooth()))

		holdTime := s.End + idleTimeout
		if i+1 < len(sessions) {
			next := sessions[i+1]
			if next.Start-holdTime < sessionMergeInterval && next.Center.Distance(s.Center) < sessionMergeDistance*2 {
				// Close enough: let the next session's zoomed-in keyframe
				// carry the transition; no extra hold/out pair needed here.
				directFromPrev = true
			} else {
				out = append(out, timeline.NewTransformKeyframe(holdTime, zoom, s.Center, primitives.Linear()))
			}
		} else {
			outFinal := duration - 0.1
			if outFinal < holdTime {
				outFinal = holdTime
			}
			out = append(out, timeline.NewTransformKeyframe(outFinal, minZoom, primitives.Center, primitives.Linear()))
		}

		prevEnd = holdTime
	}

	return postProcess(out, duration)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// postProcess clamps times to [0,duration], clamps center for zoom>1, sorts,
// and dedupes keyframes within keyframeDedupeWindow seconds.
func postProcess(kfs []timeline.TransformKeyframe, duration float64) []timeline.TransformKeyframe {
	for i := range kfs {
		if kfs[i].Time < 0 {
			kfs[i].Time = 0
		}
		if kfs[i].Time > duration {
			kfs[i].Time = duration
		}
		if kfs[i].Zoom > 1.0 {
			kfs[i].Center = primitives.ClampCenter(kfs[i].Center, kfs[i].Zoom)
		}
	}
	sort.Slice(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })

	var deduped []timeline.TransformKeyframe
	for _, k := range kfs {
		if len(deduped) > 0 && k.Time-deduped[len(deduped)-1].Time < keyframeDedupeWindow {
			continue
		}
		deduped = append(deduped, k)
	}
	return deduped
}
