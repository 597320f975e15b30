// Package input implements the recording's input-monitoring side: mouse
// position polling plus click/key hooks, accumulated into an
// InputRecording for the generators package to turn into keyframes
// (spec.md §6, §4.D).
package input

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/opariffazman/lazyrec/internal/logging"
	"github.com/opariffazman/lazyrec/internal/recording"
)

// Error wraps an input-monitor failure.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string { return fmt.Sprintf("input: %s: %v", e.Op, e.Cause) }
func (e *Error) Unwrap() error { return e.Cause }

// InputMonitor is the contract a recording coordinator drives.
type InputMonitor interface {
	StartMonitoring() error
	StopMonitoring() (recording.InputRecording, error)
}

var logger = logging.Named("input")

// PositionPollInterval is how often the cursor location is sampled between
// click/key hook events, independent of the OS event rate.
const PositionPollInterval = 16 * time.Millisecond

// HookMonitor implements InputMonitor atop github.com/robotn/gohook for
// click/key hooks and github.com/go-vgo/robotgo for cursor polling,
// grounded on the teacher's mouse-listener.go.
type HookMonitor struct {
	mu         sync.Mutex
	running    bool
	start      time.Time
	hookEvents chan hook.Event
	pollStop   chan struct{}
	pollDone   chan struct{}

	positions []recording.TimedPosition
	clicks    []recording.TimedClick
	keys      []recording.TimedKey

	pendingDown map[int]downPress
}

type downPress struct {
	time float64
	x, y int16
}

// NewHookMonitor builds an idle input monitor.
func NewHookMonitor() *HookMonitor {
	return &HookMonitor{pendingDown: make(map[int]downPress)}
}

func (m *HookMonitor) StartMonitoring() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return &Error{Op: "start", Cause: fmt.Errorf("already monitoring")}
	}

	m.start = time.Now()
	m.positions = nil
	m.clicks = nil
	m.keys = nil
	m.pendingDown = make(map[int]downPress)

	m.hookEvents = hook.Start()
	m.pollStop = make(chan struct{})
	m.pollDone = make(chan struct{})
	m.running = true

	go m.consumeHookEvents()
	go m.pollCursor()
	return nil
}

func (m *HookMonitor) consumeHookEvents() {
	for ev := range m.hookEvents {
		t := time.Since(m.start).Seconds()
		switch ev.Kind {
		case hook.MouseDown:
			m.mu.Lock()
			m.pendingDown[int(ev.Button)] = downPress{time: t, x: ev.X, y: ev.Y}
			m.mu.Unlock()
		case hook.MouseUp:
			m.mu.Lock()
			if down, ok := m.pendingDown[int(ev.Button)]; ok {
				delete(m.pendingDown, int(ev.Button))
				m.clicks = append(m.clicks, recording.TimedClick{
					Time:     down.time,
					X:        float64(down.x),
					Y:        float64(down.y),
					Button:   buttonName(ev.Button),
					Duration: t - down.time,
				})
			}
			m.mu.Unlock()
		case hook.KeyDown:
			m.mu.Lock()
			m.keys = append(m.keys, recording.TimedKey{
				Time:      t,
				Action:    "down",
				KeyCode:   uint16(ev.Rawcode),
				Char:      keyChar(ev),
				Modifiers: modifiersFromMask(ev.Mask),
			})
			m.mu.Unlock()
		case hook.KeyUp:
			m.mu.Lock()
			m.keys = append(m.keys, recording.TimedKey{
				Time:      t,
				Action:    "up",
				KeyCode:   uint16(ev.Rawcode),
				Char:      keyChar(ev),
				Modifiers: modifiersFromMask(ev.Mask),
			})
			m.mu.Unlock()
		}
	}
}

func (m *HookMonitor) pollCursor() {
	defer close(m.pollDone)
	ticker := time.NewTicker(PositionPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.pollStop:
			return
		case <-ticker.C:
			x, y := robotgo.Location()
			m.mu.Lock()
			m.positions = append(m.positions, recording.TimedPosition{
				Time: time.Since(m.start).Seconds(),
				X:    float64(x),
				Y:    float64(y),
			})
			m.mu.Unlock()
		}
	}
}

func (m *HookMonitor) StopMonitoring() (recording.InputRecording, error) {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return recording.InputRecording{}, nil
	}
	m.running = false
	m.mu.Unlock()

	close(m.pollStop)
	<-m.pollDone

	hook.End()

	m.mu.Lock()
	defer m.mu.Unlock()
	logger.Debug().Int("positions", len(m.positions)).Int("clicks", len(m.clicks)).Int("keys", len(m.keys)).Msg("input monitoring stopped")
	return recording.InputRecording{
		Positions: m.positions,
		Clicks:    m.clicks,
		Keyboard:  m.keys,
	}, nil
}

func buttonName(b uint8) string {
	switch b {
	case 1:
		return "left"
	case 2:
		return "right"
	case 3:
		return "middle"
	default:
		return "left"
	}
}

// keyChar resolves the event's printable character, if any. gohook leaves
// Keychar at its zero value for non-printable keys (arrows, function keys,
// bare modifiers), so those come through as "".
func keyChar(ev hook.Event) string {
	if ev.Keychar == 0 || ev.Keychar == hook.CharUndefined {
		return ""
	}
	return string(ev.Keychar)
}

// modifiersFromMask decodes gohook's Event.Mask bitfield into the
// modifier keys held during the event.
func modifiersFromMask(mask uint16) recording.KeyModifiers {
	return recording.KeyModifiers{
		Command: mask&hook.CmdMask != 0,
		Shift:   mask&hook.ShiftMask != 0,
		Alt:     mask&hook.AltMask != 0,
		Control: mask&hook.CtrlMask != 0,
	}
}
