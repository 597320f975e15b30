package recording

import "sync/atomic"

// FrameChannelCapacity bounds the single-producer/single-consumer frame
// queue linking capture to the encoder thread (spec.md §4.G).
const FrameChannelCapacity = 120

// CapturedFrame is the producer-side frame payload pushed into the queue.
type CapturedFrame struct {
	Data      []byte
	Width     int
	Height    int
	Stride    int
	Timestamp float64
}

// frameQueue wraps a buffered channel with an atomic drop counter: on a full
// queue, the newest frame is dropped rather than blocking the producer.
type frameQueue struct {
	ch      chan CapturedFrame
	dropped int64
}

func newFrameQueue(capacity int) *frameQueue {
	return &frameQueue{ch: make(chan CapturedFrame, capacity)}
}

// TryPush attempts a non-blocking enqueue; returns false (and increments the
// drop counter) if the queue is full.
func (q *frameQueue) TryPush(f CapturedFrame) bool {
	select {
	case q.ch <- f:
		return true
	default:
		atomic.AddInt64(&q.dropped, 1)
		return false
	}
}

func (q *frameQueue) Dropped() int64 { return atomic.LoadInt64(&q.dropped) }

func (q *frameQueue) Close() { close(q.ch) }
