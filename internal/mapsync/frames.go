package mapsync

import (
	"sync"
	"time"
)

// FrameHandle cancels a requested frame.
type FrameHandle interface {
	Cancel()
}

// FrameScheduler runs a callback on the next animation frame.
type FrameScheduler interface {
	RequestFrame(f func()) FrameHandle
}

// TickerFrames delivers frames at a fixed interval using timers.
type TickerFrames struct {
	Interval time.Duration
}

func (t TickerFrames) RequestFrame(f func()) FrameHandle {
	return &timerHandle{t: time.AfterFunc(t.Interval, f)}
}

type timerHandle struct {
	once sync.Once
	t    *time.Timer
}

func (h *timerHandle) Cancel() {
	h.once.Do(func() { h.t.Stop() })
}
