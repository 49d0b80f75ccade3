package server

import (
	"sync/atomic"
	"time"

	"github.com/vango-dev/quicktip/pkg/quicktip"
)

// loopClock runs dispatcher timers on the session's event loop. The timer
// goroutine only queues the callback; a timer stopped after its callback
// was queued still never runs it.
type loopClock struct {
	s *Session
}

var _ quicktip.Clock = loopClock{}

func (c loopClock) Now() time.Time {
	return time.Now()
}

func (c loopClock) AfterFunc(d time.Duration, f func()) quicktip.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		c.s.Dispatch(func() {
			if t.done.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	done  atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.done.CompareAndSwap(false, true)
}
