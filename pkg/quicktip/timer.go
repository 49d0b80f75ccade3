package quicktip

import "time"

// Clock schedules the dispatcher's timers.
type Clock interface {
	Now() time.Time

	// AfterFunc calls f once d has elapsed, on the goroutine that drives
	// the dispatcher.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call. It reports whether the call was still pending.
	Stop() bool
}

// SystemClock uses the time package. Its callbacks run on their own
// goroutine, so it only suits hosts that serialize access themselves.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type timerKind uint8

const (
	timerNone timerKind = iota
	timerShow
	timerHide
	timerDismiss
)

func (k timerKind) String() string {
	switch k {
	case timerShow:
		return "show"
	case timerHide:
		return "hide"
	case timerDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// timerSlot holds at most one outstanding timer. Arming a slot cancels
// whatever it held, and a cancelled timer's callback never runs even if it
// was already queued when Stop was called.
type timerSlot struct {
	clock  Clock
	kind   timerKind
	handle Timer
	gen    uint64
}

func (s *timerSlot) arm(kind timerKind, d time.Duration, fn func()) {
	s.cancel()
	gen := s.gen
	s.kind = kind
	s.handle = s.clock.AfterFunc(d, func() {
		if s.gen != gen {
			return
		}
		s.kind, s.handle = timerNone, nil
		s.gen++
		fn()
	})
}

func (s *timerSlot) cancel() {
	if s.handle != nil {
		s.handle.Stop()
	}
	s.kind, s.handle = timerNone, nil
	s.gen++
}

func (s *timerSlot) pending() timerKind {
	return s.kind
}
