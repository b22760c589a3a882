package focus

import (
	"sync"
	"testing"
	"time"
)

// manualScheduler installs a capture-only timer factory directly on a
// scheduler, mirroring installFakeTimers for coordinator-free tests.
func manualScheduler() (*scheduler, *fakeTimers) {
	s := newScheduler()
	ft := &fakeTimers{}
	s.after = func(d time.Duration, fn func()) *time.Timer {
		ft.mu.Lock()
		ft.seen = append(ft.seen, fakeTimer{d: d, fn: fn})
		ft.mu.Unlock()
		return time.AfterFunc(time.Hour, func() {})
	}
	return s, ft
}

func TestSchedulerRunsAction(t *testing.T) {
	s, ft := manualScheduler()
	ran := false
	s.schedule("k", time.Millisecond, func() { ran = true })
	ft.fireAll()
	if !ran {
		t.Error("scheduled action did not run")
	}
}

func TestSchedulerSupersedesSameKey(t *testing.T) {
	s, ft := manualScheduler()
	var got []int
	s.schedule("k", time.Millisecond, func() { got = append(got, 1) })
	s.schedule("k", time.Millisecond, func() { got = append(got, 2) })
	ft.fireAll()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got %v, want only the superseding action", got)
	}
}

func TestSchedulerIndependentKeys(t *testing.T) {
	s, ft := manualScheduler()
	var mu sync.Mutex
	var got []string
	s.schedule("a", time.Millisecond, func() { mu.Lock(); got = append(got, "a"); mu.Unlock() })
	s.schedule("b", time.Millisecond, func() { mu.Lock(); got = append(got, "b"); mu.Unlock() })
	ft.fireAll()
	if len(got) != 2 {
		t.Errorf("independent keys should both run, got %v", got)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s, ft := manualScheduler()
	ran := false
	s.schedule("k", time.Millisecond, func() { ran = true })
	s.cancel("k")
	ft.fireAll()
	if ran {
		t.Error("cancelled action ran")
	}
}

func TestSchedulerStopAll(t *testing.T) {
	s, ft := manualScheduler()
	ran := 0
	s.schedule("a", time.Millisecond, func() { ran++ })
	s.schedule("b", time.Millisecond, func() { ran++ })
	s.stopAll()
	ft.fireAll()
	if ran != 0 {
		t.Errorf("%d actions ran after stopAll", ran)
	}
}

func TestSchedulerRealTimerFires(t *testing.T) {
	s := newScheduler()
	done := make(chan struct{})
	s.schedule("k", time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}
