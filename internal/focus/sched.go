package focus

import (
	"sync"
	"time"
)

// scheduler runs keyed, cancellable deferred actions. Scheduling a key
// that already has a pending action supersedes it, so there is never more
// than one pending action per logical trigger.
type scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	// after is time.AfterFunc, injectable for tests.
	after func(time.Duration, func()) *time.Timer
}

func newScheduler() *scheduler {
	return &scheduler{
		timers: make(map[string]*time.Timer),
		after:  time.AfterFunc,
	}
}

// schedule runs fn after d, replacing any pending action under the same
// key.
func (s *scheduler) schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = s.after(d, func() {
		s.mu.Lock()
		current := s.timers[key] == t
		if current {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		// A superseded timer may still fire if Stop raced its
		// expiry; it must not run its action.
		if current {
			fn()
		}
	})
	s.timers[key] = t
}

// cancel stops any pending action under key.
func (s *scheduler) cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// stopAll cancels every pending action.
func (s *scheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
