package focus

import (
	"context"
	"sync"
	"time"
)

// fakeNode is an in-memory Node implementation for tests.
type fakeNode struct {
	alive   bool
	focused int
}

func (n *fakeNode) Alive() bool { return n.alive }
func (n *fakeNode) Focus()      { n.focused++ }

func liveNode() *fakeNode { return &fakeNode{alive: true} }

// fakeCombo is a combobox node whose dropdown open is observable.
type fakeCombo struct {
	fakeNode
	opened int
}

func (n *fakeCombo) Open() { n.opened++ }

// fakeComposite wraps a nested input node.
type fakeComposite struct {
	fakeNode
	inner *fakeNode
}

func (n *fakeComposite) InnerInput() Node {
	if n.inner == nil {
		return nil
	}
	return n.inner
}

// fakeTimers replaces the scheduler's timer factory so tests fire
// deferred actions deterministically.
type fakeTimers struct {
	mu   sync.Mutex
	seen []fakeTimer
}

type fakeTimer struct {
	d  time.Duration
	fn func()
}

func installFakeTimers(c *Coordinator) *fakeTimers {
	ft := &fakeTimers{}
	c.sched.after = func(d time.Duration, fn func()) *time.Timer {
		ft.mu.Lock()
		ft.seen = append(ft.seen, fakeTimer{d: d, fn: fn})
		ft.mu.Unlock()
		// Real timer far in the future so Stop has something to stop.
		return time.AfterFunc(time.Hour, func() {})
	}
	return ft
}

// fireLast runs the most recently scheduled action.
func (ft *fakeTimers) fireLast() {
	ft.mu.Lock()
	if len(ft.seen) == 0 {
		ft.mu.Unlock()
		return
	}
	fn := ft.seen[len(ft.seen)-1].fn
	ft.mu.Unlock()
	fn()
}

// fireAll runs every scheduled action in order. Superseded actions are
// no-ops by scheduler design.
func (ft *fakeTimers) fireAll() {
	ft.mu.Lock()
	seen := ft.seen
	ft.seen = nil
	ft.mu.Unlock()
	for _, t := range seen {
		t.fn()
	}
}

func (ft *fakeTimers) count() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.seen)
}

// registerPlain registers a focusable element with a live node.
func registerPlain(c *Coordinator, id string) *fakeNode {
	n := liveNode()
	c.Register(ElementSpec{ID: id, Node: n, Type: TypeInput})
	return n
}

func ctx() context.Context { return context.Background() }

func passValidator(context.Context) (bool, error) { return true, nil }
func failValidator(context.Context) (bool, error) { return false, nil }
