// Package focus coordinates keyboard- and pointer-driven focus movement
// across a registered set of interactive elements.
//
// The coordinator owns the element registry, a scope/modal stack, a bounded
// focus history with undo/redo, a navigation-mode detector, and the
// validation logic for pointer jumps. It never renders anything and never
// focuses an element on its own initiative: focus changes only through an
// explicit navigation call. Scope creation, registration, and AutoFocus
// flags are all inert with respect to focus.
package focus

import (
	"log/slog"
	"sync"
	"time"
)

// now is swapped out in tests.
var now = time.Now

// Default bounds and delays.
const (
	DefaultMaxHistory = 50
	maxMouseLog       = 10

	restoreDelay  = 50 * time.Millisecond
	advanceDelay  = 50 * time.Millisecond
	dropdownDelay = 50 * time.Millisecond
	invalidDelay  = 300 * time.Millisecond
	modeDecay     = 3000 * time.Millisecond
)

// Scheduler keys. One pending action per key; a newer schedule supersedes.
const (
	keyRestore  = "restore"
	keyAdvance  = "advance"
	keyDropdown = "dropdown"
	keyMode     = "mode"
	keyInvalid  = "invalid"
)

// InvalidJump describes a rejected pointer jump passed to OnInvalidJump.
type InvalidJump struct {
	ElementID string
	Reason    failReason
}

// Coordinator is the focus coordinator. Construct with New; a zero
// Coordinator is not usable. All methods are safe for concurrent use,
// though the intended model is one UI goroutine plus the coordinator's
// own deferred timers.
type Coordinator struct {
	mu    sync.Mutex
	st    state
	sched *scheduler
	log   *slog.Logger

	// gen increments on every focus-relevant mutation; a validator
	// completing against an older generation is discarded.
	gen uint64
	// seq stamps registration order.
	seq uint64

	wrap bool

	// pointer tracks the last recorded pointer position for the mode
	// detector's jitter threshold.
	pointer pointerState

	// OnInvalidJump, when set, is notified of rejected pointer jumps.
	// Returning false cancels the transient invalid marker.
	OnInvalidJump func(InvalidJump) bool
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithLogger sets the coordinator's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithMaxHistory overrides the focus history bound.
func WithMaxHistory(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.st.maxHistory = n
		}
	}
}

// WithWrap controls wrap-around for sequential navigation. Default true.
func WithWrap(wrap bool) Option {
	return func(c *Coordinator) { c.wrap = wrap }
}

// New creates a coordinator with the protected default scope already on
// the stack. Nothing is focused.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		st: state{
			elements:     make(map[string]*Element),
			scopes:       []Scope{{ID: DefaultScopeID, Type: ScopeDefault, CreatedAt: now()}},
			historyIndex: -1,
			maxHistory:   DefaultMaxHistory,
			maxMouseLog:  maxMouseLog,
			mode:         ModeKeyboard,
			enabled:      true,
		},
		sched: newScheduler(),
		wrap:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Stop cancels all pending deferred actions. Call when the owning UI
// tree unmounts. The coordinator is still usable afterward but nothing
// deferred survives the call.
func (c *Coordinator) Stop() {
	c.sched.stopAll()
}

// dispatch applies a named transition. Caller must hold c.mu.
func (c *Coordinator) dispatch(t transition) {
	c.gen++
	c.st.apply(t)
	if c.st.debug {
		c.log.Debug("focus transition", "name", t.name(), "focus", c.st.currentFocusID, "scope", c.st.activeScope().ID)
	}
}

// debugf logs when debug mode is on. Caller must hold c.mu.
func (c *Coordinator) debugf(msg string, args ...any) {
	if c.st.debug {
		c.log.Debug(msg, args...)
	}
}

// SetEnabled turns the coordinator on or off. While disabled every
// navigation call is a no-op returning false.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(tSetEnabled{enabled: enabled})
}

// Enabled reports whether the coordinator is accepting navigation calls.
func (c *Coordinator) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.enabled
}

// SetDebug toggles per-transition debug logging.
func (c *Coordinator) SetDebug(debug bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.debug = debug
}

// CurrentFocus returns the id of the focused element, empty when nothing
// is focused.
func (c *Coordinator) CurrentFocus() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.currentFocusID
}

// InvalidMarker returns the id of the element currently flashing the
// invalid-jump marker, empty when none.
func (c *Coordinator) InvalidMarker() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.invalidMarkID
}
