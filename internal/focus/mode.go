package focus

// Mode is the inferred input modality. It is advisory state for the jump
// validator and UI affordances; it never blocks navigation.
type Mode string

const (
	ModeKeyboard Mode = "keyboard"
	ModeMouse    Mode = "mouse"
	ModeHybrid   Mode = "hybrid"
)

// pointerMoveThreshold is the pixel/cell delta below which pointer motion
// is ignored as jitter.
const pointerMoveThreshold = 5

// navigationKeys are the key names that count as keyboard-navigation
// activity for mode detection.
var navigationKeys = map[string]bool{
	"tab":       true,
	"shift+tab": true,
	"enter":     true,
	" ":         true,
	"space":     true,
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
	"esc":       true,
	"escape":    true,
}

// detector state lives on the coordinator so mode transitions go through
// the same dispatch path as everything else.
type pointerState struct {
	x, y  int
	valid bool
}

// HandlePointerMove feeds raw pointer motion into the mode detector.
// Motion beyond the jitter threshold pulls KEYBOARD into HYBRID and
// (re)arms the decay timer that settles HYBRID into MOUSE.
func (c *Coordinator) HandlePointerMove(x, y int) {
	c.mu.Lock()
	moved := !c.pointer.valid ||
		abs(x-c.pointer.x) > pointerMoveThreshold ||
		abs(y-c.pointer.y) > pointerMoveThreshold
	c.pointer = pointerState{x: x, y: y, valid: true}
	if !moved {
		c.mu.Unlock()
		return
	}
	if c.st.mode == ModeKeyboard {
		c.dispatch(tSetMode{mode: ModeHybrid})
	}
	c.mu.Unlock()

	// Only one decay timer is ever armed; pointer activity supersedes a
	// pending keyboard decay and vice versa.
	c.sched.schedule(keyMode, modeDecay, func() {
		c.settleMode(ModeMouse)
	})
}

// HandleKeyDown feeds a key press into the mode detector. Only
// navigation-relevant keys count. A key press pulls MOUSE into HYBRID
// and (re)arms the decay timer that settles HYBRID into KEYBOARD.
func (c *Coordinator) HandleKeyDown(key string) {
	if !navigationKeys[key] {
		return
	}
	c.mu.Lock()
	if c.st.mode == ModeMouse {
		c.dispatch(tSetMode{mode: ModeHybrid})
	}
	c.mu.Unlock()

	c.sched.schedule(keyMode, modeDecay, func() {
		c.settleMode(ModeKeyboard)
	})
}

// HandleClick feeds a pointer click into the mode detector. A click
// while in KEYBOARD mode moves directly to HYBRID.
func (c *Coordinator) HandleClick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.mode == ModeKeyboard {
		c.dispatch(tSetMode{mode: ModeHybrid})
	}
}

// settleMode resolves HYBRID to the given mode after uninterrupted
// inactivity on the other input channel.
func (c *Coordinator) settleMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.mode == ModeHybrid {
		c.dispatch(tSetMode{mode: m})
	}
}

// NavigationMode returns the current inferred input modality.
func (c *Coordinator) NavigationMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.mode
}

// SetNavigationMode overrides the inferred modality.
func (c *Coordinator) SetNavigationMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(tSetMode{mode: m})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
