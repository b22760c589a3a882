package focus

import (
	"context"
	"time"
)

// ScopeType categorizes a navigation scope.
type ScopeType string

const (
	ScopeDefault ScopeType = "default"
	ScopeModal   ScopeType = "modal"
	ScopeCustom  ScopeType = "custom"
)

// DefaultScopeID is the id of the root scope created at construction.
// The root scope is never popped.
const DefaultScopeID = "default"

// Scope is a navigation context. The active scope is always the top of
// the scope stack and limits which elements sequential navigation may
// reach.
type Scope struct {
	ID   string
	Type ScopeType
	// TrapFocus keeps Tab navigation inside the scope while it is active.
	TrapFocus bool
	// AutoFocus is accepted for API compatibility and never acted on.
	AutoFocus bool
	// RestoreFocusTo names the element to refocus when the scope pops.
	// Restoration is deferred, never immediate.
	RestoreFocusTo string
	ParentID       string
	// OnClose fires synchronously before the pop is applied.
	OnClose func()

	CreatedAt time.Time
}

// ModalOptions configures a modal scope pushed via OpenModal.
type ModalOptions struct {
	CloseOnEscape       bool
	CloseOnOutsideClick bool
	PreventScroll       bool
}

// modalEntry pairs a modal scope with its restoration data.
type modalEntry struct {
	scopeID         string
	previousFocusID string
	opts            ModalOptions
}

// PushScope appends a scope and makes it active. Pushing never moves
// focus, regardless of the scope's AutoFocus flag.
func (c *Coordinator) PushScope(s Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.ParentID == "" {
		s.ParentID = c.st.activeScope().ID
	}
	c.dispatch(tPushScope{scope: s})
}

// PopScope removes the active scope. Popping the last remaining scope is
// a protected no-op. If the popped scope declares RestoreFocusTo, a
// deferred focus restoration is scheduled; the scope's OnClose callback
// fires synchronously before the pop is applied.
func (c *Coordinator) PopScope() bool {
	c.mu.Lock()
	if len(c.st.scopes) <= 1 {
		c.debugf("pop rejected", "reason", failScopeProtected)
		c.mu.Unlock()
		return false
	}
	top := c.st.activeScope()
	onClose := top.OnClose
	restoreTo := top.RestoreFocusTo
	c.mu.Unlock()

	if onClose != nil {
		onClose()
	}

	c.mu.Lock()
	// The stack may have changed while OnClose ran; re-check before
	// applying the pop to the same scope.
	if len(c.st.scopes) <= 1 || c.st.activeScope().ID != top.ID {
		c.mu.Unlock()
		return false
	}
	c.dispatch(tPopScope{})
	c.mu.Unlock()

	if restoreTo != "" {
		c.scheduleRestore(restoreTo)
	}
	return true
}

// CurrentScope returns the active scope.
func (c *Coordinator) CurrentScope() Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.st.activeScope()
}

// ScopeDepth returns the current scope stack depth. Always >= 1.
func (c *Coordinator) ScopeDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.st.scopes)
}

// scheduleRestore schedules a deferred focus restoration. A restoration
// whose target has since been unregistered resolves to a no-op. A newer
// restoration supersedes a pending one.
func (c *Coordinator) scheduleRestore(id string) {
	c.sched.schedule(keyRestore, restoreDelay, func() {
		c.focusField(context.Background(), id, ReasonProgrammatic, focusOpts{record: true})
	})
}
