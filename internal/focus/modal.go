package focus

import "context"

// OpenModal pushes a focus-trapping modal scope and records the current
// focus for restoration on close. Opening a modal never moves focus.
func (c *Coordinator) OpenModal(scopeID string, opts ModalOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := modalEntry{
		scopeID:         scopeID,
		previousFocusID: c.st.currentFocusID,
		opts:            opts,
	}
	c.dispatch(tPushScope{scope: Scope{
		ID:             scopeID,
		Type:           ScopeModal,
		TrapFocus:      true,
		RestoreFocusTo: c.st.currentFocusID,
		ParentID:       c.st.activeScope().ID,
		CreatedAt:      now(),
	}})
	c.dispatch(tPushModal{entry: entry})
}

// CloseModal pops the top modal entry and its scope, then schedules a
// deferred focus restoration to the element focused before the modal
// opened. Returns false when no modal is open.
func (c *Coordinator) CloseModal() bool {
	c.mu.Lock()
	if len(c.st.modals) == 0 {
		c.mu.Unlock()
		return false
	}
	entry := c.st.modals[len(c.st.modals)-1]
	c.dispatch(tPopModal{})
	// The modal scope sits on top of the scope stack in lockstep with
	// the modal stack; pop it unless it is somehow the root.
	if len(c.st.scopes) > 1 && c.st.activeScope().ID == entry.scopeID {
		c.dispatch(tPopScope{})
	}
	c.mu.Unlock()

	if entry.previousFocusID != "" {
		c.scheduleRestore(entry.previousFocusID)
	}
	return true
}

// IsModalOpen reports whether any modal scope is active.
func (c *Coordinator) IsModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.st.modals) > 0
}

// HandleEscape closes the top modal unless its options disable
// close-on-escape. Returns true when the key was consumed.
func (c *Coordinator) HandleEscape() bool {
	c.mu.Lock()
	if len(c.st.modals) == 0 {
		c.mu.Unlock()
		return false
	}
	entry := c.st.modals[len(c.st.modals)-1]
	c.mu.Unlock()
	if !entry.opts.CloseOnEscape {
		return false
	}
	return c.CloseModal()
}

// HandleTab intercepts Tab/Shift+Tab while the active scope traps focus,
// keeping navigation inside the scope. Returns true when the key was
// consumed.
func (c *Coordinator) HandleTab(ctx context.Context, shift bool) bool {
	c.mu.Lock()
	trapped := c.st.activeScope().TrapFocus
	c.mu.Unlock()
	if !trapped {
		return false
	}
	if shift {
		c.FocusPrevious(ctx)
	} else {
		c.FocusNext(ctx)
	}
	return true
}
