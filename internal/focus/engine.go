package focus

import "context"

// focusOpts controls internal focus behavior. History recording is
// suppressed when undo/redo replays an entry.
type focusOpts struct {
	record bool
}

// FocusField moves focus to the element with the given id. It fails (and
// leaves all state unchanged) when the element is unregistered, its node
// handle is stale, or its validator rejects. On success the focus change
// is appended to history and, for combobox elements, a deferred dropdown
// open is scheduled.
func (c *Coordinator) FocusField(ctx context.Context, id string, reason Reason) bool {
	return c.focusField(ctx, id, reason, focusOpts{record: true})
}

func (c *Coordinator) focusField(ctx context.Context, id string, reason Reason, opts focusOpts) bool {
	c.mu.Lock()
	if !c.st.enabled {
		c.debugf("focus rejected", "id", id, "reason", failDisabled)
		c.mu.Unlock()
		return false
	}
	el, ok := c.st.elements[id]
	if !ok || !el.nodeAlive() {
		c.debugf("focus rejected", "id", id, "reason", failNotFound)
		c.mu.Unlock()
		return false
	}
	if !el.CanFocus {
		c.debugf("focus rejected", "id", id, "reason", failCannotFocus)
		c.mu.Unlock()
		return false
	}
	validator := el.Validator
	gen := c.gen
	c.mu.Unlock()

	// The validator runs without the lock; its verdict only counts if no
	// focus-relevant mutation happened meanwhile.
	if !c.runValidator(ctx, id, validator) {
		return false
	}

	c.mu.Lock()
	if c.gen != gen {
		// State moved while the validator was pending; the verdict is
		// stale and must not mutate newer state.
		c.debugf("focus dropped, state changed during validation", "id", id)
		c.mu.Unlock()
		return false
	}
	el, ok = c.st.elements[id]
	if !ok || !el.nodeAlive() {
		c.mu.Unlock()
		return false
	}
	target := el.focusTarget()
	isCombobox := el.Type == TypeCombobox || el.Type == TypeSelect
	c.dispatch(tFocus{id: id, reason: reason, record: opts.record})
	c.mu.Unlock()

	target.Focus()

	if isCombobox {
		c.scheduleDropdownOpen(id)
	}
	return true
}

// runValidator executes a validator capability, converting errors and
// panics into a ValidationFailed verdict. A nil validator passes.
func (c *Coordinator) runValidator(ctx context.Context, id string, v Validator) (ok bool) {
	if v == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("validator panicked", "id", id, "panic", r)
			ok = false
		}
	}()
	pass, err := v(ctx)
	if err != nil {
		c.mu.Lock()
		c.debugf("validator error", "id", id, "err", err, "reason", failValidation)
		c.mu.Unlock()
		return false
	}
	return pass
}

// scheduleDropdownOpen defers the dropdown open so the focus change has
// settled before the widget expands. The open is skipped if focus moved
// on or the node went stale meanwhile.
func (c *Coordinator) scheduleDropdownOpen(id string) {
	c.sched.schedule(keyDropdown, dropdownDelay, func() {
		c.mu.Lock()
		el, ok := c.st.elements[id]
		if !ok || c.st.currentFocusID != id || !el.nodeAlive() {
			c.mu.Unlock()
			return
		}
		opener, isOpener := el.Node.(Opener)
		c.mu.Unlock()
		if isOpener {
			opener.Open()
		}
	})
}

// FocusNext moves focus to the next valid element in the active scope,
// skipping candidates whose validators reject. Returns false when no
// candidate is eligible or wrap-around is disabled and the end is
// reached.
func (c *Coordinator) FocusNext(ctx context.Context) bool {
	return c.step(ctx, +1)
}

// FocusPrevious moves focus to the previous valid element in the active
// scope.
func (c *Coordinator) FocusPrevious(ctx context.Context) bool {
	return c.step(ctx, -1)
}

func (c *Coordinator) step(ctx context.Context, dir int) bool {
	ids, start := c.scopeOrder()
	if len(ids) == 0 {
		return false
	}
	idx := start
	if idx == -1 && dir < 0 {
		// Nothing focused: previous starts from the end.
		idx = len(ids)
	}
	for tries := 0; tries < len(ids); tries++ {
		idx += dir
		if idx >= len(ids) || idx < 0 {
			if !c.wrap {
				c.mu.Lock()
				c.debugf("navigation stopped at boundary", "reason", failNoCandidate)
				c.mu.Unlock()
				return false
			}
			idx = (idx + len(ids)) % len(ids)
		}
		if c.FocusField(ctx, ids[idx], ReasonKeyboard) {
			return true
		}
	}
	return false
}

// FocusFirst focuses the first valid element of the active scope,
// scanning forward past rejecting candidates.
func (c *Coordinator) FocusFirst(ctx context.Context) bool {
	ids, _ := c.scopeOrder()
	for _, id := range ids {
		if c.FocusField(ctx, id, ReasonKeyboard) {
			return true
		}
	}
	return false
}

// FocusLast focuses the last valid element of the active scope, scanning
// backward.
func (c *Coordinator) FocusLast(ctx context.Context) bool {
	ids, _ := c.scopeOrder()
	for i := len(ids) - 1; i >= 0; i-- {
		if c.FocusField(ctx, ids[i], ReasonKeyboard) {
			return true
		}
	}
	return false
}

// scopeOrder returns the active scope's navigable element ids and the
// index of the currently focused element within them (-1 when the focus
// is elsewhere or unset).
func (c *Coordinator) scopeOrder() ([]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	els := c.st.orderedElements(c.st.activeScope().ID, false)
	ids := make([]string, len(els))
	cur := -1
	for i, el := range els {
		ids[i] = el.ID
		if el.ID == c.st.currentFocusID {
			cur = i
		}
	}
	return ids, cur
}
