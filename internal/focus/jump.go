package focus

import "context"

// CanJumpToNode decides whether a pointer-initiated direct jump to id is
// permitted. The element must be registered, focusable, and pass its
// validator. Beyond that, the jump succeeds when the element allows
// direct jumps, when hybrid mode recognizes it as previously visited, or
// when every required predecessor in tab order has been visited.
func (c *Coordinator) CanJumpToNode(ctx context.Context, id string) bool {
	ok, _ := c.checkJump(ctx, id)
	return ok
}

func (c *Coordinator) checkJump(ctx context.Context, id string) (bool, failReason) {
	c.mu.Lock()
	el, exists := c.st.elements[id]
	if !exists {
		c.mu.Unlock()
		return false, failNotFound
	}
	if !el.CanFocus {
		c.mu.Unlock()
		return false, failCannotFocus
	}
	validator := el.Validator
	c.mu.Unlock()

	if !c.runValidator(ctx, id, validator) {
		return false, failValidation
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	el, exists = c.st.elements[id]
	if !exists {
		return false, failNotFound
	}
	if el.Mouse != nil && el.Mouse.AllowDirectJump {
		return true, ""
	}
	if c.st.mode == ModeHybrid && c.st.visited(id) {
		return true, ""
	}
	// Sequential discipline: every earlier required element in the same
	// scope must already have been visited.
	for _, prev := range c.st.orderedElements(el.ScopeID, false) {
		if prev.ID == id {
			break
		}
		if prev.required() && !c.st.visited(prev.ID) {
			return false, failOrder
		}
	}
	return true, ""
}

// visited reports whether an element appears in the focus history or in
// a valid recorded mouse interaction.
func (st *state) visited(id string) bool {
	for i := range st.history {
		if st.history[i].ElementID == id {
			return true
		}
	}
	for i := range st.mouseLog {
		if st.mouseLog[i].ElementID == id && st.mouseLog[i].WasValid {
			return true
		}
	}
	return false
}

// HandleMouseNavigation processes a pointer click on an element. The
// interaction is always recorded, valid or not. An invalid jump flashes
// a transient marker and notifies OnInvalidJump instead of moving focus.
// A valid jump focuses the element, then applies its click-advance
// behavior after a short delay and invokes its click handler.
func (c *Coordinator) HandleMouseNavigation(ctx context.Context, id string, x, y int) bool {
	c.HandleClick()

	valid, reason := c.checkJump(ctx, id)

	c.mu.Lock()
	c.dispatch(tRecordMouse{mi: MouseInteraction{
		ElementID: id,
		Timestamp: now(),
		X:         x,
		Y:         y,
		WasValid:  valid,
	}})
	mode := c.st.mode
	var mouseCfg *MouseNavigation
	if el, ok := c.st.elements[id]; ok {
		mouseCfg = el.Mouse
	}
	c.mu.Unlock()

	if !valid {
		c.notifyInvalidJump(id, reason)
		return false
	}
	if mode != ModeMouse && mode != ModeHybrid {
		return false
	}
	if !c.focusField(ctx, id, ReasonMouse, focusOpts{record: true}) {
		return false
	}

	if mouseCfg != nil {
		switch mouseCfg.ClickAdvance {
		case AdvanceNext:
			c.sched.schedule(keyAdvance, advanceDelay, func() {
				c.FocusNext(context.Background())
			})
		case AdvanceTo:
			target := mouseCfg.ClickAdvanceTarget
			if target != "" {
				c.sched.schedule(keyAdvance, advanceDelay, func() {
					c.FocusField(context.Background(), target, ReasonMouse)
				})
			}
		}
		if mouseCfg.OnClick != nil {
			mouseCfg.OnClick(id)
		}
	}
	return true
}

// notifyInvalidJump emits the cancellable invalid-jump notification and,
// unless cancelled, applies the transient visual-invalid marker.
func (c *Coordinator) notifyInvalidJump(id string, reason failReason) {
	if c.OnInvalidJump != nil {
		if !c.OnInvalidJump(InvalidJump{ElementID: id, Reason: reason}) {
			return
		}
	}
	c.mu.Lock()
	c.dispatch(tSetInvalidMark{id: id})
	c.mu.Unlock()
	c.sched.schedule(keyInvalid, invalidDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.st.invalidMarkID == id {
			c.dispatch(tSetInvalidMark{id: ""})
		}
	})
}

// MouseInteractions returns a copy of the recent pointer interaction
// log, oldest first.
func (c *Coordinator) MouseInteractions() []MouseInteraction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MouseInteraction, len(c.st.mouseLog))
	copy(out, c.st.mouseLog)
	return out
}
