package focus

import "sort"

// Register adds an element to the registry. The registration ordinal is
// stamped here; CanFocus defaults to true unless Disabled is set on the
// ElementSpec. ScopeID defaults to the
// active scope. Registration never moves focus.
func (c *Coordinator) Register(spec ElementSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	el := &Element{
		ID:               spec.ID,
		Node:             spec.Node,
		Type:             spec.Type,
		ScopeID:          spec.ScopeID,
		TabIndex:         spec.TabIndex,
		CanFocus:         !spec.Disabled,
		SkipInNavigation: spec.SkipInNavigation,
		AutoFocus:        spec.AutoFocus,
		Validator:        spec.Validator,
		Mouse:            spec.Mouse,
		Indicator:        spec.Indicator,
		Metadata:         spec.Metadata,
		registeredAt:     c.seq,
	}
	if el.Type == "" {
		el.Type = TypeCustom
	}
	if el.ScopeID == "" {
		el.ScopeID = c.st.activeScope().ID
	}
	c.dispatch(tRegister{el: el})
}

// ElementSpec describes an element at registration time.
type ElementSpec struct {
	ID               string
	Node             Node
	Type             ElementType
	ScopeID          string
	TabIndex         int
	Disabled         bool
	SkipInNavigation bool
	AutoFocus        bool
	Validator        Validator
	Mouse            *MouseNavigation
	Indicator        *VisualIndicator
	Metadata         map[string]any
}

// Unregister removes an element. History entries referencing it remain;
// they become dangling and harmless. A pending deferred restoration to it
// resolves to a no-op.
func (c *Coordinator) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(tUnregister{id: id})
}

// Update applies a partial patch to a registered element. Updating an
// unknown id is a no-op, not an error.
func (c *Coordinator) Update(id string, patch ElementPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(tUpdate{id: id, patch: patch})
}

// Lookup returns a copy of the registered element, if any.
func (c *Coordinator) Lookup(id string) (Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.st.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// ElementsInScope returns the ordered navigable elements of a scope.
// Elements with SkipInNavigation are excluded unless includeSkipped.
func (c *Coordinator) ElementsInScope(scopeID string, includeSkipped bool) []Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	ordered := c.st.orderedElements(scopeID, includeSkipped)
	out := make([]Element, len(ordered))
	for i, el := range ordered {
		out[i] = *el
	}
	return out
}

// CanFocusElement reports whether an element is registered, focusable,
// and backed by a live node. It does not run validators.
func (c *Coordinator) CanFocusElement(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.st.elements[id]
	return ok && el.CanFocus && el.nodeAlive()
}

// orderedElements returns a scope's elements sorted by the navigation
// ordering rule: explicit positive TabIndex ascending first, then
// registration order. The sort is stable so equal tab indexes keep
// insertion order.
func (st *state) orderedElements(scopeID string, includeSkipped bool) []*Element {
	var els []*Element
	for _, el := range st.elements {
		if el.ScopeID != scopeID {
			continue
		}
		if el.SkipInNavigation && !includeSkipped {
			continue
		}
		els = append(els, el)
	}
	sort.Slice(els, func(i, j int) bool {
		return orderLess(els[i].TabIndex, els[j].TabIndex, els[i].registeredAt, els[j].registeredAt)
	})
	return els
}

// orderLess implements the navigation ordering rule: explicit positive
// tab indexes ascending ahead of unset ones, registration order as the
// tie-break.
func orderLess(aTab, bTab int, aOrd, bOrd uint64) bool {
	switch {
	case aTab > 0 && bTab > 0:
		if aTab != bTab {
			return aTab < bTab
		}
		return aOrd < bOrd
	case aTab > 0:
		return true
	case bTab > 0:
		return false
	default:
		return aOrd < bOrd
	}
}
