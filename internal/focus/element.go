package focus

import (
	"context"
	"time"
)

// ElementType categorizes a registered element for navigation behavior.
// Combobox elements get a deferred dropdown-open after focus.
type ElementType string

const (
	TypeInput    ElementType = "input"
	TypeSelect   ElementType = "select"
	TypeTextarea ElementType = "textarea"
	TypeButton   ElementType = "button"
	TypeLink     ElementType = "link"
	TypeCombobox ElementType = "combobox"
	TypeCustom   ElementType = "custom"
)

// Reason records what initiated a focus change.
type Reason string

const (
	ReasonKeyboard     Reason = "keyboard"
	ReasonMouse        Reason = "mouse"
	ReasonProgrammatic Reason = "programmatic"
)

// Node is a non-owning handle to the rendered widget backing an element.
// The coordinator never creates or destroys the widget; it only observes
// liveness and requests focus. Implementations must tolerate being called
// after the widget has been torn down.
type Node interface {
	// Alive reports whether the underlying widget still exists.
	Alive() bool
	// Focus asks the widget to take platform focus.
	Focus()
}

// InputHolder is implemented by composite widgets that wrap a nested
// input-like widget. The coordinator focuses the inner input when present.
type InputHolder interface {
	InnerInput() Node
}

// Opener is implemented by combobox-style widgets whose dropdown can be
// opened after focus lands.
type Opener interface {
	Open()
}

// Validator is a capability supplied by the registering collaborator.
// It reports whether the element may currently receive focus. It may block;
// the coordinator releases its lock while a validator runs.
type Validator func(ctx context.Context) (bool, error)

// ClickAdvance selects what happens after a valid pointer jump lands.
type ClickAdvance string

const (
	AdvanceNone ClickAdvance = "none"
	AdvanceNext ClickAdvance = "next"
	AdvanceTo   ClickAdvance = "target"
)

// MouseNavigation configures pointer behavior for an element.
type MouseNavigation struct {
	// AllowDirectJump permits pointer jumps to this element regardless of
	// required-predecessor completion.
	AllowDirectJump bool
	// ClickAdvance is applied after a short delay once a valid click lands.
	ClickAdvance ClickAdvance
	// ClickAdvanceTarget names the element focused when ClickAdvance is
	// AdvanceTo.
	ClickAdvanceTarget string
	// OnClick, if set, runs after a valid click has been handled.
	OnClick func(id string)
}

// VisualIndicator controls how an element appears in the step indicator.
type VisualIndicator struct {
	ShowInStepper bool
	Label         string
	Description   string
}

// Element is a registered candidate for focus.
type Element struct {
	ID   string
	Node Node
	Type ElementType
	// ScopeID names the scope the element belongs to. Defaults to the
	// active scope at registration time. May reference a scope that has
	// since been popped; such elements are unreachable for navigation.
	ScopeID string
	// TabIndex orders the element explicitly when positive. Zero means
	// "unset": ordering falls back to registration order.
	TabIndex int
	CanFocus bool
	// SkipInNavigation excludes the element from sequential navigation.
	SkipInNavigation bool
	// AutoFocus is accepted for registrant compatibility and never acted
	// on. Focus moves only through explicit navigation calls.
	AutoFocus bool
	Validator Validator
	Mouse     *MouseNavigation
	Indicator *VisualIndicator
	Metadata  map[string]any

	// registeredAt is a monotonic counter stamped at registration,
	// used as the ordering tie-break.
	registeredAt uint64
}

// RegisteredAt exposes the registration ordinal for introspection.
func (e *Element) RegisteredAt() uint64 { return e.registeredAt }

// required reports whether the element is marked required in metadata.
func (e *Element) required() bool {
	if e.Metadata == nil {
		return false
	}
	switch v := e.Metadata["required"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// nodeAlive reports whether the element's node handle is usable.
func (e *Element) nodeAlive() bool {
	return e.Node != nil && e.Node.Alive()
}

// focusTarget resolves the node that should receive platform focus:
// the first nested input-like descendant for composites, otherwise the
// element's own node.
func (e *Element) focusTarget() Node {
	if h, ok := e.Node.(InputHolder); ok {
		if inner := h.InnerInput(); inner != nil && inner.Alive() {
			return inner
		}
	}
	return e.Node
}

// ElementPatch is a partial update applied to a registered element.
// Nil fields leave the current value unchanged.
type ElementPatch struct {
	Node             Node
	ScopeID          *string
	TabIndex         *int
	CanFocus         *bool
	SkipInNavigation *bool
	Validator        *Validator
	Mouse            **MouseNavigation
	Indicator        **VisualIndicator
	Metadata         map[string]any
}

// HistoryEntry records one completed focus transition.
type HistoryEntry struct {
	ElementID         string
	ScopeID           string
	Reason            Reason
	Timestamp         time.Time
	PreviousElementID string
	Context           string
}

// MouseInteraction records one pointer jump attempt, valid or not.
type MouseInteraction struct {
	ElementID string
	Timestamp time.Time
	X, Y      int
	WasValid  bool
}
