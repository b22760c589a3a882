package focus

import (
	"fmt"
	"testing"
)

func registerRequired(c *Coordinator, id string) {
	c.Register(ElementSpec{ID: id, Node: liveNode(), Metadata: map[string]any{"required": true}})
}

func TestCanJumpRequiredPredecessors(t *testing.T) {
	c := New()
	registerRequired(c, "f1")
	registerRequired(c, "f2")
	registerPlain(c, "f3")

	if c.CanJumpToNode(ctx(), "f3") {
		t.Fatal("jump past unvisited required predecessors should be rejected")
	}
	c.FocusField(ctx(), "f1", ReasonKeyboard)
	if c.CanJumpToNode(ctx(), "f3") {
		t.Fatal("one required predecessor still unvisited")
	}
	c.FocusField(ctx(), "f2", ReasonKeyboard)
	if !c.CanJumpToNode(ctx(), "f3") {
		t.Error("jump should be permitted once all required predecessors are visited")
	}
}

func TestCanJumpUnregistered(t *testing.T) {
	c := New()
	if c.CanJumpToNode(ctx(), "ghost") {
		t.Error("jump to unregistered element should be rejected")
	}
}

func TestCanJumpRespectsCanFocus(t *testing.T) {
	c := New()
	c.Register(ElementSpec{ID: "locked", Node: liveNode(), Disabled: true})
	if c.CanJumpToNode(ctx(), "locked") {
		t.Error("jump to non-focusable element should be rejected")
	}
}

func TestCanJumpRespectsValidator(t *testing.T) {
	c := New()
	c.Register(ElementSpec{ID: "invalid", Node: liveNode(), Validator: failValidator})
	if c.CanJumpToNode(ctx(), "invalid") {
		t.Error("jump should be rejected when the validator fails")
	}
}

func TestCanJumpAllowDirectJumpBypassesOrder(t *testing.T) {
	c := New()
	registerRequired(c, "f1")
	c.Register(ElementSpec{ID: "free", Node: liveNode(), Mouse: &MouseNavigation{AllowDirectJump: true}})

	if !c.CanJumpToNode(ctx(), "free") {
		t.Error("AllowDirectJump should bypass required-predecessor ordering")
	}
}

func TestCanJumpHybridRevisit(t *testing.T) {
	c := New()
	registerPlain(c, "f1")
	registerRequired(c, "gate")
	registerPlain(c, "f2")

	c.FocusField(ctx(), "f2", ReasonKeyboard)
	c.SetNavigationMode(ModeKeyboard)
	// Fresh jump to f2 would fail the ordering check (gate unvisited),
	// but f2 is in history, so hybrid mode allows revisiting it.
	if c.CanJumpToNode(ctx(), "f2") {
		t.Fatal("keyboard mode should still enforce ordering")
	}
	c.SetNavigationMode(ModeHybrid)
	if !c.CanJumpToNode(ctx(), "f2") {
		t.Error("hybrid mode should permit jumping to a previously visited element")
	}
}

func TestHandleMouseNavigationRecordsInteraction(t *testing.T) {
	c := New()
	c.SetNavigationMode(ModeMouse)
	registerRequired(c, "f1")
	registerPlain(c, "f2")

	c.HandleMouseNavigation(ctx(), "f2", 4, 7)

	log := c.MouseInteractions()
	if len(log) != 1 {
		t.Fatalf("interaction log length = %d, want 1", len(log))
	}
	mi := log[0]
	if mi.ElementID != "f2" || mi.X != 4 || mi.Y != 7 {
		t.Errorf("unexpected interaction: %+v", mi)
	}
	if mi.WasValid {
		t.Error("interaction should be recorded as invalid")
	}
}

func TestHandleMouseNavigationInvalidMarksAndNotifies(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	c.SetNavigationMode(ModeMouse)
	registerRequired(c, "f1")
	registerPlain(c, "f2")

	var notified InvalidJump
	c.OnInvalidJump = func(j InvalidJump) bool {
		notified = j
		return true
	}

	if c.HandleMouseNavigation(ctx(), "f2", 0, 0) {
		t.Fatal("invalid jump should not move focus")
	}
	if c.CurrentFocus() != "" {
		t.Error("focus must be unchanged on invalid jump")
	}
	if notified.ElementID != "f2" {
		t.Errorf("notification for %q, want f2", notified.ElementID)
	}
	if c.InvalidMarker() != "f2" {
		t.Errorf("invalid marker = %q, want f2", c.InvalidMarker())
	}
	ft.fireLast()
	if c.InvalidMarker() != "" {
		t.Error("marker should auto-clear")
	}
}

func TestInvalidJumpNotificationCancellable(t *testing.T) {
	c := New()
	c.SetNavigationMode(ModeMouse)
	registerRequired(c, "f1")
	registerPlain(c, "f2")
	c.OnInvalidJump = func(InvalidJump) bool { return false }

	c.HandleMouseNavigation(ctx(), "f2", 0, 0)
	if c.InvalidMarker() != "" {
		t.Error("cancelled notification should suppress the marker")
	}
}

func TestHandleMouseNavigationValidFocuses(t *testing.T) {
	c := New()
	c.SetNavigationMode(ModeMouse)
	registerPlain(c, "f1")

	if !c.HandleMouseNavigation(ctx(), "f1", 1, 1) {
		t.Fatal("valid jump should succeed")
	}
	if c.CurrentFocus() != "f1" {
		t.Errorf("focus = %q, want f1", c.CurrentFocus())
	}
	log := c.MouseInteractions()
	if len(log) != 1 || !log[0].WasValid {
		t.Error("valid interaction should be recorded as valid")
	}
	h := c.History()
	if len(h) != 1 || h[0].Reason != ReasonMouse {
		t.Errorf("history reason = %v, want mouse", h)
	}
}

func TestClickAdvanceNext(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	c.SetNavigationMode(ModeMouse)
	c.Register(ElementSpec{ID: "f1", Node: liveNode(), Mouse: &MouseNavigation{ClickAdvance: AdvanceNext}})
	registerPlain(c, "f2")

	c.HandleMouseNavigation(ctx(), "f1", 0, 0)
	if c.CurrentFocus() != "f1" {
		t.Fatalf("focus = %q, want f1 before the deferred advance", c.CurrentFocus())
	}
	ft.fireLast()
	if c.CurrentFocus() != "f2" {
		t.Errorf("focus = %q, want f2 after click-advance", c.CurrentFocus())
	}
}

func TestClickAdvanceToTarget(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	c.SetNavigationMode(ModeMouse)
	c.Register(ElementSpec{ID: "f1", Node: liveNode(), Mouse: &MouseNavigation{
		ClickAdvance:       AdvanceTo,
		ClickAdvanceTarget: "f3",
	}})
	registerPlain(c, "f2")
	registerPlain(c, "f3")

	c.HandleMouseNavigation(ctx(), "f1", 0, 0)
	ft.fireLast()
	if c.CurrentFocus() != "f3" {
		t.Errorf("focus = %q, want f3", c.CurrentFocus())
	}
}

func TestClickHandlerInvoked(t *testing.T) {
	c := New()
	c.SetNavigationMode(ModeMouse)
	var clicked string
	c.Register(ElementSpec{ID: "f1", Node: liveNode(), Mouse: &MouseNavigation{
		OnClick: func(id string) { clicked = id },
	}})

	c.HandleMouseNavigation(ctx(), "f1", 0, 0)
	if clicked != "f1" {
		t.Errorf("click handler got %q, want f1", clicked)
	}
}

func TestMouseLogBounded(t *testing.T) {
	c := New()
	c.SetNavigationMode(ModeMouse)
	for i := 0; i < 14; i++ {
		registerPlain(c, fmt.Sprintf("f%d", i))
	}
	for i := 0; i < 14; i++ {
		c.HandleMouseNavigation(ctx(), fmt.Sprintf("f%d", i), i, 0)
	}
	if n := len(c.MouseInteractions()); n != 10 {
		t.Errorf("mouse log length = %d, want 10", n)
	}
}

func TestClickAloneShiftsKeyboardToHybrid(t *testing.T) {
	c := New()
	registerPlain(c, "f1")
	// Starting in keyboard mode, the click itself moves the detector to
	// hybrid before the jump is evaluated.
	c.HandleMouseNavigation(ctx(), "f1", 0, 0)
	if c.NavigationMode() != ModeHybrid {
		t.Errorf("mode = %q, want hybrid", c.NavigationMode())
	}
	if c.CurrentFocus() != "f1" {
		t.Errorf("focus = %q, want f1", c.CurrentFocus())
	}
}
