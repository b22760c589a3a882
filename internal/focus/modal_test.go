package focus

import "testing"

func TestOpenCloseModalRestoresFocus(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	registerPlain(c, "field")
	c.FocusField(ctx(), "field", ReasonKeyboard)

	c.OpenModal("confirm", ModalOptions{CloseOnEscape: true})
	if !c.IsModalOpen() {
		t.Fatal("modal should be open")
	}
	if c.CurrentScope().ID != "confirm" || !c.CurrentScope().TrapFocus {
		t.Error("modal scope should be active and trapping")
	}
	if c.CurrentFocus() != "field" {
		t.Error("opening a modal must not move focus")
	}

	if !c.CloseModal() {
		t.Fatal("close should succeed")
	}
	if c.IsModalOpen() {
		t.Error("modal should be closed")
	}
	ft.fireLast()
	if c.CurrentFocus() != "field" {
		t.Errorf("focus = %q, want pre-open value field", c.CurrentFocus())
	}
}

func TestCloseModalWithoutModal(t *testing.T) {
	c := New()
	if c.CloseModal() {
		t.Error("CloseModal with no modal open should fail")
	}
	if c.ScopeDepth() != 1 {
		t.Error("scope stack disturbed")
	}
}

func TestNestedModalsLIFO(t *testing.T) {
	c := New()
	installFakeTimers(c)
	c.OpenModal("outer", ModalOptions{})
	c.OpenModal("inner", ModalOptions{})

	if c.CurrentScope().ID != "inner" {
		t.Fatalf("active = %q, want inner", c.CurrentScope().ID)
	}
	c.CloseModal()
	if c.CurrentScope().ID != "outer" {
		t.Errorf("active = %q, want outer after closing inner", c.CurrentScope().ID)
	}
	if !c.IsModalOpen() {
		t.Error("outer modal should still be open")
	}
	c.CloseModal()
	if c.IsModalOpen() || c.ScopeDepth() != 1 {
		t.Error("all modals should be closed")
	}
}

func TestHandleEscapeClosesTopModal(t *testing.T) {
	c := New()
	installFakeTimers(c)
	c.OpenModal("dlg", ModalOptions{CloseOnEscape: true})

	if !c.HandleEscape() {
		t.Fatal("escape should be consumed")
	}
	if c.IsModalOpen() {
		t.Error("modal should have closed")
	}
}

func TestHandleEscapeHonorsDisabledOption(t *testing.T) {
	c := New()
	c.OpenModal("dlg", ModalOptions{CloseOnEscape: false})

	if c.HandleEscape() {
		t.Error("escape should not close a modal that disables it")
	}
	if !c.IsModalOpen() {
		t.Error("modal must stay open")
	}
}

func TestHandleEscapeWithoutModal(t *testing.T) {
	c := New()
	if c.HandleEscape() {
		t.Error("escape with no modal should not be consumed")
	}
}

func TestHandleTabTrapsInModalScope(t *testing.T) {
	c := New()
	registerPlain(c, "outside")
	c.OpenModal("dlg", ModalOptions{})
	registerPlain(c, "in1")
	registerPlain(c, "in2")
	c.FocusField(ctx(), "in1", ReasonKeyboard)

	if !c.HandleTab(ctx(), false) {
		t.Fatal("tab should be intercepted while trapping")
	}
	if c.CurrentFocus() != "in2" {
		t.Errorf("focus = %q, want in2", c.CurrentFocus())
	}
	// Wraps inside the trap instead of escaping to "outside".
	c.HandleTab(ctx(), false)
	if c.CurrentFocus() != "in1" {
		t.Errorf("trap escaped to %q", c.CurrentFocus())
	}
	if !c.HandleTab(ctx(), true) || c.CurrentFocus() != "in2" {
		t.Errorf("shift+tab landed on %q, want in2", c.CurrentFocus())
	}
}

func TestHandleTabPassThroughWithoutTrap(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	if c.HandleTab(ctx(), false) {
		t.Error("tab should not be intercepted when the active scope does not trap")
	}
}
