package focus

import "testing"

func TestScopeStackNeverDropsBelowOne(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.PopScope()
	}
	if c.ScopeDepth() != 1 {
		t.Fatalf("depth = %d, want 1", c.ScopeDepth())
	}
	if c.CurrentScope().ID != DefaultScopeID {
		t.Errorf("active scope = %q, want default", c.CurrentScope().ID)
	}
}

func TestPushMakesScopeActive(t *testing.T) {
	c := New()
	c.PushScope(Scope{ID: "wizard", Type: ScopeCustom})
	if c.CurrentScope().ID != "wizard" {
		t.Errorf("active = %q, want wizard", c.CurrentScope().ID)
	}
	if !c.PopScope() {
		t.Error("pop of a non-root scope should succeed")
	}
	if c.CurrentScope().ID != DefaultScopeID {
		t.Errorf("active = %q, want default after pop", c.CurrentScope().ID)
	}
}

func TestPushAutoFocusIsInert(t *testing.T) {
	c := New()
	registerPlain(c, "ready")
	c.PushScope(Scope{ID: "eager", Type: ScopeCustom, AutoFocus: true})
	registerPlain(c, "inside")

	if got := c.CurrentFocus(); got != "" {
		t.Errorf("AutoFocus moved focus to %q; the flag must never be acted on", got)
	}
}

func TestPopSchedulesDeferredRestore(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	registerPlain(c, "origin")
	c.FocusField(ctx(), "origin", ReasonKeyboard)

	c.PushScope(Scope{ID: "dlg", Type: ScopeCustom, RestoreFocusTo: "origin"})
	registerPlain(c, "inner")
	c.FocusField(ctx(), "inner", ReasonKeyboard)

	c.PopScope()
	if c.CurrentFocus() != "inner" {
		t.Fatal("restore must be deferred, not immediate")
	}
	ft.fireLast()
	if c.CurrentFocus() != "origin" {
		t.Errorf("restore landed on %q, want origin", c.CurrentFocus())
	}
}

func TestDeferredRestoreToUnregisteredIsNoOp(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	registerPlain(c, "origin")
	c.FocusField(ctx(), "origin", ReasonKeyboard)

	c.PushScope(Scope{ID: "dlg", Type: ScopeCustom, RestoreFocusTo: "origin"})
	registerPlain(c, "inner")
	c.FocusField(ctx(), "inner", ReasonKeyboard)
	c.PopScope()

	c.Unregister("origin")
	ft.fireLast()
	if c.CurrentFocus() != "inner" {
		t.Errorf("restore to an unregistered element should be a no-op, focus = %q", c.CurrentFocus())
	}
}

func TestOnCloseFiresBeforePop(t *testing.T) {
	c := New()
	var depthDuringClose int
	c.PushScope(Scope{ID: "dlg", Type: ScopeCustom, OnClose: func() {
		depthDuringClose = c.ScopeDepth()
	}})
	c.PopScope()

	if depthDuringClose != 2 {
		t.Errorf("OnClose observed depth %d, want 2 (before the pop applies)", depthDuringClose)
	}
	if c.ScopeDepth() != 1 {
		t.Errorf("depth after pop = %d, want 1", c.ScopeDepth())
	}
}

func TestNewerRestoreSupersedesPending(t *testing.T) {
	c := New()
	ft := installFakeTimers(c)
	registerPlain(c, "a")
	registerPlain(c, "b")
	c.FocusField(ctx(), "a", ReasonKeyboard)

	c.PushScope(Scope{ID: "s1", Type: ScopeCustom, RestoreFocusTo: "a"})
	c.PopScope()
	c.PushScope(Scope{ID: "s2", Type: ScopeCustom, RestoreFocusTo: "b"})
	c.PopScope()

	ft.fireAll()
	if c.CurrentFocus() != "b" {
		t.Errorf("superseded restore ran; focus = %q, want b", c.CurrentFocus())
	}
}
