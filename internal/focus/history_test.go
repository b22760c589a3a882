package focus

import (
	"fmt"
	"testing"
)

func TestHistoryBounded(t *testing.T) {
	c := New(WithMaxHistory(5))
	for i := 0; i < 8; i++ {
		registerPlain(c, fmt.Sprintf("f%d", i))
	}
	for i := 0; i < 8; i++ {
		c.FocusField(ctx(), fmt.Sprintf("f%d", i), ReasonKeyboard)
	}

	h := c.History()
	if len(h) != 5 {
		t.Fatalf("history length = %d, want 5", len(h))
	}
	// Oldest entries dropped, newest kept.
	if h[0].ElementID != "f3" || h[4].ElementID != "f7" {
		t.Errorf("window = [%s..%s], want [f3..f7]", h[0].ElementID, h[4].ElementID)
	}
}

func TestUndoRedo(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	registerPlain(c, "b")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.FocusField(ctx(), "b", ReasonKeyboard)

	if !c.UndoFocus(ctx()) {
		t.Fatal("undo should succeed")
	}
	if c.CurrentFocus() != "a" {
		t.Errorf("after undo focus = %q, want a", c.CurrentFocus())
	}
	if !c.RedoFocus(ctx()) {
		t.Fatal("redo should succeed")
	}
	if c.CurrentFocus() != "b" {
		t.Errorf("after redo focus = %q, want b", c.CurrentFocus())
	}
}

func TestUndoAtStartFails(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	c.FocusField(ctx(), "a", ReasonKeyboard)

	if c.UndoFocus(ctx()) {
		t.Error("undo at the start of the log should fail")
	}
	if c.RedoFocus(ctx()) {
		t.Error("redo at the end of the log should fail")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	c := New()
	if c.UndoFocus(ctx()) || c.RedoFocus(ctx()) {
		t.Error("undo/redo on empty history should fail")
	}
}

func TestUndoDoesNotAppend(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	registerPlain(c, "b")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.FocusField(ctx(), "b", ReasonKeyboard)

	c.UndoFocus(ctx())
	if n := len(c.History()); n != 2 {
		t.Errorf("undo appended to history: length = %d, want 2", n)
	}
	if c.HistoryIndex() != 0 {
		t.Errorf("cursor = %d, want 0", c.HistoryIndex())
	}
}

func TestAppendAfterUndoTruncatesRedoBranch(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	registerPlain(c, "b")
	registerPlain(c, "c")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.FocusField(ctx(), "b", ReasonKeyboard)
	c.UndoFocus(ctx())

	// Fresh focus change discards the redo branch (b) before appending.
	c.FocusField(ctx(), "c", ReasonKeyboard)

	h := c.History()
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if h[0].ElementID != "a" || h[1].ElementID != "c" {
		t.Errorf("history = [%s, %s], want [a, c]", h[0].ElementID, h[1].ElementID)
	}
	if c.RedoFocus(ctx()) {
		t.Error("redo should fail after branch truncation")
	}
}

func TestUndoToUnregisteredElementFails(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	registerPlain(c, "b")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.FocusField(ctx(), "b", ReasonKeyboard)
	c.Unregister("a")

	if c.UndoFocus(ctx()) {
		t.Error("undo to a dangling entry should fail, not panic")
	}
	if c.CurrentFocus() != "b" {
		t.Error("failed undo must leave focus unchanged")
	}
}

func TestClearHistory(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.ClearHistory()

	if len(c.History()) != 0 {
		t.Error("history not cleared")
	}
	if c.HistoryIndex() != -1 {
		t.Errorf("cursor = %d, want -1", c.HistoryIndex())
	}
	if c.UndoFocus(ctx()) {
		t.Error("undo after clear should fail")
	}
}

func TestUndoUsesProgrammaticReason(t *testing.T) {
	c := New()
	registerPlain(c, "a")
	registerPlain(c, "b")
	c.FocusField(ctx(), "a", ReasonKeyboard)
	c.FocusField(ctx(), "b", ReasonKeyboard)
	c.UndoFocus(ctx())

	// The replay itself does not append, so the reason is observable
	// only through the unchanged log; assert the log still carries the
	// original reasons.
	for _, e := range c.History() {
		if e.Reason != ReasonKeyboard {
			t.Errorf("entry reason = %q, want keyboard", e.Reason)
		}
	}
}
