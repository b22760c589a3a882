package runner

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/internal/form"
	"github.com/marcus/intake/internal/store"
)

func testDef() *form.Definition {
	return &form.Definition{
		ID:    "visit",
		Title: "Visit intake",
		Sections: []form.Section{{
			Title: "Basics",
			Fields: []form.Field{
				{ID: "name", Label: "Full name", Kind: form.KindText, Required: true},
				{ID: "reason", Label: "Reason for visit", Kind: form.KindText},
				{ID: "consent", Label: "Consent", Kind: form.KindConfirm, Help: "I agree"},
			},
		}},
	}
}

func newTestModel(t *testing.T, st *store.Store) Model {
	t.Helper()
	m, err := NewModel(Options{Definition: testDef(), Store: st})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	t.Cleanup(m.fc.Stop)
	return apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, _ := m.Update(msg)
	out, ok := nm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", nm)
	}
	return out
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = apply(t, m, key(string(r)))
	}
	return m
}

func TestNewModelRegistersWithoutFocus(t *testing.T) {
	m := newTestModel(t, nil)

	if got := m.fc.CurrentFocus(); got != "" {
		t.Errorf("nothing should be focused at startup, got %q", got)
	}

	els := m.fc.ElementsInScope(focus.DefaultScopeID, true)
	if len(els) != 3 {
		t.Fatalf("expected 3 registered elements, got %d", len(els))
	}
	if els[0].ID != "name" || els[1].ID != "reason" || els[2].ID != "consent" {
		t.Errorf("unexpected order: %s, %s, %s", els[0].ID, els[1].ID, els[2].ID)
	}
	if req, _ := els[0].Metadata["required"].(bool); !req {
		t.Error("name should carry required metadata")
	}
}

func TestNewModelRejectsInvalidDefinition(t *testing.T) {
	def := testDef()
	def.Sections[0].Fields[0].Kind = "slider"
	if _, err := NewModel(Options{Definition: def}); err == nil {
		t.Fatal("expected error for unknown field kind")
	}
}

func TestTabMovesFocusAndSyncsWidgets(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("tab"))
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Fatalf("after tab: focus %q, want name", got)
	}
	if !m.widgets["name"].focused {
		t.Error("name widget should be focused")
	}

	m = apply(t, m, key("tab"))
	if got := m.fc.CurrentFocus(); got != "reason" {
		t.Fatalf("after second tab: focus %q, want reason", got)
	}
	if m.widgets["name"].focused {
		t.Error("name widget should have been blurred")
	}
	if !m.widgets["reason"].focused {
		t.Error("reason widget should be focused")
	}

	m = apply(t, m, key("shift+tab"))
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Errorf("after shift+tab: focus %q, want name", got)
	}
}

func TestUndoRedo(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("tab"))
	m = apply(t, m, key("tab"))

	m = apply(t, m, key("ctrl+z"))
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Errorf("after undo: focus %q, want name", got)
	}

	m = apply(t, m, key("ctrl+y"))
	if got := m.fc.CurrentFocus(); got != "reason" {
		t.Errorf("after redo: focus %q, want reason", got)
	}
}

func TestEnterAdvances(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("enter"))
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Fatalf("enter from nothing should focus first field, got %q", got)
	}

	m = apply(t, m, key("enter"))
	if got := m.fc.CurrentFocus(); got != "reason" {
		t.Errorf("enter should advance, got %q", got)
	}
}

func TestSubmitBlockedOnMissingRequired(t *testing.T) {
	m := newTestModel(t, nil)

	// Walk to the last field without filling anything
	m = apply(t, m, key("tab"))
	m = apply(t, m, key("tab"))
	m = apply(t, m, key("tab"))
	if got := m.fc.CurrentFocus(); got != "consent" {
		t.Fatalf("setup: focus %q, want consent", got)
	}

	m = apply(t, m, key("enter"))
	if m.dialog != nil {
		t.Fatal("dialog should not open with a required field empty")
	}
	if msg, isErr := m.statusLine(); !isErr || msg == "" {
		t.Errorf("expected error status, got %q (err=%v)", msg, isErr)
	}
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Errorf("focus should jump to the missing field, got %q", got)
	}
}

func TestSubmitFlow(t *testing.T) {
	st := openTestStore(t)
	m := newTestModel(t, st)

	m = apply(t, m, key("tab"))
	m = typeString(t, m, "Ada")
	m = apply(t, m, key("tab"))
	m = apply(t, m, key("tab"))
	m = apply(t, m, key(" ")) // check consent

	m = apply(t, m, key("enter"))
	if m.dialog == nil {
		t.Fatal("submit dialog should be open")
	}
	if !m.fc.IsModalOpen() {
		t.Error("coordinator should have a modal scope open")
	}

	m.View() // collect the dialog's focus order
	m = apply(t, m, key("enter"))

	if m.ResponseID == 0 {
		t.Fatal("expected a saved response id")
	}
	responses, err := st.ListResponses("visit")
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responses))
	}
	if responses[0].Values["name"] != "Ada" {
		t.Errorf("name: got %q, want Ada", responses[0].Values["name"])
	}
	if responses[0].Values["consent"] != "yes" {
		t.Errorf("consent: got %q, want yes", responses[0].Values["consent"])
	}

	// Submission clears the draft
	draft, err := st.LoadDraft("visit")
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if len(draft) != 0 {
		t.Errorf("draft should be cleared after submit, got %v", draft)
	}
}

func TestDialogCancelClosesModalScope(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("tab"))
	m = typeString(t, m, "Ada")
	m = apply(t, m, key("tab"))
	m = apply(t, m, key("tab"))
	m = apply(t, m, key("enter"))
	if m.dialog == nil {
		t.Fatal("setup: dialog should be open")
	}

	m = apply(t, m, key("esc"))
	if m.dialog != nil {
		t.Error("esc should close the dialog")
	}
	if m.fc.IsModalOpen() {
		t.Error("esc should close the modal scope")
	}
}

func TestDraftLoadsIntoWidgets(t *testing.T) {
	st := openTestStore(t)
	if err := st.SaveDraft("visit", map[string]string{
		"name":    "Grace",
		"consent": "yes",
	}); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	m := newTestModel(t, st)
	if got := m.widgets["name"].Value(); got != "Grace" {
		t.Errorf("name: got %q, want Grace", got)
	}
	if !m.widgets["consent"].checked {
		t.Error("consent should be restored checked")
	}
}

func TestPaletteJump(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("ctrl+p"))
	if m.pal == nil {
		t.Fatal("palette should be open")
	}
	if m.fc.ScopeDepth() != 2 {
		t.Errorf("palette should push a scope, depth %d", m.fc.ScopeDepth())
	}

	m = typeString(t, m, "full")
	if len(m.pal.matches) != 1 || m.pal.matches[0].id != "name" {
		t.Fatalf("expected single match on name, got %+v", m.pal.matches)
	}

	m = apply(t, m, key("enter"))
	if m.pal != nil {
		t.Error("palette should close on jump")
	}
	if m.fc.ScopeDepth() != 1 {
		t.Errorf("palette scope should pop, depth %d", m.fc.ScopeDepth())
	}
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Errorf("focus %q, want name", got)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := newTestModel(t, nil)

	m = apply(t, m, key("ctrl+p"))
	m = apply(t, m, key("esc"))
	if m.pal != nil {
		t.Error("esc should close the palette")
	}
	if m.fc.ScopeDepth() != 1 {
		t.Errorf("scope depth %d, want 1", m.fc.ScopeDepth())
	}
}

func clickAt(t *testing.T, m Model, regionID string) Model {
	t.Helper()
	m.View() // rebuild hit regions
	for _, r := range m.mh.HitMap.Regions() {
		if r.ID == regionID {
			return apply(t, m, tea.MouseMsg{
				X:      r.Rect.X + r.Rect.W/2,
				Y:      r.Rect.Y,
				Action: tea.MouseActionPress,
				Button: tea.MouseButtonLeft,
			})
		}
	}
	t.Fatalf("no hit region %q", regionID)
	return m
}

func TestMouseClickFocusesField(t *testing.T) {
	m := newTestModel(t, nil)

	m = clickAt(t, m, "field:name")
	if got := m.fc.CurrentFocus(); got != "name" {
		t.Errorf("focus %q, want name", got)
	}
	if m.fc.NavigationMode() != focus.ModeHybrid {
		t.Errorf("click from keyboard mode should go hybrid, got %s", m.fc.NavigationMode())
	}
}

func TestMouseClickPastRequiredIsRejected(t *testing.T) {
	m := newTestModel(t, nil)

	m = clickAt(t, m, "field:reason")
	if got := m.fc.CurrentFocus(); got != "" {
		t.Errorf("rejected jump should not move focus, got %q", got)
	}
	if got := m.fc.InvalidMarker(); got != "reason" {
		t.Errorf("expected invalid marker on reason, got %q", got)
	}
}

func TestViewRendersFormContent(t *testing.T) {
	m := newTestModel(t, nil)

	out := m.View()
	for _, want := range []string{"Visit intake", "Full name", "Reason for visit", "Consent"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
