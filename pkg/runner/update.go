package runner

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/pkg/runner/modal"
	"github.com/marcus/intake/pkg/runner/mouse"
)

// draftSavedMsg reports the result of a background draft save.
type draftSavedMsg struct {
	err error
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case draftSavedMsg:
		if msg.err != nil {
			m.statusMsg = "draft save failed: " + msg.err.Error()
			m.statusErr = true
			m.log.Warn("draft save failed", "form", m.def.ID, "error", msg.err)
		} else {
			m.statusMsg = "draft saved"
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	key := msg.String()

	m.fc.HandleKeyDown(key)

	if key == "ctrl+c" {
		m.quitting = true
		if m.st != nil {
			_ = m.st.SaveDraft(m.def.ID, m.values())
		}
		m.teardown()
		return m, tea.Quit
	}

	if m.dialog != nil {
		action, cmd := m.dialog.HandleKey(msg)
		return m.handleDialogAction(action, cmd)
	}

	if m.pal != nil {
		return m.handlePaletteKey(msg)
	}

	switch key {
	case "tab", "shift+tab":
		shift := key == "shift+tab"
		if !m.fc.HandleTab(ctx, shift) {
			if shift {
				m.fc.FocusPrevious(ctx)
			} else {
				m.fc.FocusNext(ctx)
			}
		}
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, m.saveDraftCmd()

	case "ctrl+z":
		m.fc.UndoFocus(ctx)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil

	case "ctrl+y":
		m.fc.RedoFocus(ctx)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil

	case "ctrl+p":
		m.openPalette()
		return m, nil

	case "ctrl+s":
		return m, m.saveDraftCmd()
	}

	// Let the focused widget consume typing and dropdown navigation
	if cur := m.fc.CurrentFocus(); cur != "" {
		if w, ok := m.widgets[cur]; ok {
			if consumed, cmd := w.handleKey(msg); consumed {
				return m, cmd
			}
		}
	}

	switch key {
	case "enter":
		return m.advance(ctx)
	case "esc":
		m.fc.HandleEscape()
		return m, nil
	case "down":
		m.fc.FocusNext(ctx)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil
	case "up":
		m.fc.FocusPrevious(ctx)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil
	}

	return m, nil
}

// advance moves to the next field, or opens the submit dialog from the
// last one.
func (m Model) advance(ctx context.Context) (tea.Model, tea.Cmd) {
	cur := m.fc.CurrentFocus()
	if cur == "" {
		m.fc.FocusFirst(ctx)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil
	}

	ordered := m.fc.ElementsInScope(focus.DefaultScopeID, false)
	if len(ordered) > 0 && ordered[len(ordered)-1].ID == cur {
		return m.openSubmitDialog()
	}

	m.fc.FocusNext(ctx)
	m.blurAllExcept(m.fc.CurrentFocus())
	return m, m.saveDraftCmd()
}

func (m Model) openSubmitDialog() (tea.Model, tea.Cmd) {
	if missing := m.missingRequired(); missing != "" {
		label := missing
		if w, ok := m.widgets[missing]; ok && w.def.Label != "" {
			label = w.def.Label
		}
		m.statusMsg = "required: " + label
		m.statusErr = true
		m.fc.FocusField(context.Background(), missing, focus.ReasonProgrammatic)
		m.blurAllExcept(m.fc.CurrentFocus())
		return m, nil
	}

	m.dialog = modal.New("Submit "+m.def.Title+"?", modal.WithVariant(modal.VariantInfo)).
		AddSection(modal.Text("Responses will be saved and the draft cleared.")).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Submit ", "submit"),
			modal.Btn(" Cancel ", "cancel"),
		))
	m.dialogKind = "submit"
	m.fc.OpenModal("confirm-submit", focus.ModalOptions{CloseOnEscape: true})
	return m, nil
}

func (m Model) handleDialogAction(action string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch action {
	case "":
		return m, cmd

	case "cancel":
		m.dialog = nil
		m.dialogKind = ""
		m.fc.CloseModal()
		return m, cmd

	case "submit":
		m.dialog = nil
		m.dialogKind = ""
		m.fc.CloseModal()
		return m.submit()
	}

	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.st != nil {
		id, err := m.st.SaveResponse(m.def.ID, m.values())
		if err != nil {
			m.statusMsg = "submit failed: " + err.Error()
			m.statusErr = true
			m.log.Error("submit failed", "form", m.def.ID, "error", err)
			return m, nil
		}
		m.ResponseID = id
		m.log.Info("response saved", "form", m.def.ID, "response", id)
	}
	m.quitting = true
	m.teardown()
	return m, tea.Quit
}

func (m *Model) openPalette() {
	m.fc.PushScope(focus.Scope{
		ID:             paletteScopeID,
		Type:           focus.ScopeCustom,
		TrapFocus:      true,
		RestoreFocusTo: m.fc.CurrentFocus(),
	})
	m.pal = newPalette(m)
}

func (m *Model) closePalette() {
	m.pal = nil
	m.fc.PopScope()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil

	case "up", "ctrl+k":
		m.pal.moveSelection(-1)
		return m, nil

	case "down", "ctrl+j":
		m.pal.moveSelection(1)
		return m, nil

	case "enter":
		entry := m.pal.current()
		m.closePalette()
		if entry != nil && entry.reachable {
			m.fc.FocusField(context.Background(), entry.id, focus.ReasonProgrammatic)
			m.blurAllExcept(m.fc.CurrentFocus())
		} else if entry != nil {
			m.statusMsg = "cannot jump to " + entry.label + " yet"
			m.statusErr = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pal.query, cmd = m.pal.query.Update(msg)
	m.pal.filter()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	action := m.mh.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionHover:
		m.fc.HandlePointerMove(msg.X, msg.Y)
		if m.dialog != nil {
			if action.Region != nil {
				m.dialog.SetHover(action.Region.ID)
			} else {
				m.dialog.SetHover("")
			}
		}
		return m, nil

	case mouse.ActionClick:
		if m.dialog != nil {
			m.fc.HandleClick()
			return m.handleDialogAction(m.dialog.HandleClick(action.Region), nil)
		}
		if m.pal != nil {
			m.fc.HandleClick()
			return m, nil
		}
		if action.Region == nil {
			// Off-target clicks still count for mode detection
			m.fc.HandleClick()
			return m, nil
		}

		id, _ := action.Region.Data.(string)
		if id == "" {
			m.fc.HandleClick()
			return m, nil
		}
		if m.fc.HandleMouseNavigation(ctx, id, msg.X, msg.Y) {
			m.blurAllExcept(m.fc.CurrentFocus())
			return m, m.saveDraftCmd()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) saveDraftCmd() tea.Cmd {
	if m.st == nil {
		return nil
	}
	st := m.st
	formID := m.def.ID
	vals := m.values()
	return func() tea.Msg {
		return draftSavedMsg{err: st.SaveDraft(formID, vals)}
	}
}
