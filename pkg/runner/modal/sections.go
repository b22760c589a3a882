package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// textSection renders static, auto-wrapped text.
type textSection struct {
	text string
}

// Text creates a static text section, wrapped to the modal width.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

// spacerSection renders a blank line.
type spacerSection struct{}

// Spacer creates a blank-line section.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: ""}
}

func (spacerSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

// ButtonDef describes one button in a Buttons section.
type ButtonDef struct {
	Label  string
	Action string
	danger bool
}

// BtnOption configures a button.
type BtnOption func(*ButtonDef)

// Btn creates a button with the given label and action ID.
func Btn(label, action string, opts ...BtnOption) ButtonDef {
	b := ButtonDef{Label: label, Action: action}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BtnDanger styles the button as destructive.
func BtnDanger() BtnOption {
	return func(b *ButtonDef) { b.danger = true }
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a horizontal button row. Each button is a focusable
// whose ID is its action.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	offsetX := 0

	for i, b := range s.buttons {
		style := Button
		switch {
		case b.danger && focusID == b.Action:
			style = ButtonDangerFocused
		case b.danger && hoverID == b.Action:
			style = ButtonDangerHover
		case b.danger:
			style = ButtonDanger
		case focusID == b.Action:
			style = ButtonFocused
		case hoverID == b.Action:
			style = ButtonHover
		}

		rendered := style.Render(b.Label)
		if i > 0 {
			offsetX += 2 // gap
		}
		w := lipgloss.Width(rendered)
		focusables = append(focusables, FocusableInfo{
			ID:      b.Action,
			OffsetX: offsetX,
			OffsetY: 0,
			Width:   w,
			Height:  1,
		})
		offsetX += w
		parts = append(parts, rendered)
	}

	return RenderedSection{
		Content:    strings.Join(parts, "  "),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	key := keyMsg.String()
	if key != "enter" && key != " " {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.Action == focusID {
			return b.Action, nil
		}
	}
	return "", nil
}

// checkboxSection renders a toggleable checkbox bound to an external bool.
type checkboxSection struct {
	id      string
	label   string
	checked *bool
}

// Checkbox creates a checkbox section. The checked pointer lets the
// caller read the state after the dialog closes.
func Checkbox(id, label string, checked *bool) Section {
	return &checkboxSection{id: id, label: label, checked: checked}
}

func (s *checkboxSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	box := "[ ]"
	if s.checked != nil && *s.checked {
		box = "[x]"
	}
	line := box + " " + s.label
	style := Body
	if focusID == s.id {
		style = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	} else if hoverID == s.id {
		style = lipgloss.NewStyle().Foreground(Primary)
	}
	return RenderedSection{
		Content: style.Render(line),
		Focusables: []FocusableInfo{{
			ID: s.id, Width: lipgloss.Width(line), Height: 1,
		}},
	}
}

func (s *checkboxSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.checked == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		*s.checked = !*s.checked
	}
	return "", nil
}

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithInputLabel renders a label line above the input.
func WithInputLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

// inputSection wraps a bubbles textinput.
type inputSection struct {
	id    string
	model *textinput.Model
	label string
}

// Input creates a single-line text input section around an external
// textinput model, so the caller keeps ownership of the value.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inputSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if focusID == s.id && !s.model.Focused() {
		s.model.Focus()
	} else if focusID != s.id && s.model.Focused() {
		s.model.Blur()
	}

	content := s.model.View()
	offsetY := 0
	if s.label != "" {
		content = MutedText.Render(s.label) + "\n" + content
		offsetY = 1
	}
	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: 1,
		}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Let the modal handle these
		switch keyMsg.String() {
		case "enter", "tab", "shift+tab", "esc":
			return "", nil
		}
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

// whenSection renders its inner section only while the condition holds.
type whenSection struct {
	condition func() bool
	inner     Section
}

// When wraps a section in a condition evaluated at render time.
func When(condition func() bool, inner Section) Section {
	return &whenSection{condition: condition, inner: inner}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.condition() {
		return RenderedSection{Content: ""}
	}
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.condition() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

// customSection is an escape hatch for content the built-ins cannot
// express.
type customSection struct {
	render func(contentWidth int, focusID, hoverID string) RenderedSection
	update func(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Custom creates a section from raw render and update functions.
// updateFn may be nil.
func Custom(
	renderFn func(contentWidth int, focusID, hoverID string) RenderedSection,
	updateFn func(msg tea.Msg, focusID string) (string, tea.Cmd),
) Section {
	return &customSection{render: renderFn, update: updateFn}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.render(contentWidth, focusID, hoverID)
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}
