// Package modal provides declarative modal dialogs with automatic hit
// region management for mouse support.
//
// Dialogs are built from stacked sections and rendered with a
// render-then-measure pattern, so clickable regions always match what
// is on screen. Keyboard navigation (Tab/Shift+Tab, Enter, Esc) comes
// for free.
//
//	m := modal.New("Submit intake?", modal.WithVariant(modal.VariantInfo)).
//	    AddSection(modal.Text("Responses will be saved and the draft cleared.")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Submit ", "submit"),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/intake/pkg/runner/mouse"
)

// Variant selects the dialog's visual style.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// FocusableInfo locates one focusable control inside a rendered
// section, relative to the section's top-left corner.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is a section's rendered content plus the focusable
// controls it contains.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one stacked block of a modal dialog.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	// Update feeds an event to the section. A non-empty return is an
	// action ID the caller should act on.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Option configures a modal at construction time.
type Option func(*Modal)

// WithWidth sets the modal width in cells (default 50).
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the visual style.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line at the bottom.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned for a plain Enter press
// when the focused control does not consume it.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithCloseOnBackdropClick makes clicks outside the dialog return
// "cancel" from HandleClick.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// Modal is a stacked-section dialog.
type Modal struct {
	title           string
	sections        []Section
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool

	focusID    string
	hoverID    string
	focusOrder []string
}

// New creates a modal with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		width:     50,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// FocusID returns the ID of the focused control, if any.
func (m *Modal) FocusID() string {
	return m.focusID
}

// SetFocus moves modal-internal focus to the given control ID.
func (m *Modal) SetFocus(id string) {
	m.focusID = id
}

// SetHover updates the hovered control ID, usually from a mouse motion
// event resolved through the hit map.
func (m *Modal) SetHover(id string) {
	m.hoverID = id
}

func (m *Modal) borderColor() lipgloss.Color {
	switch m.variant {
	case VariantDanger:
		return Error
	case VariantWarning:
		return Warning
	case VariantInfo:
		return Info
	default:
		return BorderNormal
	}
}

// Render draws the dialog centered in screenW x screenH and registers
// hit regions for every focusable control on the mouse handler. The
// handler may be nil when mouse support is off.
func (m *Modal) Render(screenW, screenH int, mh *mouse.Handler) string {
	contentWidth := m.width - 4 // border + padding on each side

	var body strings.Builder
	body.WriteString(ModalTitle.Render(m.title))
	body.WriteString("\n\n")
	lineOffset := 2

	type placed struct {
		info FocusableInfo
		y    int
	}
	var controls []placed
	m.focusOrder = m.focusOrder[:0]

	for i, s := range m.sections {
		rendered := s.Render(contentWidth, m.focusID, m.hoverID)
		if i > 0 {
			// Terminates the previous section's last line; the next
			// section starts at lineOffset as already counted
			body.WriteString("\n")
		}
		body.WriteString(rendered.Content)

		for _, f := range rendered.Focusables {
			controls = append(controls, placed{info: f, y: lineOffset + f.OffsetY})
			m.focusOrder = append(m.focusOrder, f.ID)
		}
		lineOffset += lipgloss.Height(rendered.Content)
	}

	// Default focus to the first control
	if m.focusID == "" && len(m.focusOrder) > 0 {
		m.focusID = m.focusOrder[0]
	}

	if m.showHints {
		body.WriteString("\n\n")
		body.WriteString(MutedText.Render("tab: next · enter: select · esc: close"))
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor()).
		Background(BgSecondary).
		Padding(0, 1).
		Width(m.width - 2).
		Render(body.String())

	frameW := lipgloss.Width(frame)
	frameH := lipgloss.Height(frame)
	modalX := max(0, (screenW-frameW)/2)
	modalY := max(0, (screenH-frameH)/2)

	if mh != nil {
		// Border plus padding offset content by one cell each
		contentX := modalX + 2
		contentY := modalY + 1
		mh.HitMap.AddRect("modal", modalX, modalY, frameW, frameH, nil)
		for _, c := range controls {
			mh.HitMap.AddRect(c.info.ID, contentX+c.info.OffsetX, contentY+c.y, c.info.Width, c.info.Height, nil)
		}
	}

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, frame)
}

// HandleKey processes a key event. A non-empty action means the caller
// should respond (button action, list selection, or "cancel" for Esc).
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil
	case "tab":
		m.cycleFocus(1)
		return "", nil
	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil
	}

	for _, s := range m.sections {
		if action, cmd := s.Update(msg, m.focusID); action != "" || cmd != nil {
			return action, cmd
		}
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		return m.primaryAction, nil
	}
	return "", nil
}

// HandleClick resolves a click against the regions registered by the
// last Render. Clicking a control focuses it and returns its ID as the
// action; a backdrop click returns "cancel" when enabled.
func (m *Modal) HandleClick(region *mouse.Region) string {
	if region == nil {
		if m.closeOnBackdrop {
			return "cancel"
		}
		return ""
	}
	if region.ID == "modal" {
		return ""
	}
	m.focusID = region.ID
	return region.ID
}

func (m *Modal) cycleFocus(dir int) {
	if len(m.focusOrder) == 0 {
		return
	}
	idx := -1
	for i, id := range m.focusOrder {
		if id == m.focusID {
			idx = i
			break
		}
	}
	idx += dir
	if idx < 0 {
		idx = len(m.focusOrder) - 1
	} else if idx >= len(m.focusOrder) {
		idx = 0
	}
	m.focusID = m.focusOrder[idx]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
