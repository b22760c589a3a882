package runner

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/intake/internal/form"
)

// View implements tea.Model. Hit regions are rebuilt on every render
// so they always match what is on screen.
func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}

	m.mh.Clear()
	ctx := context.Background()

	if m.dialog != nil {
		// Dialog owns the whole screen while open; its regions are the
		// only clickable ones.
		return m.dialog.Render(m.width, m.height, m.mh)
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.def.Title))
	mode := modeStyle.Render(string(m.fc.NavigationMode()))
	pad := m.width - lipgloss.Width(m.def.Title) - lipgloss.Width(mode)
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(mode)
	sb.WriteString("\n")

	sb.WriteString(renderStepper(m.fc.VisibleSteps(ctx), m.width, 1, m.mh.HitMap))
	sb.WriteString("\n\n")
	y := 3

	current := m.fc.CurrentFocus()
	invalid := m.fc.InvalidMarker()

	for _, sec := range m.def.Sections {
		if sec.Title != "" {
			header := sectionStyle.Render(sec.Title)
			sb.WriteString(header)
			sb.WriteString("\n")
			y += lipgloss.Height(header)
		}
		for _, f := range sec.Fields {
			w := m.widgets[f.ID]
			block := m.renderField(w, f.ID == current, f.ID == invalid)
			h := lipgloss.Height(block)
			m.mh.HitMap.AddRect("field:"+f.ID, 0, y, m.width, h, f.ID)
			sb.WriteString(block)
			sb.WriteString("\n")
			y += h
		}
	}

	sb.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			sb.WriteString(statusErrStyle.Render(m.statusMsg))
		} else {
			sb.WriteString(statusStyle.Render(m.statusMsg))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("tab: next · enter: advance · ctrl+z/y: undo/redo · ctrl+p: jump · ctrl+s: save · ctrl+c: quit"))

	out := sb.String()

	if m.pal != nil {
		// Palette floats below the header; clicks go nowhere while open
		m.mh.Clear()
		overlay := m.pal.view(m.width)
		lines := strings.Split(out, "\n")
		keep := min(len(lines), 2)
		out = strings.Join(lines[:keep], "\n") + "\n\n" + overlay
	}

	return out
}

func (m Model) renderField(w *fieldWidget, focused, invalid bool) string {
	var sb strings.Builder

	label := w.def.Label
	if label == "" {
		label = w.def.ID
	}
	ls := labelStyle
	if focused {
		ls = labelFocusedStyle
	}
	sb.WriteString(ls.Render(label))
	if w.def.Required {
		sb.WriteString(requiredStyle.Render(" *"))
	}
	sb.WriteString("\n")

	switch w.def.Kind {
	case form.KindMultiline:
		sb.WriteString(w.area.View())

	case form.KindSelect:
		if w.open {
			for i, opt := range w.def.Options {
				if i > 0 {
					sb.WriteString("\n")
				}
				if i == w.choice {
					sb.WriteString(optionSelectedStyle.Render("> " + opt))
				} else {
					sb.WriteString(optionStyle.Render("  " + opt))
				}
			}
		} else {
			v := w.Value()
			if v == "" {
				sb.WriteString(helpStyle.Render("(choose one)"))
			} else {
				sb.WriteString(optionStyle.Render(v))
			}
		}

	case form.KindCombobox:
		sb.WriteString(w.input.View())
		if w.open {
			for i, opt := range w.def.Options {
				sb.WriteString("\n")
				if i == w.choice {
					sb.WriteString(optionSelectedStyle.Render("> " + opt))
				} else {
					sb.WriteString(optionStyle.Render("  " + opt))
				}
			}
		}

	case form.KindConfirm:
		box := "[ ]"
		if w.checked {
			box = "[x]"
		}
		sb.WriteString(optionStyle.Render(box + " " + w.def.Help))

	default:
		sb.WriteString(w.input.View())
	}

	if focused && w.def.Help != "" && w.def.Kind != form.KindConfirm {
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render(w.def.Help))
	}

	style := fieldStyle
	if invalid {
		style = fieldInvalidStyle
	} else if focused {
		style = fieldFocusedStyle
	}
	return style.Render(sb.String())
}

// statusLine is exposed for tests.
func (m Model) statusLine() (string, bool) {
	return m.statusMsg, m.statusErr
}
