package runner

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/internal/form"
)

// fieldWidget is the rendered control backing one form field. It is
// the focus coordinator's Node handle for the field: the coordinator
// observes liveness and requests focus, the widget owns all state.
type fieldWidget struct {
	def form.Field

	input textinput.Model // text, combobox
	area  textarea.Model  // multiline

	choice  int  // select, combobox
	open    bool // dropdown visible
	checked bool // confirm

	focused bool
	removed bool
}

func newFieldWidget(def form.Field) *fieldWidget {
	w := &fieldWidget{def: def, choice: -1}

	switch def.Kind {
	case form.KindMultiline:
		w.area = textarea.New()
		w.area.Placeholder = def.Placeholder
		w.area.SetHeight(4)
		w.area.CharLimit = 0
	default:
		w.input = textinput.New()
		w.input.Placeholder = def.Placeholder
		w.input.Prompt = ""
	}

	return w
}

// Alive implements focus.Node.
func (w *fieldWidget) Alive() bool {
	return !w.removed
}

// Focus implements focus.Node.
func (w *fieldWidget) Focus() {
	w.focused = true
	switch w.def.Kind {
	case form.KindMultiline:
		w.area.Focus()
	default:
		w.input.Focus()
	}
}

// Open implements focus.Opener for select and combobox fields.
func (w *fieldWidget) Open() {
	switch w.def.Kind {
	case form.KindSelect, form.KindCombobox:
		w.open = true
	}
}

func (w *fieldWidget) Blur() {
	w.focused = false
	w.open = false
	w.input.Blur()
	w.area.Blur()
}

// Value returns the field's current value as stored in a draft or
// response payload.
func (w *fieldWidget) Value() string {
	switch w.def.Kind {
	case form.KindMultiline:
		return w.area.Value()
	case form.KindSelect:
		if w.choice >= 0 && w.choice < len(w.def.Options) {
			return w.def.Options[w.choice]
		}
		return ""
	case form.KindConfirm:
		if w.checked {
			return "yes"
		}
		return ""
	default:
		return w.input.Value()
	}
}

// SetValue restores a drafted value into the widget.
func (w *fieldWidget) SetValue(v string) {
	switch w.def.Kind {
	case form.KindMultiline:
		w.area.SetValue(v)
	case form.KindSelect:
		w.choice = -1
		for i, opt := range w.def.Options {
			if opt == v {
				w.choice = i
				break
			}
		}
	case form.KindConfirm:
		w.checked = v == "yes"
	default:
		w.input.SetValue(v)
	}
}

// Filled reports whether the field holds a non-empty value.
func (w *fieldWidget) Filled() bool {
	return w.Value() != ""
}

// handleKey feeds a key event to the focused widget. It returns true
// when the widget consumed the key.
func (w *fieldWidget) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !w.focused {
		return false, nil
	}

	switch w.def.Kind {
	case form.KindSelect, form.KindCombobox:
		if w.open {
			switch msg.String() {
			case "up", "k":
				if w.choice > 0 {
					w.choice--
				}
				return true, nil
			case "down", "j":
				if w.choice < len(w.def.Options)-1 {
					w.choice++
				}
				return true, nil
			case "enter", " ":
				w.open = false
				if w.def.Kind == form.KindCombobox && w.choice >= 0 {
					w.input.SetValue(w.def.Options[w.choice])
				}
				return true, nil
			case "esc":
				w.open = false
				return true, nil
			}
		} else if msg.String() == " " && w.def.Kind == form.KindSelect {
			// Enter stays free for advancing past the field
			w.open = true
			if w.choice < 0 {
				w.choice = 0
			}
			return true, nil
		}
		if w.def.Kind == form.KindCombobox {
			switch msg.String() {
			case "up", "down", "enter", "esc":
				return false, nil
			}
			var cmd tea.Cmd
			w.input, cmd = w.input.Update(msg)
			return true, cmd
		}
		return false, nil

	case form.KindConfirm:
		switch msg.String() {
		case " ", "x":
			w.checked = !w.checked
			return true, nil
		}
		return false, nil

	case form.KindMultiline:
		var cmd tea.Cmd
		w.area, cmd = w.area.Update(msg)
		return true, cmd

	default:
		switch msg.String() {
		case "up", "down", "enter", "esc":
			return false, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return true, cmd
	}
}

func elementType(kind form.FieldKind) focus.ElementType {
	switch kind {
	case form.KindMultiline:
		return focus.TypeTextarea
	case form.KindSelect:
		return focus.TypeSelect
	case form.KindCombobox:
		return focus.TypeCombobox
	case form.KindConfirm:
		return focus.TypeButton
	default:
		return focus.TypeInput
	}
}

func clickAdvance(f form.Field) focus.ClickAdvance {
	switch f.ClickAdvance {
	case form.AdvanceNext:
		return focus.AdvanceNext
	case form.AdvanceTarget:
		return focus.AdvanceTo
	default:
		return focus.AdvanceNone
	}
}
