// Package form defines intake form schemas: what fields a form has, how
// they are ordered, and which are required. Definitions are plain JSON
// files; the runner registers each field with the focus coordinator.
package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FieldKind selects the widget and focus element type for a field.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindSelect    FieldKind = "select"
	KindCombobox  FieldKind = "combobox"
	KindConfirm   FieldKind = "confirm"
)

// knownKinds guards definition validation.
var knownKinds = map[FieldKind]bool{
	KindText:      true,
	KindMultiline: true,
	KindSelect:    true,
	KindCombobox:  true,
	KindConfirm:   true,
}

// ClickAdvance mirrors the coordinator's click-advance behaviors in the
// schema.
type ClickAdvance string

const (
	AdvanceNone   ClickAdvance = ""
	AdvanceNext   ClickAdvance = "next"
	AdvanceTarget ClickAdvance = "target"
)

// Field is one focusable entry in a form.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Required    bool      `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty"`
	// Options populate select and combobox fields.
	Options []string `json:"options,omitempty"`
	// TabIndex overrides document order when positive.
	TabIndex int `json:"tabIndex,omitempty"`
	// HideInStepper drops the field from the progress sidebar.
	HideInStepper bool `json:"hideInStepper,omitempty"`
	// AllowDirectJump lets pointer clicks reach this field regardless of
	// earlier required fields.
	AllowDirectJump bool `json:"allowDirectJump,omitempty"`
	// ClickAdvance and ClickAdvanceTarget configure post-click movement.
	ClickAdvance       ClickAdvance `json:"clickAdvance,omitempty"`
	ClickAdvanceTarget string       `json:"clickAdvanceTarget,omitempty"`
}

// Section groups fields under a heading.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Definition is a complete intake form.
type Definition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
}

// Fields returns the definition's fields flattened in document order.
func (d *Definition) Fields() []Field {
	var out []Field
	for _, s := range d.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

// Field returns the field with the given id, if present.
func (d *Definition) Field(id string) (Field, bool) {
	for _, f := range d.Fields() {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the definition for structural problems: missing ids,
// duplicate field ids, unknown kinds, optionless selects, and dangling
// click-advance targets.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("form: missing id")
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("form %s: no sections", d.ID)
	}
	seen := make(map[string]bool)
	fields := d.Fields()
	for _, f := range fields {
		if f.ID == "" {
			return fmt.Errorf("form %s: field with empty id", d.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("form %s: duplicate field id %q", d.ID, f.ID)
		}
		seen[f.ID] = true
		if !knownKinds[f.Kind] {
			return fmt.Errorf("form %s: field %q has unknown kind %q", d.ID, f.ID, f.Kind)
		}
		if (f.Kind == KindSelect || f.Kind == KindCombobox) && len(f.Options) == 0 {
			return fmt.Errorf("form %s: field %q needs options", d.ID, f.ID)
		}
		if f.ClickAdvance == AdvanceTarget && f.ClickAdvanceTarget == "" {
			return fmt.Errorf("form %s: field %q advances to an unnamed target", d.ID, f.ID)
		}
	}
	for _, f := range fields {
		if f.ClickAdvanceTarget != "" && !seen[f.ClickAdvanceTarget] {
			return fmt.Errorf("form %s: field %q advances to unknown field %q", d.ID, f.ID, f.ClickAdvanceTarget)
		}
	}
	return nil
}

// Load reads and validates a single definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a definition from JSON bytes.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDir loads every *.json definition in a directory, sorted by form
// id. A missing directory yields an empty list, not an error.
func LoadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read forms dir: %w", err)
	}
	var defs []*Definition
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}
