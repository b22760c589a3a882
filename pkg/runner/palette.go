package runner

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/intake/internal/focus"
)

// paletteScopeID names the focus scope pushed while the jump palette
// is open, so Tab stays trapped inside it.
const paletteScopeID = "jump-palette"

// paletteEntry is one jump candidate.
type paletteEntry struct {
	id        string
	label     string
	reachable bool
}

// palette is a fuzzy field finder. Matches come from sahilm/fuzzy over
// the field labels; jump eligibility is the coordinator's call.
type palette struct {
	query    textinput.Model
	entries  []paletteEntry
	matches  []paletteEntry
	selected int
}

func newPalette(m *Model) *palette {
	q := textinput.New()
	q.Placeholder = "jump to field"
	q.Prompt = "/ "
	q.Focus()

	p := &palette{query: q}

	ctx := context.Background()
	for _, el := range m.fc.ElementsInScope(focus.DefaultScopeID, false) {
		label := el.ID
		if el.Indicator != nil && el.Indicator.Label != "" {
			label = el.Indicator.Label
		}
		p.entries = append(p.entries, paletteEntry{
			id:        el.ID,
			label:     label,
			reachable: m.fc.CanJumpToNode(ctx, el.ID),
		})
	}
	p.filter()
	return p
}

// filter recomputes matches against the current query.
func (p *palette) filter() {
	q := p.query.Value()
	if q == "" {
		p.matches = append([]paletteEntry(nil), p.entries...)
	} else {
		labels := make([]string, len(p.entries))
		for i, e := range p.entries {
			labels[i] = e.label
		}
		results := fuzzy.Find(q, labels)
		matched := make([]paletteEntry, 0, len(results))
		for _, r := range results {
			matched = append(matched, p.entries[r.Index])
		}
		p.matches = matched
	}
	if p.selected >= len(p.matches) {
		p.selected = max(0, len(p.matches)-1)
	}
}

func (p *palette) moveSelection(dir int) {
	if len(p.matches) == 0 {
		return
	}
	p.selected += dir
	if p.selected < 0 {
		p.selected = len(p.matches) - 1
	} else if p.selected >= len(p.matches) {
		p.selected = 0
	}
}

// current returns the highlighted entry, or nil.
func (p *palette) current() *paletteEntry {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return nil
	}
	return &p.matches[p.selected]
}

func (p *palette) view(width int) string {
	var sb strings.Builder
	sb.WriteString(p.query.View())
	sb.WriteString("\n")

	if len(p.matches) == 0 {
		sb.WriteString(paletteDimStyle.Render("no matching fields"))
	}

	shown := min(len(p.matches), 7)
	for i := 0; i < shown; i++ {
		e := p.matches[i]
		line := "  " + e.label
		switch {
		case i == p.selected && e.reachable:
			line = "> " + paletteMatchStyle.Render(e.label)
		case i == p.selected:
			line = "> " + paletteDimStyle.Render(e.label+" (locked)")
		case !e.reachable:
			line = "  " + paletteDimStyle.Render(e.label)
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	return paletteBoxStyle.Width(min(width-4, 48)).Render(sb.String())
}
