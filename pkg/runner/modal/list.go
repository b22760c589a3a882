package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListItem is one entry in a list section.
type ListItem struct {
	ID    string
	Label string
	Data  any
}

// ListOption configures a List section.
type ListOption func(*listSection)

// WithMaxVisible caps how many items are shown at once (default 5).
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// listSection renders a scrollable selectable list. The whole list is
// a single focusable so Tab moves past it instead of walking items.
type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
}

// List creates a list section. selectedIdx points at the selection so
// the caller can read it back; nil means no selection.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: MutedText.Render("(no items)")}
	}

	visibleCount := min(s.maxVisible, len(s.items))
	selectedIdx := 0
	if s.selectedIdx != nil {
		selectedIdx = *s.selectedIdx
	}

	// Keep the selection in view
	if selectedIdx < s.scrollOffset {
		s.scrollOffset = selectedIdx
	} else if selectedIdx >= s.scrollOffset+visibleCount {
		s.scrollOffset = selectedIdx - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.items)-visibleCount))

	listIsFocused := focusID == s.id

	var sb strings.Builder
	totalHeight := 0

	for i := 0; i < visibleCount; i++ {
		itemIdx := s.scrollOffset + i
		if itemIdx >= len(s.items) {
			break
		}

		item := s.items[itemIdx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == itemIdx

		style := ListItemNormal
		switch {
		case isSelected && listIsFocused:
			style = ListItemFocused
		case isSelected, item.ID == hoverID:
			style = ListItemSelected
		}

		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cursor + style.Render(item.Label))
		totalHeight++
	}

	content := sb.String()
	if s.scrollOffset > 0 {
		content = MutedText.Render("↑ more above") + "\n" + content
		totalHeight++
	}
	if s.scrollOffset+visibleCount < len(s.items) {
		content = content + "\n" + MutedText.Render("↓ more below")
		totalHeight++
	}

	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID:     s.id,
			Width:  contentWidth,
			Height: totalHeight,
		}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}

	return "", nil
}
