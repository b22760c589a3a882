package runner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/pkg/runner/mouse"
)

// maxStepLabel caps how wide one step renders before truncation.
const maxStepLabel = 18

// stepGlyph maps a step's status to its marker.
func stepGlyph(s focus.StepStatus) string {
	switch s {
	case focus.StepCurrent:
		return "●"
	case focus.StepComplete:
		return "✓"
	case focus.StepDisabled:
		return "✗"
	default:
		return "○"
	}
}

func stepStyle(s focus.StepStatus) lipgloss.Style {
	switch s {
	case focus.StepCurrent:
		return stepCurrentStyle
	case focus.StepComplete:
		return stepCompleteStyle
	case focus.StepDisabled:
		return stepDisabledStyle
	default:
		return stepUpcomingStyle
	}
}

// renderStepper draws the progress line and registers a hit region per
// clickable step. Labels are truncated on cell width, not bytes, so
// wide runes do not skew the layout.
func renderStepper(steps []focus.Step, width, y int, hm *mouse.HitMap) string {
	var parts []string
	x := 0

	for i, st := range steps {
		label := ansi.Truncate(st.Label, maxStepLabel, "…")
		cell := stepGlyph(st.Status) + " " + label

		if i > 0 {
			parts = append(parts, stepUpcomingStyle.Render("─"))
			x += 3 // separator plus joining spaces
		}

		cellW := lipgloss.Width(cell)
		if hm != nil && st.Clickable {
			hm.AddRect("step:"+st.ID, x, y, cellW, 1, st.ID)
		}
		x += cellW

		parts = append(parts, stepStyle(st.Status).Render(cell))
	}

	line := strings.Join(parts, " ")
	return ansi.Truncate(line, width, "…")
}
