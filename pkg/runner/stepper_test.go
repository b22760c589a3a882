package runner

import (
	"strings"
	"testing"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/pkg/runner/mouse"
)

func TestRenderStepperGlyphs(t *testing.T) {
	steps := []focus.Step{
		{ID: "a", Label: "Basics", Status: focus.StepComplete},
		{ID: "b", Label: "History", Status: focus.StepCurrent},
		{ID: "c", Label: "Consent", Status: focus.StepUpcoming},
		{ID: "d", Label: "Review", Status: focus.StepDisabled},
	}

	out := renderStepper(steps, 200, 0, nil)
	for _, want := range []string{"✓ Basics", "● History", "○ Consent", "✗ Review"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stepper output", want)
		}
	}
}

func TestRenderStepperRegistersClickableRegions(t *testing.T) {
	steps := []focus.Step{
		{ID: "a", Label: "Basics", Status: focus.StepComplete, Clickable: true},
		{ID: "b", Label: "History", Status: focus.StepCurrent, Clickable: true},
		{ID: "c", Label: "Consent", Status: focus.StepUpcoming, Clickable: false},
	}

	hm := mouse.NewHitMap()
	renderStepper(steps, 200, 5, hm)

	regions := hm.Regions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if regions[0].ID != "step:a" || regions[1].ID != "step:b" {
		t.Errorf("unexpected region ids: %s, %s", regions[0].ID, regions[1].ID)
	}
	for _, r := range regions {
		if r.Rect.Y != 5 {
			t.Errorf("region %s: y = %d, want 5", r.ID, r.Rect.Y)
		}
		if r.Data == nil {
			t.Errorf("region %s: missing element id data", r.ID)
		}
	}
	// Second step starts after the first cell plus separator
	if regions[1].Rect.X <= regions[0].Rect.X+regions[0].Rect.W {
		t.Errorf("regions overlap: %+v then %+v", regions[0].Rect, regions[1].Rect)
	}
}

func TestRenderStepperTruncatesLongLabels(t *testing.T) {
	steps := []focus.Step{
		{ID: "a", Label: strings.Repeat("long", 20), Status: focus.StepCurrent},
	}

	out := renderStepper(steps, 200, 0, nil)
	if !strings.Contains(out, "…") {
		t.Error("expected long label to be truncated with ellipsis")
	}
}
