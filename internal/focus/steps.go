package focus

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// StepStatus is the progress state of one stepper entry.
type StepStatus string

const (
	StepCurrent  StepStatus = "current"
	StepComplete StepStatus = "complete"
	StepDisabled StepStatus = "disabled"
	StepUpcoming StepStatus = "upcoming"
)

// Step is a read-only projection of one stepper-visible element.
type Step struct {
	ID          string
	Label       string
	Description string
	Status      StepStatus
	Clickable   bool
}

// VisibleSteps projects the registry into an ordered progress view for
// external step-indicator UI. Elements opt in via their visual indicator
// config. Validators run concurrently; a rejecting or erroring validator
// renders its step disabled.
func (c *Coordinator) VisibleSteps(ctx context.Context) []Step {
	c.mu.Lock()
	type candidate struct {
		el    Element
		order uint64
		tab   int
	}
	var cands []candidate
	for _, el := range c.st.elements {
		if el.Indicator == nil || !el.Indicator.ShowInStepper {
			continue
		}
		cands = append(cands, candidate{el: *el, order: el.registeredAt, tab: el.TabIndex})
	}
	current := c.st.currentFocusID
	visited := make(map[string]bool, len(cands))
	for _, cand := range cands {
		visited[cand.el.ID] = c.st.visited(cand.el.ID)
	}
	c.mu.Unlock()

	sort.Slice(cands, func(i, j int) bool {
		return orderLess(cands[i].tab, cands[j].tab, cands[i].order, cands[j].order)
	})

	// Run validators in parallel; each verdict only affects its own
	// step's disabled status.
	verdicts := make([]bool, len(cands))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range cands {
		v := cand.el.Validator
		idx := i
		if v == nil {
			verdicts[idx] = true
			continue
		}
		id := cand.el.ID
		g.Go(func() error {
			ok := c.runValidator(gctx, id, v)
			mu.Lock()
			verdicts[idx] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	steps := make([]Step, 0, len(cands))
	for i, cand := range cands {
		el := cand.el
		step := Step{
			ID:          el.ID,
			Label:       el.Indicator.Label,
			Description: el.Indicator.Description,
		}
		if step.Label == "" {
			step.Label = el.ID
		}
		switch {
		case el.ID == current:
			step.Status = StepCurrent
		case visited[el.ID]:
			step.Status = StepComplete
		case !el.CanFocus || !verdicts[i]:
			step.Status = StepDisabled
		default:
			step.Status = StepUpcoming
		}
		step.Clickable = c.CanJumpToNode(ctx, el.ID)
		steps = append(steps, step)
	}
	return steps
}
