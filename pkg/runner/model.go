// Package runner renders an intake form as a terminal UI. All focus
// movement, keyboard or mouse, goes through the focus coordinator;
// the model only owns widget state and persistence.
package runner

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/intake/internal/focus"
	"github.com/marcus/intake/internal/form"
	"github.com/marcus/intake/internal/store"
	"github.com/marcus/intake/pkg/runner/modal"
	"github.com/marcus/intake/pkg/runner/mouse"
)

// Options configures a form run.
type Options struct {
	Definition *form.Definition
	Store      *store.Store // nil disables drafts and submission
	Logger     *slog.Logger
	NoWrap     bool // stop at the ends instead of wrapping Tab order
	MaxHistory int  // focus history depth, 0 for the default
	Debug      bool
}

// Model is the bubbletea model for a form run.
type Model struct {
	fc  *focus.Coordinator
	def *form.Definition
	st  *store.Store
	log *slog.Logger

	widgets map[string]*fieldWidget
	order   []string

	mh         *mouse.Handler
	dialog     *modal.Modal
	dialogKind string
	pal        *palette

	width  int
	height int

	statusMsg string
	statusErr bool

	// ResponseID is set after a successful submit.
	ResponseID int64
	quitting   bool
}

// NewModel builds the model and registers every field with the focus
// coordinator. Nothing is focused until the user navigates.
func NewModel(opts Options) (Model, error) {
	if err := opts.Definition.Validate(); err != nil {
		return Model{}, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	fcOpts := []focus.Option{
		focus.WithLogger(log),
		focus.WithWrap(!opts.NoWrap),
	}
	if opts.MaxHistory > 0 {
		fcOpts = append(fcOpts, focus.WithMaxHistory(opts.MaxHistory))
	}
	fc := focus.New(fcOpts...)
	fc.SetDebug(opts.Debug)

	m := Model{
		fc:      fc,
		def:     opts.Definition,
		st:      opts.Store,
		log:     log,
		widgets: make(map[string]*fieldWidget),
		mh:      mouse.NewHandler(),
	}

	for _, f := range opts.Definition.Fields() {
		w := newFieldWidget(f)
		m.widgets[f.ID] = w
		m.order = append(m.order, f.ID)

		fc.Register(focus.ElementSpec{
			ID:       f.ID,
			Node:     w,
			Type:     elementType(f.Kind),
			TabIndex: f.TabIndex,
			Mouse: &focus.MouseNavigation{
				AllowDirectJump:    f.AllowDirectJump,
				ClickAdvance:       clickAdvance(f),
				ClickAdvanceTarget: f.ClickAdvanceTarget,
			},
			Indicator: &focus.VisualIndicator{
				ShowInStepper: !f.HideInStepper,
				Label:         f.Label,
				Description:   f.Help,
			},
			Metadata: map[string]any{"required": f.Required},
		})
	}

	if m.st != nil {
		if draft, err := m.st.LoadDraft(m.def.ID); err != nil {
			log.Warn("draft load failed", "form", m.def.ID, "error", err)
		} else {
			for id, v := range draft {
				if w, ok := m.widgets[id]; ok {
					w.SetValue(v)
				}
			}
		}
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Coordinator exposes the focus coordinator, mainly for tests.
func (m Model) Coordinator() *focus.Coordinator {
	return m.fc
}

// values snapshots every widget's current value.
func (m Model) values() map[string]string {
	out := make(map[string]string, len(m.order))
	for _, id := range m.order {
		out[id] = m.widgets[id].Value()
	}
	return out
}

// missingRequired returns the first required field without a value, in
// navigation order.
func (m Model) missingRequired() string {
	for _, el := range m.fc.ElementsInScope(focus.DefaultScopeID, true) {
		w, ok := m.widgets[el.ID]
		if !ok {
			continue
		}
		if w.def.Required && !w.Filled() {
			return el.ID
		}
	}
	return ""
}

// blurAllExcept syncs widget focus flags with the coordinator. The
// coordinator calls Focus on the target; everything else blurs here.
func (m Model) blurAllExcept(id string) {
	for wid, w := range m.widgets {
		if wid != id && w.focused {
			w.Blur()
		}
	}
}

// teardown releases every registered field and cancels pending timers.
// Runs on both quit paths so the coordinator never holds stale handles.
func (m Model) teardown() {
	for id, w := range m.widgets {
		w.removed = true
		m.fc.Unregister(id)
	}
	m.fc.Stop()
}
