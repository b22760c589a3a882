package focus

// state is the single shared container every engine reads and writes.
// All mutations flow through dispatch as named transitions so each change
// is atomic, loggable, and has one application site.
type state struct {
	elements map[string]*Element
	// scopes is the navigation stack; scopes[0] is the protected default
	// scope and the last entry is always the active scope.
	scopes []Scope
	modals []modalEntry

	currentFocusID string

	history []HistoryEntry
	// historyIndex points at the entry for the current focus, -1 when
	// the log is empty or cleared.
	historyIndex int
	maxHistory   int

	mouseLog    []MouseInteraction
	maxMouseLog int

	mode Mode

	// invalidMarkID names the element currently flashing an invalid-jump
	// marker, cleared by a deferred timer.
	invalidMarkID string

	enabled bool
	debug   bool
}

func (st *state) activeScope() *Scope {
	return &st.scopes[len(st.scopes)-1]
}

// transition is the closed set of state mutations.
type transition interface{ name() string }

type tRegister struct{ el *Element }
type tUnregister struct{ id string }
type tUpdate struct {
	id    string
	patch ElementPatch
}
type tPushScope struct{ scope Scope }
type tPopScope struct{}
type tPushModal struct{ entry modalEntry }
type tPopModal struct{}
type tFocus struct {
	id     string
	reason Reason
	record bool
}
type tSetMode struct{ mode Mode }
type tRecordMouse struct{ mi MouseInteraction }
type tHistorySeek struct{ index int }
type tHistoryClear struct{}
type tSetInvalidMark struct{ id string }
type tSetEnabled struct{ enabled bool }

func (tRegister) name() string       { return "register" }
func (tUnregister) name() string     { return "unregister" }
func (tUpdate) name() string         { return "update" }
func (tPushScope) name() string      { return "push_scope" }
func (tPopScope) name() string       { return "pop_scope" }
func (tPushModal) name() string      { return "push_modal" }
func (tPopModal) name() string       { return "pop_modal" }
func (tFocus) name() string          { return "focus" }
func (tSetMode) name() string        { return "set_mode" }
func (tRecordMouse) name() string    { return "record_mouse" }
func (tHistorySeek) name() string    { return "history_seek" }
func (tHistoryClear) name() string   { return "history_clear" }
func (tSetInvalidMark) name() string { return "set_invalid_mark" }
func (tSetEnabled) name() string     { return "set_enabled" }

// apply mutates st according to t. Must be called with the coordinator
// lock held. Every transition either fully applies or leaves the state
// untouched; apply itself never fails.
func (st *state) apply(t transition) {
	switch tr := t.(type) {
	case tRegister:
		st.elements[tr.el.ID] = tr.el

	case tUnregister:
		delete(st.elements, tr.id)
		if st.currentFocusID == tr.id {
			st.currentFocusID = ""
		}

	case tUpdate:
		el, ok := st.elements[tr.id]
		if !ok {
			return // unknown id is a no-op, not an error
		}
		applyPatch(el, tr.patch)

	case tPushScope:
		st.scopes = append(st.scopes, tr.scope)

	case tPopScope:
		if len(st.scopes) > 1 {
			st.scopes = st.scopes[:len(st.scopes)-1]
		}

	case tPushModal:
		st.modals = append(st.modals, tr.entry)

	case tPopModal:
		if len(st.modals) > 0 {
			st.modals = st.modals[:len(st.modals)-1]
		}

	case tFocus:
		prev := st.currentFocusID
		st.currentFocusID = tr.id
		if tr.record {
			st.appendHistory(HistoryEntry{
				ElementID:         tr.id,
				ScopeID:           st.activeScope().ID,
				Reason:            tr.reason,
				Timestamp:         now(),
				PreviousElementID: prev,
			})
		}

	case tSetMode:
		st.mode = tr.mode

	case tRecordMouse:
		st.mouseLog = append(st.mouseLog, tr.mi)
		if len(st.mouseLog) > st.maxMouseLog {
			st.mouseLog = st.mouseLog[len(st.mouseLog)-st.maxMouseLog:]
		}

	case tHistorySeek:
		if tr.index >= -1 && tr.index < len(st.history) {
			st.historyIndex = tr.index
		}

	case tHistoryClear:
		st.history = nil
		st.historyIndex = -1

	case tSetInvalidMark:
		st.invalidMarkID = tr.id

	case tSetEnabled:
		st.enabled = tr.enabled
	}
}

// appendHistory appends after truncating any redo branch past the cursor,
// then enforces the sliding-window bound by dropping oldest entries.
func (st *state) appendHistory(e HistoryEntry) {
	if st.historyIndex < len(st.history)-1 {
		st.history = st.history[:st.historyIndex+1]
	}
	st.history = append(st.history, e)
	if st.maxHistory > 0 && len(st.history) > st.maxHistory {
		st.history = st.history[len(st.history)-st.maxHistory:]
	}
	st.historyIndex = len(st.history) - 1
}

func applyPatch(el *Element, p ElementPatch) {
	if p.Node != nil {
		el.Node = p.Node
	}
	if p.ScopeID != nil {
		el.ScopeID = *p.ScopeID
	}
	if p.TabIndex != nil {
		el.TabIndex = *p.TabIndex
	}
	if p.CanFocus != nil {
		el.CanFocus = *p.CanFocus
	}
	if p.SkipInNavigation != nil {
		el.SkipInNavigation = *p.SkipInNavigation
	}
	if p.Validator != nil {
		el.Validator = *p.Validator
	}
	if p.Mouse != nil {
		el.Mouse = *p.Mouse
	}
	if p.Indicator != nil {
		el.Indicator = *p.Indicator
	}
	for k, v := range p.Metadata {
		if el.Metadata == nil {
			el.Metadata = make(map[string]any)
		}
		el.Metadata[k] = v
	}
}
