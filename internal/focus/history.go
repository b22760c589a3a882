package focus

import "context"

// History returns a copy of the focus history, oldest first.
func (c *Coordinator) History() []HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HistoryEntry, len(c.st.history))
	copy(out, c.st.history)
	return out
}

// HistoryIndex returns the cursor position within the history log, -1
// when the log is empty.
func (c *Coordinator) HistoryIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.historyIndex
}

// UndoFocus moves the history cursor back one entry and refocuses that
// entry's element programmatically. The replay does not append to
// history; a later fresh focus change truncates the redo branch.
// Returns false at the start of the log or when the replay fails.
func (c *Coordinator) UndoFocus(ctx context.Context) bool {
	return c.seekHistory(ctx, -1)
}

// RedoFocus moves the history cursor forward one entry and refocuses
// that entry's element programmatically. Returns false at the end of the
// log.
func (c *Coordinator) RedoFocus(ctx context.Context) bool {
	return c.seekHistory(ctx, +1)
}

func (c *Coordinator) seekHistory(ctx context.Context, dir int) bool {
	c.mu.Lock()
	idx := c.st.historyIndex + dir
	if idx < 0 || idx >= len(c.st.history) {
		c.mu.Unlock()
		return false
	}
	target := c.st.history[idx].ElementID
	c.mu.Unlock()

	if !c.focusField(ctx, target, ReasonProgrammatic, focusOpts{record: false}) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-resolve the index: the replayed focus bumped the generation but
	// did not append, so the cursor math still holds unless the log was
	// cleared meanwhile.
	if idx >= len(c.st.history) {
		return false
	}
	c.dispatch(tHistorySeek{index: idx})
	return true
}

// ClearHistory drops the focus log and resets the cursor.
func (c *Coordinator) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(tHistoryClear{})
}
