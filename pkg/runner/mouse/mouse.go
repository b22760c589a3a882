// Package mouse maps terminal mouse events onto named screen regions.
// The runner rebuilds the hit map on every render so that clicks on a
// field, step, or modal control resolve to the focus element they cover.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum gap between two clicks on the same
// region for the second to count as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a rectangular screen region in cell coordinates.
// Width and height are exclusive: a 1x1 rect contains exactly one cell.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area. Data carries whatever the view
// attached when it registered the region, typically a focus element ID.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap resolves screen coordinates to regions. Regions added later
// win over earlier ones, so views register back-to-front.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Later additions take priority on overlap.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: h},
		Data: data,
	})
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Regions returns all registered regions in registration order.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes all regions. Called at the top of each render pass.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a processed mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

// Action is the result of feeding a tea.MouseMsg through a Handler.
type Action struct {
	Type          ActionType
	X, Y          int
	Region        *Region
	IsDoubleClick bool
	DragDX        int
	DragDY        int
}

// ClickResult describes a resolved click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse messages into actions against a HitMap and
// tracks click timing and drag state between events.
type Handler struct {
	HitMap *HitMap

	lastClickTime   time.Time
	lastClickRegion string

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleClick resolves a click at (x, y) and tracks double-clicks.
// A double-click resets the timer so a third click starts fresh.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)

	result := ClickResult{Region: region}

	if region != nil {
		now := time.Now()
		if region.ID == h.lastClickRegion && now.Sub(h.lastClickTime) <= doubleClickWindow {
			result.IsDoubleClick = true
			h.lastClickRegion = ""
			h.lastClickTime = time.Time{}
		} else {
			h.lastClickRegion = region.ID
			h.lastClickTime = now
		}
	} else {
		h.lastClickRegion = ""
	}

	return result
}

// StartDrag begins tracking a drag anchored at (x, y). The value is an
// arbitrary starting measurement, such as a pane width in cells.
func (h *Handler) StartDrag(x, y int, region string, value int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = value
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

func (h *Handler) IsDragging() bool {
	return h.dragging
}

func (h *Handler) DragRegion() string {
	return h.dragRegion
}

func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the offset of (x, y) from the drag anchor.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// HandleMouse classifies a bubbletea mouse message. Motion during an
// active drag becomes ActionDrag; release ends the drag.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{Type: ActionNone, X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			result := h.HandleClick(msg.X, msg.Y)
			action.Type = ActionClick
			action.Region = result.Region
			action.IsDoubleClick = result.IsDoubleClick
		case tea.MouseButtonWheelUp:
			if msg.Shift {
				action.Type = ActionScrollLeft
			} else {
				action.Type = ActionScrollUp
			}
			action.Region = h.HitMap.Test(msg.X, msg.Y)
		case tea.MouseButtonWheelDown:
			if msg.Shift {
				action.Type = ActionScrollRight
			} else {
				action.Type = ActionScrollDown
			}
			action.Region = h.HitMap.Test(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
		} else {
			action.Type = ActionHover
			action.Region = h.HitMap.Test(msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			action.Type = ActionDragEnd
		}
	}

	return action
}

// Clear resets the hit map.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
