// Package dashboard implements the UI Controller boundary (spec 4.7): a
// pure state machine over a read-only *ifcmodel.Project. It never
// renders to a terminal and never mutates the project graph — it only
// tracks which view is active, cursor positions within each view, and
// an optional storey filter. A real terminal frontend (bubbletea,
// tcell, or similar) would translate key events into the methods below
// and read View, Focus, CursorIndex and the Visible*/SelectedType
// accessors to render a frame; none is wired in this module.
package dashboard

import "github.com/ifcinspect/ifcinspect/pkg/ifcmodel"

// View identifies which of the three UI Controller views is active.
type View int

const (
	ViewDashboard View = iota
	ViewTypeDetail
	ViewInstanceBrowser
)

// Focus identifies which dashboard pane has cursor focus.
type Focus int

const (
	FocusLevels Focus = iota
	FocusCategories
	FocusTypes
)

// Controller is the UI Controller boundary. The zero value is not
// usable; construct with New.
type Controller struct {
	proj *ifcmodel.Project

	view  View
	focus Focus

	levelCursor    int
	categoryCursor int
	typeCursor     int
	instanceCursor int

	storeyFilter   uint64
	hasStoreyFilter bool

	selectedType *ifcmodel.ElementType

	storeys    []*ifcmodel.Storey
	categories []*ifcmodel.Category
}

// New constructs a Controller positioned on the Dashboard view with
// Categories focused, and no storey filter applied.
func New(proj *ifcmodel.Project) *Controller {
	return &Controller{
		proj:       proj,
		view:       ViewDashboard,
		focus:      FocusCategories,
		storeys:    proj.StoreysDescending(),
		categories: proj.Categories,
	}
}

// View returns the active view.
func (c *Controller) View() View { return c.view }

// Focus returns the focused dashboard pane; meaningful only when View()
// == ViewDashboard.
func (c *Controller) Focus() Focus { return c.focus }

// SetFocus switches the focused pane and resets that pane's cursor to
// its start, matching the expectation that re-entering a pane begins
// at the top.
func (c *Controller) SetFocus(f Focus) {
	c.focus = f
	switch f {
	case FocusLevels:
		c.levelCursor = 0
	case FocusCategories:
		c.categoryCursor = 0
	case FocusTypes:
		c.typeCursor = 0
	}
}

// CycleFocus advances focus Levels -> Categories -> Types -> Levels.
func (c *Controller) CycleFocus() {
	switch c.focus {
	case FocusLevels:
		c.SetFocus(FocusCategories)
	case FocusCategories:
		c.SetFocus(FocusTypes)
	case FocusTypes:
		c.SetFocus(FocusLevels)
	}
}

// MoveCursor moves the active view's cursor by delta (negative moves
// up/back), clamped to the visible item count. On Dashboard this moves
// whichever pane has focus; on InstanceBrowser it moves the instance
// cursor; it is a no-op on TypeDetail, which has nothing to scroll.
func (c *Controller) MoveCursor(delta int) {
	switch c.view {
	case ViewDashboard:
		switch c.focus {
		case FocusLevels:
			c.levelCursor = clamp(c.levelCursor+delta, len(c.storeys))
		case FocusCategories:
			c.categoryCursor = clamp(c.categoryCursor+delta, len(c.categories))
		case FocusTypes:
			types := c.VisibleTypes()
			c.typeCursor = clamp(c.typeCursor+delta, len(types))
		}
	case ViewInstanceBrowser:
		c.instanceCursor = clamp(c.instanceCursor+delta, len(c.VisibleInstances()))
	}
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Select commits the focused pane's current cursor as a selection:
// on Levels, it sets (or clears, if already selected) the storey
// filter; on Categories, it moves focus into that category's Types;
// on Types, it drills into TypeDetail for the highlighted type.
func (c *Controller) Select() {
	switch c.focus {
	case FocusLevels:
		if len(c.storeys) == 0 {
			return
		}
		id := c.storeys[c.levelCursor].ID
		if c.hasStoreyFilter && c.storeyFilter == id {
			c.hasStoreyFilter = false
			return
		}
		c.storeyFilter = id
		c.hasStoreyFilter = true
		c.typeCursor = 0
	case FocusCategories:
		c.SetFocus(FocusTypes)
	case FocusTypes:
		types := c.VisibleTypes()
		if len(types) == 0 {
			return
		}
		c.selectedType = types[c.typeCursor]
		c.view = ViewTypeDetail
	}
}

// ClearStoreyFilter removes any active storey narrowing.
func (c *Controller) ClearStoreyFilter() {
	c.hasStoreyFilter = false
}

// StoreyFilter returns the active storey id and whether a filter is
// applied.
func (c *Controller) StoreyFilter() (uint64, bool) {
	return c.storeyFilter, c.hasStoreyFilter
}

// VisibleCategories returns the categories currently on screen — all of
// them; the storey filter narrows types within a category, not the
// category list itself.
func (c *Controller) VisibleCategories() []*ifcmodel.Category {
	return c.categories
}

// VisibleTypes returns the element types of the cursor-selected
// category, narrowed to those whose instance set intersects the
// active storey filter (if any), per spec 4.7.
func (c *Controller) VisibleTypes() []*ifcmodel.ElementType {
	if len(c.categories) == 0 {
		return nil
	}
	idx := clamp(c.categoryCursor, len(c.categories))
	all := c.categories[idx].Types
	if !c.hasStoreyFilter {
		return all
	}
	onStorey := map[uint64]bool{}
	for _, id := range c.proj.InstancesOnStorey(c.storeyFilter) {
		onStorey[id] = true
	}
	var out []*ifcmodel.ElementType
	for _, t := range all {
		for _, instID := range t.InstanceIDs {
			if onStorey[instID] {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// EnterInstanceBrowser drills from TypeDetail into InstanceBrowser for
// the currently detailed type. It is a no-op outside ViewTypeDetail.
func (c *Controller) EnterInstanceBrowser() {
	if c.view != ViewTypeDetail {
		return
	}
	c.view = ViewInstanceBrowser
	c.instanceCursor = 0
}

// SelectedType returns the type currently shown in TypeDetail or
// InstanceBrowser, if any.
func (c *Controller) SelectedType() (*ifcmodel.ElementType, bool) {
	return c.selectedType, c.selectedType != nil
}

// Back returns one level up the view stack: InstanceBrowser ->
// TypeDetail -> Dashboard. It is a no-op on Dashboard.
func (c *Controller) Back() {
	switch c.view {
	case ViewInstanceBrowser:
		c.view = ViewTypeDetail
	case ViewTypeDetail:
		c.view = ViewDashboard
	}
}

// VisibleInstances returns the instance ids of the type shown in
// InstanceBrowser, or nil outside that view.
func (c *Controller) VisibleInstances() []uint64 {
	if c.view != ViewInstanceBrowser {
		return nil
	}
	t, ok := c.SelectedType()
	if !ok {
		return nil
	}
	return t.InstanceIDs
}

// CursorIndex returns the raw cursor position for the focused pane (on
// Dashboard) or the instance cursor (on InstanceBrowser); useful for a
// frontend computing which row to highlight.
func (c *Controller) CursorIndex() int {
	if c.view == ViewInstanceBrowser {
		return c.instanceCursor
	}
	switch c.focus {
	case FocusLevels:
		return c.levelCursor
	case FocusTypes:
		return c.typeCursor
	default:
		return c.categoryCursor
	}
}
