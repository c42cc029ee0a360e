// Package selection tracks selected and focused items over a displayed,
// already-sorted item list. Sorting and column layout are caller concerns;
// this package only indexes into the order it is given. It is the single
// home of the grid arrow-key arithmetic.
package selection

// Direction is an arrow-key movement
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
	MoveLeft
	MoveRight
)

// Modifier is the concurrently-held selection intent during a move
type Modifier int

const (
	// ModNone replaces the selection with the newly focused item
	ModNone Modifier = iota
	// ModShift extends a range from the anchor to the newly focused item
	ModShift
	// ModToggle toggles only the newly focused item
	ModToggle
)

// Controller holds selection state for one item list. Items are identified
// by their path strings; indices refer to the caller-supplied display order.
type Controller struct {
	listPath string
	items    []string
	selected map[string]bool
	focused  int
	anchor   int
	columns  int
	linear   bool
}

// New creates an empty controller
func New() *Controller {
	return &Controller{
		selected: make(map[string]bool),
		focused:  -1,
		anchor:   -1,
		columns:  1,
	}
}

// SetItems supplies the displayed item list. When listPath matches the
// previous call this is a re-sort of the same listing: the selection set
// (tracked by identifier) and the anchor survive, with indices clamped.
// A different listPath is a navigation and resets everything.
func (c *Controller) SetItems(listPath string, items []string) {
	sameListing := listPath == c.listPath && c.listPath != ""
	c.listPath = listPath
	c.items = items

	if !sameListing {
		c.selected = make(map[string]bool)
		c.focused = -1
		c.anchor = -1
		return
	}

	// Drop identifiers that disappeared from the listing
	present := make(map[string]bool, len(items))
	for _, id := range items {
		present[id] = true
	}
	for id := range c.selected {
		if !present[id] {
			delete(c.selected, id)
		}
	}

	c.focused = clampIndex(c.focused, len(items))
	c.anchor = clampIndex(c.anchor, len(items))
}

// SetColumns supplies the current layout's column count; it is recomputed
// by the layout on resize, not owned here. A count below 1 means a linear
// list layout where up/down and left/right collapse to the same axis.
func (c *Controller) SetColumns(columns int) {
	if columns < 1 {
		c.columns = 1
		c.linear = true
		return
	}
	c.columns = columns
	c.linear = columns == 1
}

// SelectSingle makes index the sole selected item and the new anchor
func (c *Controller) SelectSingle(index int) {
	if !c.inRange(index) {
		return
	}
	c.selected = map[string]bool{c.items[index]: true}
	c.focused = index
	c.anchor = index
}

// SelectToggle flips membership of index; the selection may become empty.
// The anchor moves to index either way.
func (c *Controller) SelectToggle(index int) {
	if !c.inRange(index) {
		return
	}
	id := c.items[index]
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
	c.focused = index
	c.anchor = index
}

// SelectRange selects everything between the anchor and index inclusive.
// Without a prior anchor it degrades to SelectSingle. The anchor stays put
// so the range can pivot around it.
func (c *Controller) SelectRange(index int) {
	if !c.inRange(index) {
		return
	}
	if c.anchor < 0 || c.anchor >= len(c.items) {
		c.SelectSingle(index)
		return
	}

	lo, hi := c.anchor, index
	if lo > hi {
		lo, hi = hi, lo
	}

	c.selected = make(map[string]bool, hi-lo+1)
	for i := lo; i <= hi; i++ {
		c.selected[c.items[i]] = true
	}
	c.focused = index
}

// Clear empties the selection, focus, and anchor
func (c *Controller) Clear() {
	c.selected = make(map[string]bool)
	c.focused = -1
	c.anchor = -1
}

// Move performs one arrow-key step and applies the modifier's selection
// intent to the newly focused index. Reports whether focus moved.
func (c *Controller) Move(dir Direction, mod Modifier) bool {
	n := len(c.items)
	if n == 0 {
		return false
	}

	next := 0
	if c.focused >= 0 {
		if c.linear {
			next = c.moveLinear(dir)
		} else {
			next = c.moveGrid(dir)
		}
	}

	c.focused = next
	switch mod {
	case ModShift:
		c.SelectRange(next)
	case ModToggle:
		c.SelectToggle(next)
	default:
		c.SelectSingle(next)
	}
	return true
}

// moveGrid is the 2-D traversal: wrap down to the first row, up to the last
// row's same column (clamped), and sideways within the current row
func (c *Controller) moveGrid(dir Direction) int {
	i, cols, n := c.focused, c.columns, len(c.items)

	switch dir {
	case MoveDown:
		if i+cols < n {
			return i + cols
		}
		return i % cols

	case MoveUp:
		if i-cols >= 0 {
			return i - cols
		}
		col := i % cols
		lastRowStart := ((n - 1) / cols) * cols
		target := lastRowStart + col
		if target > n-1 {
			target = n - 1
		}
		return target

	case MoveRight:
		if (i+1)%cols == 0 || i == n-1 {
			return i - i%cols
		}
		return i + 1

	case MoveLeft:
		if i%cols == 0 {
			end := i + cols - 1
			if end > n-1 {
				end = n - 1
			}
			return end
		}
		return i - 1
	}

	return i
}

// moveLinear is the list/details traversal: both axes step one item with
// wraparound at the boundaries
func (c *Controller) moveLinear(dir Direction) int {
	i, n := c.focused, len(c.items)

	switch dir {
	case MoveDown, MoveRight:
		if i == n-1 {
			return 0
		}
		return i + 1
	default:
		if i == 0 {
			return n - 1
		}
		return i - 1
	}
}

// Focused returns the focused index, -1 when nothing has focus
func (c *Controller) Focused() int {
	return c.focused
}

// Anchor returns the range-selection pivot index, -1 when unset
func (c *Controller) Anchor() int {
	return c.anchor
}

// IsSelected reports whether the identifier is in the selection set
func (c *Controller) IsSelected(id string) bool {
	return c.selected[id]
}

// SelectedIndices returns the selected display indices in ascending order
func (c *Controller) SelectedIndices() []int {
	var result []int
	for i, id := range c.items {
		if c.selected[id] {
			result = append(result, i)
		}
	}
	return result
}

// Count returns the number of selected items
func (c *Controller) Count() int {
	return len(c.selected)
}

func (c *Controller) inRange(index int) bool {
	return index >= 0 && index < len(c.items)
}

func clampIndex(i, n int) int {
	if i < 0 || n == 0 {
		return -1
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
