package logic

// Navigator moves a cursor over a grid of cards laid out row-major and keeps
// the cursor's row inside a scrolling viewport
type Navigator struct {
	selectedIndex  int
	viewportOffset int // first visible row
	viewportRows   int
	columns        int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{columns: 1, viewportRows: 1}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportRows, columns, total int) {
	if columns < 1 {
		columns = 1
	}
	if viewportRows < 1 {
		viewportRows = 1
	}
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportRows = viewportRows
	n.columns = columns
	n.total = total
	n.clamp()
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first visible row
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// Rows returns the number of grid rows
func (n *Navigator) Rows() int {
	if n.total == 0 {
		return 0
	}
	return (n.total + n.columns - 1) / n.columns
}

// Move applies a direction and returns the new selected index and viewport offset
func (n *Navigator) Move(direction string) (int, int) {
	if n.total == 0 {
		return 0, 0
	}
	switch direction {
	case "left":
		if n.selectedIndex%n.columns > 0 {
			n.selectedIndex--
		}
	case "right":
		if n.selectedIndex%n.columns < n.columns-1 && n.selectedIndex+1 < n.total {
			n.selectedIndex++
		}
	case "up":
		if n.selectedIndex-n.columns >= 0 {
			n.selectedIndex -= n.columns
		}
	case "down":
		if n.selectedIndex+n.columns < n.total {
			n.selectedIndex += n.columns
		} else if n.selectedIndex/n.columns < n.Rows()-1 {
			// partial last row: land on its last card
			n.selectedIndex = n.total - 1
		}
	case "home":
		n.selectedIndex = 0
	case "end":
		n.selectedIndex = n.total - 1
	}
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible adjusts the viewport to keep the selected row visible
func (n *Navigator) ensureSelectedVisible() {
	row := n.selectedIndex / n.columns
	if row < n.viewportOffset {
		n.viewportOffset = row
	}
	if row >= n.viewportOffset+n.viewportRows {
		n.viewportOffset = row - n.viewportRows + 1
	}
	maxOffset := n.Rows() - n.viewportRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

func (n *Navigator) clamp() {
	if n.total == 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}
