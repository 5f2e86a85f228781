package logic

// ListNavigator tracks the highlighted row and the scroll window of a list
type ListNavigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewListNavigator creates a navigator showing at most height rows at once
func NewListNavigator(height int) *ListNavigator {
	if height < 1 {
		height = 1
	}
	return &ListNavigator{viewportHeight: height}
}

// SetTotal updates the number of rows and clamps the highlight into range
func (n *ListNavigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.totalItems = total
	n.clamp()
	n.ensureSelectedVisible()
}

// SetHeight changes the number of visible rows
func (n *ListNavigator) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// Reset moves the highlight back to the first row
func (n *ListNavigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// SelectedIndex returns the highlighted row, -1 for an empty list
func (n *ListNavigator) SelectedIndex() int {
	if n.totalItems == 0 {
		return -1
	}
	return n.selectedIndex
}

// ViewportOffset returns the first visible row
func (n *ListNavigator) ViewportOffset() int {
	return n.viewportOffset
}

// VisibleRange returns the half-open range of rows to render
func (n *ListNavigator) VisibleRange() (start, end int) {
	start = n.viewportOffset
	end = start + n.viewportHeight
	if end > n.totalItems {
		end = n.totalItems
	}
	return start, end
}

// SetSelectedIndex highlights index and scrolls it into view
func (n *ListNavigator) SetSelectedIndex(index int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
}

// Navigation methods
func (n *ListNavigator) MoveUp() {
	n.SetSelectedIndex(n.selectedIndex - 1)
}

func (n *ListNavigator) MoveDown() {
	n.SetSelectedIndex(n.selectedIndex + 1)
}

func (n *ListNavigator) PageUp() {
	n.SetSelectedIndex(n.selectedIndex - n.viewportHeight)
}

func (n *ListNavigator) PageDown() {
	n.SetSelectedIndex(n.selectedIndex + n.viewportHeight)
}

func (n *ListNavigator) Home() {
	n.SetSelectedIndex(0)
}

func (n *ListNavigator) End() {
	n.SetSelectedIndex(n.totalItems - 1)
}

func (n *ListNavigator) clamp() {
	if n.selectedIndex >= n.totalItems {
		n.selectedIndex = n.totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the highlighted row visible
func (n *ListNavigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	maxOffset := n.totalItems - n.viewportHeight
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
