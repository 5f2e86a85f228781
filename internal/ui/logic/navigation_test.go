package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListNavigatorScrolling(t *testing.T) {
	n := NewListNavigator(3)
	n.SetTotal(10)

	assert.Equal(t, 0, n.SelectedIndex())
	n.MoveUp()
	assert.Equal(t, 0, n.SelectedIndex(), "should not move above the first row")

	n.MoveDown()
	n.MoveDown()
	n.MoveDown()
	assert.Equal(t, 3, n.SelectedIndex())
	assert.Equal(t, 1, n.ViewportOffset())

	start, end := n.VisibleRange()
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	n.End()
	assert.Equal(t, 9, n.SelectedIndex())
	assert.Equal(t, 7, n.ViewportOffset())

	n.PageUp()
	assert.Equal(t, 6, n.SelectedIndex())

	n.Home()
	assert.Equal(t, 0, n.SelectedIndex())
	assert.Equal(t, 0, n.ViewportOffset())
}

func TestListNavigatorClampsWhenListShrinks(t *testing.T) {
	n := NewListNavigator(4)
	n.SetTotal(8)
	n.End()

	n.SetTotal(2)
	assert.Equal(t, 1, n.SelectedIndex())
	assert.Equal(t, 0, n.ViewportOffset())

	n.SetTotal(0)
	assert.Equal(t, -1, n.SelectedIndex())
	start, end := n.VisibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
