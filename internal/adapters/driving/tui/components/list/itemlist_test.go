package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
)

func testItems() []Item {
	return []Item{
		{ID: "t1", Title: "Mutual NDA", Badge: "90%", Detail: "nda / US"},
		{ID: "t2", Title: "One-way NDA", Badge: "60%"},
		{ID: "t3", Title: "Consulting Agreement", Badge: "40%"},
	}
}

func TestNewItemList(t *testing.T) {
	l := NewItemList(styles.DefaultStyles(), "Templates")

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 80, l.Width())
}

func TestNewItemList_NilStyles(t *testing.T) {
	l := NewItemList(nil, "")

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
}

func TestItemList_SetItems_ResetsSelection(t *testing.T) {
	l := NewItemList(nil, "Templates")
	l.SetItems(testItems())
	l.SetSelected(2)

	l.SetItems(testItems()[:1])

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
}

func TestItemList_Navigation(t *testing.T) {
	l := NewItemList(nil, "Templates")
	l.SetItems(testItems())

	l.MoveDown()
	assert.Equal(t, 1, l.Selected())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	// Bounds
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.SetSelected(2)
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())
}

func TestItemList_Update_Keys(t *testing.T) {
	l := NewItemList(nil, "Templates")
	l.SetItems(testItems())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, l.Selected())
}

func TestItemList_SelectedItem(t *testing.T) {
	l := NewItemList(nil, "Templates")

	assert.Nil(t, l.SelectedItem())

	l.SetItems(testItems())
	item := l.SelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, "t1", item.ID)
}

func TestItemList_View_Empty(t *testing.T) {
	l := NewItemList(nil, "Templates")

	assert.Contains(t, l.View(), "Nothing here yet")
}

func TestItemList_View_WithItems(t *testing.T) {
	l := NewItemList(nil, "Templates")
	l.SetDimensions(80, 24)
	l.SetItems(testItems())

	out := l.View()

	assert.Contains(t, out, "Templates (3)")
	assert.Contains(t, out, "Mutual NDA")
	assert.Contains(t, out, "nda / US")
	assert.Contains(t, out, ">")
}

func TestItemList_View_TruncatesLongTitles(t *testing.T) {
	l := NewItemList(nil, "Templates")
	l.SetDimensions(30, 24)
	l.SetItems([]Item{
		{ID: "t1", Title: "An extremely long template title that cannot fit", Badge: "90%"},
	})

	out := l.View()

	assert.Contains(t, out, "...")
}

func TestItemList_SetDimensions(t *testing.T) {
	l := NewItemList(nil, "")

	l.SetDimensions(120, 40)

	assert.Equal(t, 120, l.Width())
	assert.Equal(t, 40, l.Height())
}
