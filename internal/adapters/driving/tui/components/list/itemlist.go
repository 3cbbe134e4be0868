// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
)

// Item is a single renderable entry. Views map domain objects (match
// candidates, sessions, templates, questions) into items.
type Item struct {
	// ID carries the underlying identifier for selection handling.
	ID string

	// Title is the main line.
	Title string

	// Badge is a short right-aligned annotation, e.g. a confidence
	// percentage or a required marker.
	Badge string

	// Detail is an optional second line rendered muted.
	Detail string
}

// ItemList displays items in a navigable list.
type ItemList struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a new list component.
func NewItemList(s *styles.Styles, title string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		title:    title,
		items:    nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			l.MoveUp()
		case "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("Nothing here yet")
	}

	lines := make([]string, 0, len(l.items)*2+2)

	if l.title != "" {
		header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items)))
		lines = append(lines, header, "")
	}

	// Each item takes up to two lines, keep a margin for the header.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	return strings.Join(lines, "\n")
}

// renderItem formats a single item with its optional detail line.
func (l *ItemList) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := item.Title
	if title == "" {
		title = "(Untitled)"
	}

	maxTitleLen := l.width - len(item.Badge) - 8
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, item.Badge))
	} else {
		titleLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			l.styles.Muted.Render(item.Badge)
	}

	if item.Detail == "" {
		return titleLine
	}

	detail := item.Detail
	maxDetailLen := l.width - 6
	if maxDetailLen < 20 {
		maxDetailLen = 20
	}
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen-3] + "..."
	}

	return titleLine + "\n" + l.styles.Muted.Render("    "+detail)
}

// SetItems replaces the list contents and resets the selection.
func (l *ItemList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *ItemList) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ItemList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *ItemList) SelectedItem() *Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *ItemList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *ItemList) Height() int {
	return l.height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.items) == 0
}
