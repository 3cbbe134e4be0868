// Package sessions provides the stored-session list view for the TUI.
package sessions

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// View lists stored chat sessions and lets the user resume, create, or
// delete them.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ItemList
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new sessions view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		list:        list.NewItemList(s, "Sessions"),
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the session list.
func (v *View) Init() tea.Cmd {
	return v.loadSessions()
}

// Update handles messages for the sessions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		items := make([]list.Item, 0, len(msg.Sessions))
		for i := range msg.Sessions {
			s := &msg.Sessions[i]
			items = append(items, list.Item{
				ID:     s.ID,
				Title:  s.Title,
				Badge:  s.UpdatedAt.Format("2006-01-02 15:04"),
				Detail: fmt.Sprintf("%d messages", len(s.Messages)),
			})
		}
		v.list.SetItems(items)
		return v, nil

	case messages.SessionDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Session deleted")
		return v, v.loadSessions()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	case tea.KeyEnter:
		if item := v.list.SelectedItem(); item != nil {
			return v, v.switchSession(item.ID)
		}
		return v, nil
	default:
		// Handle other keys
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n":
		return v, v.newSession()
	case "d":
		if item := v.list.SelectedItem(); item != nil {
			return v, v.deleteSession(item.ID)
		}
	}

	return v, nil
}

// loadSessions fetches the stored session list.
func (v *View) loadSessions() tea.Cmd {
	return func() tea.Msg {
		sessions, err := v.chatService.Sessions(v.ctx)
		return messages.SessionsLoaded{Sessions: sessions, Err: err}
	}
}

// switchSession makes a stored session current.
func (v *View) switchSession(id string) tea.Cmd {
	return func() tea.Msg {
		session, err := v.chatService.Switch(v.ctx, id)
		return messages.SessionSwitched{Session: session, Err: err}
	}
}

// newSession starts a fresh session.
func (v *View) newSession() tea.Cmd {
	return func() tea.Msg {
		session, err := v.chatService.NewSession(v.ctx)
		return messages.SessionSwitched{Session: session, Err: err}
	}
}

// deleteSession removes a stored session.
func (v *View) deleteSession(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.chatService.DeleteSession(v.ctx, id)
		return messages.SessionDeleted{ID: id, Err: err}
	}
}

// View renders the sessions view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Sessions"), "")

	if v.list.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("No stored sessions. Press n to start one."))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Selected returns the selected session index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Count returns the number of listed sessions.
func (v *View) Count() int {
	return v.list.Count()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears transient state.
func (v *View) Reset() {
	v.err = nil
	v.statusbar.Clear()
}
