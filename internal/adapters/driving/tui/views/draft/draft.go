// Package draft provides the generated draft view for the TUI.
package draft

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// View displays the generated draft with simple scrolling.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	chatService driving.ChatService

	width  int
	height int
	ready  bool
	err    error
	scroll int
}

// NewView creates a new draft view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateDraft)

	return &View{
		styles:      s,
		keymap:      km,
		statusbar:   bar,
		chatService: chatService,
		width:       80,
		height:      24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.scroll = 0
	return nil
}

// Update handles messages for the draft view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DraftGenerated:
		if msg.Err == nil {
			v.scroll = 0
		}
		return v, nil

	case messages.DraftSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateDraft)
		v.statusbar.SetMessage("Saved to " + msg.Path)
		return v, nil

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
			return messages.ViewChanged{View: messages.ViewQuestions}
		}
	case tea.KeyUp:
		v.scrollUp()
		return v, nil
	case tea.KeyDown:
		v.scrollDown()
		return v, nil
	default:
		// Handle other keys
	}

	switch msg.String() {
	case "k":
		v.scrollUp()
	case "j":
		v.scrollDown()
	case "s":
		if draft := v.draft(); draft != nil {
			return v, v.save(draft)
		}
	}

	return v, nil
}

// save writes the draft markdown to a file in the working directory.
func (v *View) save(draft *domain.Draft) tea.Cmd {
	return func() tea.Msg {
		path := "draft.md"
		if draft.InstanceID != "" {
			path = fmt.Sprintf("draft-%s.md", draft.InstanceID)
		}

		if err := os.WriteFile(path, []byte(draft.Markdown), 0o600); err != nil {
			return messages.DraftSaved{Path: path, Err: err}
		}
		return messages.DraftSaved{Path: path}
	}
}

// View renders the draft view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	draft := v.draft()

	title := "Draft"
	if draft != nil && draft.TemplateTitle != "" {
		title = "Draft: " + draft.TemplateTitle
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if draft == nil {
		sections = append(sections, v.styles.Muted.Render("No draft yet. Answer the questions and press g to generate."))
	} else {
		if draft.HasMissing {
			warning := "Missing variables: " + strings.Join(draft.MissingVariables, ", ")
			sections = append(sections, v.styles.Warning.Render(warning), "")
		}
		sections = append(sections, v.renderBody(draft))
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders the visible window of the draft markdown.
func (v *View) renderBody(draft *domain.Draft) string {
	lines := strings.Split(draft.Markdown, "\n")

	visible := v.height - 8
	if visible < 3 {
		visible = 3
	}

	start := v.scroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[start:end], "\n")
	if end < len(lines) {
		body += "\n" + v.styles.Muted.Render(fmt.Sprintf("... (%d more lines)", len(lines)-end))
	}
	return v.styles.Normal.Render(body)
}

// scrollUp moves the viewport one line up.
func (v *View) scrollUp() {
	if v.scroll > 0 {
		v.scroll--
	}
}

// scrollDown moves the viewport one line down.
func (v *View) scrollDown() {
	draft := v.draft()
	if draft == nil {
		return
	}

	max := len(strings.Split(draft.Markdown, "\n")) - 1
	if v.scroll < max {
		v.scroll++
	}
}

// draft returns the current session's draft, or nil.
func (v *View) draft() *domain.Draft {
	if v.chatService == nil {
		return nil
	}
	session := v.chatService.Current()
	if session == nil {
		return nil
	}
	return session.Draft
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

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

// Scroll returns the current scroll offset.
func (v *View) Scroll() int {
	return v.scroll
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset scrolls back to the top and clears transient state.
func (v *View) Reset() {
	v.scroll = 0
	v.err = nil
	v.statusbar.SetState(status.StateDraft)
	v.statusbar.SetMessage("")
}
