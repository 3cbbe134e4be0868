// Package questions provides the answer form view for the TUI.
package questions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/input"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// View is the answer form for the selected template's questions.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ItemList
	input     *input.PromptInput
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context

	width      int
	height     int
	ready      bool
	err        error
	editing    bool
	editKey    string
	generating bool
}

// NewView creates a new questions view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	in := input.NewPromptInput(s, "Answer: ", "")
	in.Blur()

	bar := status.NewBar(s, km)
	bar.SetState(status.StateQuestions)

	return &View{
		styles:      s,
		keymap:      km,
		list:        list.NewItemList(s, "Questions"),
		input:       in,
		statusbar:   bar,
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

// Init initialises the view and refreshes the question list.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh rebuilds the question list from the current session.
func (v *View) Refresh() {
	session := v.session()
	if session == nil || len(session.Questions) == 0 {
		v.list.SetItems(nil)
		return
	}

	selected := v.list.Selected()
	items := make([]list.Item, 0, len(session.Questions))
	for _, q := range session.Questions {
		items = append(items, v.questionItem(session, q))
	}
	v.list.SetItems(items)
	v.list.SetSelected(selected)
}

// questionItem maps one question plus its answer state to a list item.
func (v *View) questionItem(session *domain.ChatSession, q domain.Question) list.Item {
	badge := ""
	if q.Required {
		badge = "(required)"
	}

	detail := q.Description
	if value, ok := session.Answers[q.Key]; ok && value != nil {
		detail = fmt.Sprintf("= %v", value)
		if session.IsPrefilled(q.Key) {
			detail += "  (prefilled)"
		}
	}

	return list.Item{
		ID:     q.Key,
		Title:  q.Prompt,
		Badge:  badge,
		Detail: detail,
	}
}

// Update handles messages for the questions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerSubmitted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.clearError()
		v.Refresh()
		return v, nil

	case messages.AnswerCleared:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.clearError()
		v.Refresh()
		return v, nil

	case messages.DraftGenerated:
		v.generating = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return v, nil

	case messages.TemplateSelected:
		if msg.Err == nil {
			v.Refresh()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditKey(msg)
	}

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
		v.startEditing()
		if v.editing {
			return v, v.input.Focus()
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
	case "c":
		if item := v.list.SelectedItem(); item != nil {
			return v, v.clearAnswer(item.ID)
		}
	case "g":
		if v.generating {
			return v, nil
		}
		v.generating = true
		v.statusbar.SetState(status.StateQuestions)
		v.statusbar.SetMessage("Generating draft...")
		return v, v.generate()
	}

	return v, nil
}

// handleEditKey processes keyboard input while editing an answer.
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		raw := strings.TrimSpace(v.input.Value())
		key := v.editKey
		v.stopEditing()
		return v, v.setAnswer(key, raw)
	case tea.KeyEsc:
		v.stopEditing()
		return v, nil
	default:
		// Handle other keys
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// startEditing opens the input for the selected question, pre-seeded
// with its current answer.
func (v *View) startEditing() {
	item := v.list.SelectedItem()
	if item == nil {
		return
	}

	v.editing = true
	v.editKey = item.ID
	v.input.SetLabel(item.Title + ": ")

	session := v.session()
	if session == nil {
		v.input.SetValue("")
		return
	}
	if value, ok := session.Answers[item.ID]; ok && value != nil {
		v.input.SetValue(fmt.Sprintf("%v", value))
		return
	}
	v.input.SetValue("")
}

// stopEditing closes the answer input.
func (v *View) stopEditing() {
	v.editing = false
	v.editKey = ""
	v.input.SetValue("")
	v.input.Blur()
}

// setAnswer records an answer, coercing the raw text to the question's
// declared type.
func (v *View) setAnswer(key, raw string) tea.Cmd {
	return func() tea.Msg {
		value := v.coerceAnswer(key, raw)
		err := v.chatService.SetAnswer(v.ctx, key, value)
		return messages.AnswerSubmitted{Key: key, Err: err}
	}
}

// clearAnswer removes an answer.
func (v *View) clearAnswer(key string) tea.Cmd {
	return func() tea.Msg {
		err := v.chatService.ClearAnswer(v.ctx, key)
		return messages.AnswerCleared{Key: key, Err: err}
	}
}

// generate requests draft generation from the collected answers.
func (v *View) generate() tea.Cmd {
	return func() tea.Msg {
		draft, err := v.chatService.Generate(v.ctx)
		return messages.DraftGenerated{Draft: draft, Err: err}
	}
}

// coerceAnswer converts raw input text to the declared answer type.
// Unparseable values pass through as strings so validation can name the
// offending key.
func (v *View) coerceAnswer(key, raw string) any {
	session := v.session()
	if session == nil {
		return raw
	}

	for _, q := range session.Questions {
		if q.Key != key {
			continue
		}
		switch q.Type {
		case domain.TypeNumber:
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				return n
			}
		case domain.TypeBoolean:
			if b, err := strconv.ParseBool(raw); err == nil {
				return b
			}
		}
		break
	}
	return raw
}

// View renders the questions view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	title := "Questions"
	if session := v.session(); session != nil && session.TemplateTitle != "" {
		title = "Questions: " + session.TemplateTitle
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if v.list.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("No template selected yet. Match one from the chat view."))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	if v.editing {
		sections = append(sections, "", v.input.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// session returns the current session, or nil without a chat service.
func (v *View) session() *domain.ChatSession {
	if v.chatService == nil {
		return nil
	}
	return v.chatService.Current()
}

// clearError resets the error and status line.
func (v *View) clearError() {
	v.err = nil
	v.statusbar.SetState(status.StateQuestions)
	v.statusbar.SetMessage("")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.input.SetWidth(width)
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

// Editing reports whether an answer is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Generating reports whether draft generation is in flight.
func (v *View) Generating() bool {
	return v.generating
}

// Selected returns the selected question index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset closes any in-progress edit and refreshes from the session.
func (v *View) Reset() {
	v.stopEditing()
	v.generating = false
	v.clearError()
	v.Refresh()
}
