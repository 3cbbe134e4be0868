// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/input"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// uploadPrefix triggers a document upload from the chat input.
const uploadPrefix = "/upload "

// CandidatePicker is the overlay shown when a match produced several
// candidates and the user must choose one.
type CandidatePicker struct {
	candidates []domain.TemplateMatch
	selected   int
	visible    bool
}

// View is the conversation view: transcript, input line, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	statusbar *status.Bar

	chatService   driving.ChatService
	uploadService driving.UploadService
	ctx           context.Context

	width    int
	height   int
	ready    bool
	err      error
	matching bool
	picker   *CandidatePicker
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	uploadService driving.UploadService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewPromptInput(s, "You: ", "Describe the document you need..."),
		statusbar:     status.NewBar(s, km),
		chatService:   chatService,
		uploadService: uploadService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.MatchProgressed:
		return v.handleMatchProgressed(msg)

	case messages.TemplateSelected:
		v.picker = nil
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("Selected: %s", msg.Title))
		return v, nil

	case messages.UploadCompleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf(
			"Uploaded %s as template %q", msg.Result.DocumentName, msg.Result.Template.Title,
		))
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.picker != nil && v.picker.visible {
		return v.handlePickerKey(msg)
	}

	// Esc clears any error state; the transcript itself stays.
	if msg.Type == tea.KeyEsc {
		v.ClearError()
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		value := strings.TrimSpace(v.input.Value())
		if value == "" || v.matching {
			return v, nil
		}
		v.input.SetValue("")

		if strings.HasPrefix(value, uploadPrefix) {
			path := strings.TrimSpace(strings.TrimPrefix(value, uploadPrefix))
			v.statusbar.SetMessage("Uploading " + path + "...")
			return v, v.performUpload(path)
		}

		v.matching = true
		v.statusbar.SetState(status.StateMatching)
		return v, v.submitQuery(value)
	}

	// All other keys go to the input.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handlePickerKey processes keyboard input while the candidate picker is
// open.
func (v *View) handlePickerKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		if v.picker.selected > 0 {
			v.picker.selected--
		}
		return v, nil
	case tea.KeyDown:
		if v.picker.selected < len(v.picker.candidates)-1 {
			v.picker.selected++
		}
		return v, nil
	case tea.KeyEnter:
		candidate := v.picker.candidates[v.picker.selected]
		return v, v.selectCandidate(candidate)
	case tea.KeyEsc:
		v.picker = nil
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, nil
	default:
		// Handle other keys
	}

	switch msg.String() {
	case "k":
		if v.picker.selected > 0 {
			v.picker.selected--
		}
	case "j":
		if v.picker.selected < len(v.picker.candidates)-1 {
			v.picker.selected++
		}
	}

	return v, nil
}

// handleMatchProgressed consumes one update from an in-flight match.
func (v *View) handleMatchProgressed(msg messages.MatchProgressed) (*View, tea.Cmd) {
	if len(msg.Candidates) > 0 {
		v.picker = &CandidatePicker{
			candidates: msg.Candidates,
			selected:   0,
			visible:    true,
		}
	}

	if msg.Done {
		v.matching = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, nil
	}

	if msg.Updates != nil {
		return v, waitForUpdate(msg.Updates)
	}
	return v, nil
}

// submitQuery starts a streaming match and relays its first update.
func (v *View) submitQuery(query string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.MatchProgressed{Done: true, Err: ErrNoChatService}
		}

		updates, err := v.chatService.SubmitQuery(v.ctx, query)
		if err != nil {
			return messages.MatchProgressed{Done: true, Err: err}
		}
		return waitForUpdate(updates)()
	}
}

// waitForUpdate blocks on the next chat update and converts it into a
// Bubbletea message. Non-final updates carry the channel forward so the
// next command can keep reading.
func waitForUpdate(updates <-chan driving.ChatUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return messages.MatchProgressed{Done: true}
		}

		msg := messages.MatchProgressed{
			Candidates:     u.Candidates,
			QuestionsReady: u.QuestionsReady,
			Done:           u.Done,
			Err:            u.Err,
		}
		if !u.Done {
			msg.Updates = updates
		}
		return msg
	}
}

// selectCandidate picks a match candidate and fetches its questions.
func (v *View) selectCandidate(candidate domain.TemplateMatch) tea.Cmd {
	return func() tea.Msg {
		err := v.chatService.SelectTemplate(v.ctx, candidate.TemplateID, candidate.Title)
		return messages.TemplateSelected{
			TemplateID: candidate.TemplateID,
			Title:      candidate.Title,
			Err:        err,
		}
	}
}

// performUpload uploads a local document as a new template.
func (v *View) performUpload(path string) tea.Cmd {
	return func() tea.Msg {
		if v.uploadService == nil {
			return messages.UploadCompleted{Err: ErrNoUploadService}
		}

		result, err := v.uploadService.UploadFile(v.ctx, path)
		return messages.UploadCompleted{Result: result, Err: err}
	}
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("lexdraft")
	sections = append(sections, header, "")

	transcript := v.renderTranscript()
	sections = append(sections, transcript, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.picker != nil && v.picker.visible {
		sections = append(sections, v.renderPicker(), "")
	}

	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the current session's messages, newest at
// the bottom, clipped to the available height.
func (v *View) renderTranscript() string {
	session := v.session()
	if session == nil || !session.HasMessages() {
		return v.styles.Muted.Render("Describe the document you need and press enter.")
	}

	lines := make([]string, 0, len(session.Messages)*3)
	for i := range session.Messages {
		lines = append(lines, v.renderMessage(&session.Messages[i])...)
	}

	// Keep the tail: header, input, status bar and spacing take ~10 rows.
	visible := v.height - 10
	if visible < 3 {
		visible = 3
	}
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	return strings.Join(lines, "\n")
}

// renderMessage renders one transcript entry as label plus content.
func (v *View) renderMessage(msg *domain.Message) []string {
	var label string
	switch msg.Role {
	case domain.RoleUser:
		label = v.styles.UserLabel.Render("You")
	case domain.RoleAssistant:
		label = v.styles.AssistantLabel.Render("lexdraft")
	default:
		label = v.styles.Muted.Render("system")
	}

	lines := []string{label}
	for _, content := range strings.Split(msg.Content, "\n") {
		lines = append(lines, v.styles.Normal.Render("  "+content))
	}
	return append(lines, "")
}

// renderPicker renders the candidate selection overlay.
func (v *View) renderPicker() string {
	if v.picker == nil {
		return ""
	}

	lines := make([]string, 0, len(v.picker.candidates)+1)
	lines = append(lines, v.styles.Subtitle.Render("Pick a template:"))

	for i, c := range v.picker.candidates {
		indicator := "  "
		line := fmt.Sprintf("%s (%.0f%%)", c.Title, c.Confidence*100)
		if i == v.picker.selected {
			indicator = "> "
			lines = append(lines, v.styles.Selected.Render(indicator+line))
			continue
		}
		lines = append(lines, v.styles.Normal.Render(indicator+line))
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// session returns the current session, or nil without a chat service.
func (v *View) session() *domain.ChatSession {
	if v.chatService == nil {
		return nil
	}
	return v.chatService.Current()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

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

// InputValue returns the current input text.
func (v *View) InputValue() string {
	return v.input.Value()
}

// SetInputValue sets the input text.
func (v *View) SetInputValue(value string) {
	v.input.SetValue(value)
}

// Matching reports whether a match is in flight.
func (v *View) Matching() bool {
	return v.matching
}

// PickerVisible reports whether the candidate picker is open.
func (v *View) PickerVisible() bool {
	return v.picker != nil && v.picker.visible
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset returns the view to its initial input state. The transcript is
// owned by the chat service and is not touched.
func (v *View) Reset() {
	v.input.SetValue("")
	v.input.Focus()
	v.picker = nil
	v.matching = false
	v.ClearError()
}
