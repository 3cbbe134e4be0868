package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/views/chat"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/views/draft"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/views/questions"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/views/sessions"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/views/templates"
)

// viewCycle is the tab order through the main views.
var viewCycle = []messages.ViewType{
	messages.ViewChat,
	messages.ViewQuestions,
	messages.ViewDraft,
	messages.ViewSessions,
	messages.ViewTemplates,
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversation view.
	chatView *chat.View

	// questionsView is the answer form view.
	questionsView *questions.View

	// draftView shows the generated draft.
	draftView *draft.View

	// sessionsView lists stored sessions.
	sessionsView *sessions.View

	// templatesView lists the backend template library.
	templatesView *templates.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		chatView:      chat.NewView(s, km, ports.Chat, ports.Upload),
		questionsView: questions.NewView(s, km, ports.Chat),
		draftView:     draft.NewView(s, km, ports.Chat),
		sessionsView:  sessions.NewView(s, km, ports.Chat),
		templatesView: templates.NewView(s, km, ports.Template),
		currentView:   messages.ViewChat, // Start in the conversation
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.questionsView.WithContext(ctx)
	a.sessionsView.WithContext(ctx)
	a.templatesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lexdraft - Legal Drafting"),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.questionsView.SetDimensions(msg.Width, msg.Height)
		a.draftView.SetDimensions(msg.Width, msg.Height)
		a.sessionsView.SetDimensions(msg.Width, msg.Height)
		a.templatesView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.MatchProgressed:
		a.chatView, cmd = a.chatView.Update(msg)
		if msg.Done && msg.Err == nil && msg.QuestionsReady {
			// An unambiguous match was auto-selected, move straight to
			// the questions.
			a.questionsView.Refresh()
			a.currentView = messages.ViewQuestions
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.TemplateSelected:
		a.chatView, cmd = a.chatView.Update(msg)
		if msg.Err == nil {
			a.questionsView.Refresh()
			a.currentView = messages.ViewQuestions
		} else {
			a.err = msg.Err
		}
		return a, cmd

	case messages.AnswerSubmitted, messages.AnswerCleared:
		a.questionsView, cmd = a.questionsView.Update(msg)
		return a, cmd

	case messages.DraftGenerated:
		a.questionsView, _ = a.questionsView.Update(msg)
		a.draftView, cmd = a.draftView.Update(msg)
		if msg.Err == nil {
			a.currentView = messages.ViewDraft
		} else {
			a.err = msg.Err
		}
		return a, cmd

	case messages.DraftSaved:
		a.draftView, cmd = a.draftView.Update(msg)
		return a, cmd

	case messages.SessionsLoaded, messages.SessionDeleted:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case messages.SessionSwitched:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		// The switched session is current now. Resume where it left
		// off: a generated draft, an answer form in progress, or the
		// transcript.
		a.chatView.Reset()
		a.questionsView.Refresh()
		switch {
		case msg.Session != nil && msg.Session.Draft != nil:
			a.draftView.Reset()
			a.currentView = messages.ViewDraft
		case msg.Session != nil && len(msg.Session.Questions) > 0:
			a.currentView = messages.ViewQuestions
		default:
			a.currentView = messages.ViewChat
		}
		return a, nil

	case messages.TemplatesLoaded, messages.TemplateDetailLoaded, messages.TemplateDeleted:
		a.templatesView, cmd = a.templatesView.Update(msg)
		return a, cmd

	case messages.UploadCompleted:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		cmd = a.forwardToCurrent(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.forwardToCurrent(msg)
}

// handleKeyMsg routes keyboard input: global bindings first, then the
// active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Tab cycles the main views unless an answer is being edited.
	if msg.Type == tea.KeyTab && !a.editing() {
		return a.changeView(a.nextView())
	}

	// Help from non-typing views.
	if msg.String() == "?" && a.currentView != messages.ViewChat && !a.editing() {
		a.currentView = messages.ViewHelp
		return a, nil
	}

	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewChat
		}
		return a, nil
	}

	return a, a.forwardToCurrent(msg)
}

// editing reports whether a view is capturing free text outside chat.
func (a *App) editing() bool {
	return a.currentView == messages.ViewQuestions && a.questionsView.Editing()
}

// nextView returns the view after the current one in the tab cycle.
func (a *App) nextView() messages.ViewType {
	for i, v := range viewCycle {
		if v == a.currentView {
			return viewCycle[(i+1)%len(viewCycle)]
		}
	}
	return messages.ViewChat
}

// changeView activates a view and runs its entry initialisation.
func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewChat:
		return a, a.chatView.Init()
	case messages.ViewQuestions:
		a.questionsView.Reset()
		return a, a.questionsView.Init()
	case messages.ViewDraft:
		a.draftView.Reset()
		return a, a.draftView.Init()
	case messages.ViewSessions:
		a.sessionsView.Reset()
		return a, a.sessionsView.Init()
	case messages.ViewTemplates:
		a.templatesView.Reset()
		return a, a.templatesView.Init()
	case messages.ViewHelp:
		// Help is rendered inline and needs no initialisation
	}
	return a, nil
}

// forwardToCurrent sends a message to the active view.
func (a *App) forwardToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
	case messages.ViewQuestions:
		a.questionsView, cmd = a.questionsView.Update(msg)
	case messages.ViewDraft:
		a.draftView, cmd = a.draftView.Update(msg)
	case messages.ViewSessions:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
	case messages.ViewTemplates:
		a.templatesView, cmd = a.templatesView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewQuestions:
		return a.questionsView.View()
	case messages.ViewDraft:
		return a.draftView.View()
	case messages.ViewSessions:
		return a.sessionsView.View()
	case messages.ViewTemplates:
		return a.templatesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.chatView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	backend := ""
	if a.ports.Settings != nil {
		if settings, err := a.ports.Settings.Get(); err == nil {
			backend = "\nBackend: " + settings.BaseURL + "\n"
		}
	}

	return `Help
` + backend + `
Navigation:
  tab         Cycle views (chat, questions, draft, sessions, templates)
  esc         Back / Cancel
  ctrl+c      Quit

Chat:
  (type)      Describe the document you need
  enter       Submit
  /upload <path>  Upload a PDF or DOCX as a new template

Questions:
  j/k, ↑/↓    Navigate questions
  enter       Answer the selected question
  c           Clear answer
  g           Generate draft

Draft:
  j/k, ↑/↓    Scroll
  s           Save to file

Sessions:
  enter       Resume session
  n           New session
  d           Delete session

[esc] back to chat`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.questionsView.SetDimensions(width, height)
	a.draftView.SetDimensions(width, height)
	a.sessionsView.SetDimensions(width, height)
	a.templatesView.SetDimensions(width, height)
}
