package draft

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	session *domain.ChatSession
}

func (m *MockChatService) Current() *domain.ChatSession { return m.session }

func (m *MockChatService) NewSession(context.Context) (*domain.ChatSession, error) {
	return domain.NewChatSession(), nil
}

func (m *MockChatService) Switch(context.Context, string) (*domain.ChatSession, error) {
	return nil, domain.ErrNotFound
}

func (m *MockChatService) Sessions(context.Context) ([]domain.ChatSession, error) {
	return nil, nil
}

func (m *MockChatService) DeleteSession(context.Context, string) error { return nil }

func (m *MockChatService) SubmitQuery(context.Context, string) (<-chan driving.ChatUpdate, error) {
	return nil, errors.New("not stubbed")
}

func (m *MockChatService) SelectTemplate(context.Context, string, string) error { return nil }

func (m *MockChatService) SetAnswer(context.Context, string, any) error { return nil }

func (m *MockChatService) ClearAnswer(context.Context, string) error { return nil }

func (m *MockChatService) Generate(context.Context) (*domain.Draft, error) {
	return nil, errors.New("not stubbed")
}

func sessionWithDraft() *domain.ChatSession {
	session := domain.NewChatSession()
	session.Draft = &domain.Draft{
		Markdown:      "# Mutual NDA\n\nThis Agreement is made between Acme and Globex.\nLine four.\nLine five.",
		InstanceID:    "d1",
		TemplateID:    "t1",
		TemplateTitle: "Mutual NDA",
	}
	return session
}

func newTestView() *View {
	view := NewView(nil, nil, &MockChatService{session: sessionWithDraft()})
	view.SetDimensions(80, 24)
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, 0, view.Scroll())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{})

	assert.Contains(t, view.View(), "Initialising")
}

func TestView_View_NoDraft(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{session: domain.NewChatSession()})
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "No draft yet")
}

func TestView_View_WithDraft(t *testing.T) {
	view := newTestView()

	out := view.View()

	assert.Contains(t, out, "Draft: Mutual NDA")
	assert.Contains(t, out, "# Mutual NDA")
	assert.Contains(t, out, "Acme and Globex")
}

func TestView_View_MissingVariables(t *testing.T) {
	session := sessionWithDraft()
	session.Draft.MissingVariables = []string{"party_b"}
	session.Draft.HasMissing = true
	view := NewView(nil, nil, &MockChatService{session: session})
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "Missing variables: party_b")
}

func TestView_Scrolling(t *testing.T) {
	view := newTestView()

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Scroll())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.Scroll())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, view.Scroll())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Scroll())

	// Does not scroll above the top.
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Scroll())
}

func TestView_Scrolling_ClampsAtEnd(t *testing.T) {
	view := newTestView()

	for range [20]int{} {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	lines := strings.Count(sessionWithDraft().Draft.Markdown, "\n") + 1
	assert.Equal(t, lines-1, view.Scroll())
}

func TestView_Scrolling_NoDraft(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{session: domain.NewChatSession()})
	view.SetDimensions(80, 24)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 0, view.Scroll())
}

func TestView_Save_WritesFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	view := newTestView()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, cmd)

	result := cmd()
	saved, ok := result.(messages.DraftSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, "draft-d1.md", saved.Path)

	data, err := os.ReadFile(filepath.Join(dir, "draft-d1.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Mutual NDA")
}

func TestView_Save_NoDraft(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{session: domain.NewChatSession()})
	view.SetDimensions(80, 24)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.Nil(t, cmd)
}

func TestView_DraftSaved_UpdatesStatus(t *testing.T) {
	view := newTestView()

	view.Update(messages.DraftSaved{Path: "draft-d1.md"})

	assert.Contains(t, view.statusbar.Message(), "draft-d1.md")
}

func TestView_DraftSaved_Error(t *testing.T) {
	view := newTestView()

	view.Update(messages.DraftSaved{Path: "draft-d1.md", Err: errors.New("permission denied")})

	assert.Error(t, view.Err())
}

func TestView_DraftGenerated_ResetsScroll(t *testing.T) {
	view := newTestView()
	view.scroll = 3

	view.Update(messages.DraftGenerated{Draft: &domain.Draft{Markdown: "# New"}})

	assert.Equal(t, 0, view.Scroll())
}

func TestView_Esc_ReturnsToQuestions(t *testing.T) {
	view := newTestView()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewQuestions, changed.View)
}

func TestView_Reset(t *testing.T) {
	view := newTestView()
	view.scroll = 5
	view.err = errors.New("stale")

	view.Reset()

	assert.Equal(t, 0, view.Scroll())
	assert.Nil(t, view.Err())
}
