package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	SessionsFunc      func(ctx context.Context) ([]domain.ChatSession, error)
	SwitchFunc        func(ctx context.Context, id string) (*domain.ChatSession, error)
	NewSessionFunc    func(ctx context.Context) (*domain.ChatSession, error)
	DeleteSessionFunc func(ctx context.Context, id string) error
}

func (m *MockChatService) Current() *domain.ChatSession { return nil }

func (m *MockChatService) NewSession(ctx context.Context) (*domain.ChatSession, error) {
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc(ctx)
	}
	return domain.NewChatSession(), nil
}

func (m *MockChatService) Switch(ctx context.Context, id string) (*domain.ChatSession, error) {
	if m.SwitchFunc != nil {
		return m.SwitchFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockChatService) Sessions(ctx context.Context) ([]domain.ChatSession, error) {
	if m.SessionsFunc != nil {
		return m.SessionsFunc(ctx)
	}
	return testSessions(), nil
}

func (m *MockChatService) DeleteSession(ctx context.Context, id string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, id)
	}
	return nil
}

func (m *MockChatService) SubmitQuery(context.Context, string) (<-chan driving.ChatUpdate, error) {
	return nil, errors.New("not stubbed")
}

func (m *MockChatService) SelectTemplate(context.Context, string, string) error { return nil }

func (m *MockChatService) SetAnswer(context.Context, string, any) error { return nil }

func (m *MockChatService) ClearAnswer(context.Context, string) error { return nil }

func (m *MockChatService) Generate(context.Context) (*domain.Draft, error) {
	return nil, errors.New("not stubbed")
}

func testSessions() []domain.ChatSession {
	return []domain.ChatSession{
		{
			ID:        "s2",
			Title:     "I need an NDA",
			Messages:  []domain.Message{domain.NewMessage(domain.RoleUser, "I need an NDA")},
			UpdatedAt: time.Date(2026, 2, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:        "s1",
			Title:     "employment contract",
			Messages:  []domain.Message{domain.NewMessage(domain.RoleUser, "employment contract")},
			UpdatedAt: time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC),
		},
	}
}

func newTestView() *View {
	view := NewView(nil, nil, &MockChatService{})
	view.SetDimensions(80, 24)
	return view
}

func loadedView() *View {
	view := newTestView()
	cmd := view.Init()
	view.Update(cmd())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, 0, view.Count())
}

func TestView_Init_LoadsSessions(t *testing.T) {
	view := newTestView()

	cmd := view.Init()
	require.NotNil(t, cmd)

	result := cmd()
	loaded, ok := result.(messages.SessionsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Sessions, 2)

	view.Update(loaded)
	assert.Equal(t, 2, view.Count())
}

func TestView_SessionsLoaded_Error(t *testing.T) {
	view := newTestView()

	view.Update(messages.SessionsLoaded{Err: errors.New("store corrupt")})

	assert.Error(t, view.Err())
}

func TestView_Enter_SwitchesSession(t *testing.T) {
	switched := ""
	mock := &MockChatService{
		SwitchFunc: func(_ context.Context, id string) (*domain.ChatSession, error) {
			switched = id
			return &domain.ChatSession{ID: id}, nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 24)
	view.Update(messages.SessionsLoaded{Sessions: testSessions()})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	result := cmd()
	msg, ok := result.(messages.SessionSwitched)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "s2", switched)
	assert.Equal(t, "s2", msg.Session.ID)
}

func TestView_Enter_EmptyList(t *testing.T) {
	view := newTestView()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_KeyN_NewSession(t *testing.T) {
	view := loadedView()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	require.NotNil(t, cmd)
	result := cmd()
	msg, ok := result.(messages.SessionSwitched)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.NotNil(t, msg.Session)
}

func TestView_KeyD_DeletesSelected(t *testing.T) {
	deleted := ""
	mock := &MockChatService{
		DeleteSessionFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 24)
	view.Update(messages.SessionsLoaded{Sessions: testSessions()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	require.NotNil(t, cmd)
	result := cmd()
	msg, ok := result.(messages.SessionDeleted)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "s1", deleted)
}

func TestView_SessionDeleted_Reloads(t *testing.T) {
	view := loadedView()

	_, cmd := view.Update(messages.SessionDeleted{ID: "s2"})

	require.NotNil(t, cmd)
	result := cmd()
	assert.IsType(t, messages.SessionsLoaded{}, result)
	assert.Contains(t, view.statusbar.Message(), "deleted")
}

func TestView_SessionDeleted_Error(t *testing.T) {
	view := loadedView()

	_, cmd := view.Update(messages.SessionDeleted{ID: "s2", Err: errors.New("locked")})

	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_Navigation(t *testing.T) {
	view := loadedView()

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Selected())
}

func TestView_Esc_ReturnsToChat(t *testing.T) {
	view := newTestView()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewChat, changed.View)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{})

	assert.Contains(t, view.View(), "Initialising")
}

func TestView_View_Empty(t *testing.T) {
	view := newTestView()

	assert.Contains(t, view.View(), "No stored sessions")
}

func TestView_View_WithSessions(t *testing.T) {
	view := loadedView()

	out := view.View()

	assert.Contains(t, out, "I need an NDA")
	assert.Contains(t, out, "1 messages")
	assert.Contains(t, out, "2026-02-10 14:30")
}

func TestView_Reset(t *testing.T) {
	view := loadedView()
	view.err = errors.New("stale")

	view.Reset()

	assert.Nil(t, view.Err())
}
