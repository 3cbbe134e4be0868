package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// timeLayout preserves sub-second precision so message ordering
// survives a reload round-trip.
const timeLayout = time.RFC3339Nano

// Save upserts a session snapshot.
func (s *sessionStore) Save(ctx context.Context, session *domain.ChatSession) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("encoding messages: %w", err)
	}
	questions, err := json.Marshal(session.Questions)
	if err != nil {
		return fmt.Errorf("encoding questions: %w", err)
	}
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	prefilled, err := json.Marshal(session.PrefilledKeys)
	if err != nil {
		return fmt.Errorf("encoding prefilled keys: %w", err)
	}
	draft, err := json.Marshal(session.Draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, title, created_at, updated_at, template_id, template_title,
			messages, questions, answers, prefilled_keys, draft)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at,
			template_id = excluded.template_id,
			template_title = excluded.template_title,
			messages = excluded.messages,
			questions = excluded.questions,
			answers = excluded.answers,
			prefilled_keys = excluded.prefilled_keys,
			draft = excluded.draft
	`, session.ID, session.Title,
		session.CreatedAt.UTC().Format(timeLayout),
		session.UpdatedAt.UTC().Format(timeLayout),
		session.TemplateID, session.TemplateTitle,
		string(messages), string(questions), string(answers), string(prefilled), string(draft))

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.ChatSession, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at, template_id, template_title,
			messages, questions, answers, prefilled_keys, draft
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// List returns all sessions, newest first by update time.
func (s *sessionStore) List(ctx context.Context) ([]domain.ChatSession, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at, template_id, template_title,
			messages, questions, answers, prefilled_keys, draft
		FROM sessions
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ChatSession //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	// Sort in Go on the parsed times rather than on the serialized
	// strings; RFC3339Nano does not sort lexically across precisions.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (s *sessionStore) Close() error {
	return s.store.Close()
}

// scanSession reads one session row, reconstructing timestamps and
// JSON snapshots.
func scanSession(scan func(dest ...any) error) (*domain.ChatSession, error) {
	var (
		session              domain.ChatSession
		createdAt, updatedAt string
		messages, questions  string
		answers, prefilled   string
		draft                string
	)

	err := scan(&session.ID, &session.Title, &createdAt, &updatedAt,
		&session.TemplateID, &session.TemplateTitle,
		&messages, &questions, &answers, &prefilled, &draft)
	if err != nil {
		return nil, err
	}

	if session.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if err := json.Unmarshal([]byte(messages), &session.Messages); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &session.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &session.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	if err := json.Unmarshal([]byte(prefilled), &session.PrefilledKeys); err != nil {
		return nil, fmt.Errorf("decoding prefilled keys: %w", err)
	}
	if err := json.Unmarshal([]byte(draft), &session.Draft); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}

	return &session, nil
}
