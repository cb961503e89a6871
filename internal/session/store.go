package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadagent/internal/logging"
)

// Turn is one conversation message. Role is "user" or "assistant".
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is an ordered turn sequence with timing metadata.
type Session struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic,omitempty"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMinutes reports how long the conversation has been active.
func (s *Session) DurationMinutes() int {
	if s.UpdatedAt.Before(s.CreatedAt) {
		return 0
	}
	return int(s.UpdatedAt.Sub(s.CreatedAt).Minutes())
}

// Store persists sessions as one JSON file each under a base directory.
type Store struct {
	baseDir string
	logger  logging.Logger
}

// NewStore returns a session store rooted at baseDir, creating it if needed.
func NewStore(baseDir string) *Store {
	_ = os.MkdirAll(baseDir, 0o755)
	return &Store{
		baseDir: baseDir,
		logger:  logging.NewComponentLogger("SessionStore"),
	}
}

// Create starts a new session with a fresh id.
func (s *Store) Create() (*Session, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Turns:     []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by id.
func (s *Store) Get(sessionID string) (*Session, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

// Append records a turn at the end of the session and persists it.
func (s *Store) Append(sessionID, role, content string) (*Session, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.Turns = append(session.Turns, Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	session.UpdatedAt = time.Now()
	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// All loads every stored session, for analytics.
func (s *Store) All() ([]*Session, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	var sessions []*Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		session, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			s.logger.Warn("skipping unreadable session file %s: %v", entry.Name(), err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *Store) path(sessionID string) string {
	return filepath.Join(s.baseDir, sessionID+".json")
}

func (s *Store) save(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(session.ID), data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", session.ID, err)
	}
	return nil
}
