package leads

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadagent/internal/logging"
)

// Lead is one captured contact record. Fields arrive incrementally as the
// agent collects them over a conversation.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists the lead roster as a single JSON file. Writes are serialized
// with a mutex because concurrent conversations share the roster.
type Store struct {
	path   string
	logger logging.Logger

	mu sync.Mutex
}

// NewStore returns a roster store at dataDir/leads.json.
func NewStore(dataDir string) *Store {
	_ = os.MkdirAll(dataDir, 0o755)
	return &Store{
		path:   filepath.Join(dataDir, "leads.json"),
		logger: logging.NewComponentLogger("LeadStore"),
	}
}

// Upsert merges the given fields into an existing lead matched by email or
// mobile, or creates a new record. Empty fields never overwrite known values.
func (s *Store) Upsert(name, email, mobile, topic string) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.read()
	if err != nil {
		return nil, err
	}

	var lead *Lead
	for i := range roster {
		if matches(&roster[i], email, mobile) {
			lead = &roster[i]
			break
		}
	}
	if lead == nil {
		roster = append(roster, Lead{ID: uuid.NewString(), CreatedAt: time.Now()})
		lead = &roster[len(roster)-1]
	}

	if name != "" {
		lead.Name = name
	}
	if email != "" {
		lead.Email = email
	}
	if mobile != "" {
		lead.Mobile = mobile
	}
	if topic != "" {
		lead.Topic = topic
	}
	lead.UpdatedAt = time.Now()

	if err := s.write(roster); err != nil {
		return nil, err
	}
	s.logger.Info("lead recorded: name=%q email=%q mobile=%q", lead.Name, lead.Email, lead.Mobile)
	return lead, nil
}

// All returns the full roster, oldest first.
func (s *Store) All() ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func matches(lead *Lead, email, mobile string) bool {
	if email != "" && strings.EqualFold(lead.Email, email) {
		return true
	}
	if mobile != "" && lead.Mobile == mobile {
		return true
	}
	return false
}

func (s *Store) read() ([]Lead, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Lead{}, nil
		}
		return nil, fmt.Errorf("read leads: %w", err)
	}
	var roster []Lead
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return roster, nil
}

func (s *Store) write(roster []Lead) error {
	data, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write leads: %w", err)
	}
	return nil
}
