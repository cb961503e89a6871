package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"leadagent/internal/logging"
)

const (
	configFile    = "app_config.json"
	knowledgeFile = "knowledge_base.txt"
	presetsFile   = "domain_presets.json"
)

// Store reads and writes the business configuration document. The document
// has whole-document semantics: Save replaces the file, there are no partial
// transactions.
type Store struct {
	dataDir string
	logger  logging.Logger
}

// NewStore returns a store rooted at dataDir, creating it if needed.
func NewStore(dataDir string) *Store {
	_ = os.MkdirAll(dataDir, 0o755)
	return &Store{
		dataDir: dataDir,
		logger:  logging.NewComponentLogger("ConfigStore"),
	}
}

// Load reads the current configuration document together with the uploaded
// knowledge text. The returned snapshot is a detached copy: callers hold it
// for the duration of one agent invocation so prompt composition and document
// branding see consistent values even if the file changes underneath.
func (s *Store) Load() Snapshot {
	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dataDir, configFile))
	v.SetConfigType("json")

	values := map[string]any{}
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("config read failed, using empty document: %v", err)
		}
	} else {
		values = v.AllSettings()
	}

	knowledge := ""
	if data, err := os.ReadFile(filepath.Join(s.dataDir, knowledgeFile)); err == nil {
		knowledge = string(data)
	}

	return Snapshot{values: values, knowledge: knowledge}
}

// Save replaces the configuration document with doc.
func (s *Store) Save(doc map[string]any) error {
	v := viper.New()
	v.SetConfigType("json")
	for key, value := range doc {
		v.Set(key, value)
	}
	path := filepath.Join(s.dataDir, configFile)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Update merges the given keys into the current document and saves it.
func (s *Store) Update(changes map[string]any) (map[string]any, error) {
	doc := s.Load().Values()
	for key, value := range changes {
		doc[key] = value
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveKnowledge replaces the uploaded knowledge text.
func (s *Store) SaveKnowledge(text string) error {
	path := filepath.Join(s.dataDir, knowledgeFile)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}

// Snapshot is one consistent read of the configuration document. Well-known
// keys get typed accessors; everything else stays in the open-ended map.
type Snapshot struct {
	values    map[string]any
	knowledge string
}

// NewSnapshot builds a snapshot from raw values, primarily for tests.
func NewSnapshot(values map[string]any, knowledge string) Snapshot {
	if values == nil {
		values = map[string]any{}
	}
	return Snapshot{values: values, knowledge: knowledge}
}

// Values returns a shallow copy of the underlying document.
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s Snapshot) stringKey(key, fallback string) string {
	if raw, ok := s.values[key]; ok {
		if str, ok := raw.(string); ok && str != "" {
			return str
		}
	}
	return fallback
}

// CompanyName returns the configured company name or a generic default.
func (s Snapshot) CompanyName() string {
	return s.stringKey("company_name", "the company")
}

// AgentName returns the configured persona name or a generic default.
func (s Snapshot) AgentName() string {
	return s.stringKey("agent_name", "Assistant")
}

// CEOEmail returns the escalation address, empty when unset.
func (s Snapshot) CEOEmail() string {
	return s.stringKey("ceo_email", "")
}

// Knowledge returns the uploaded knowledge text, empty when none exists.
func (s Snapshot) Knowledge() string {
	return s.knowledge
}

// StrictKnowledge reports whether the agent must answer only from the
// uploaded knowledge text. Defaults to true; setting strict_knowledge=false
// additionally allows the configured offerings list.
func (s Snapshot) StrictKnowledge() bool {
	raw, ok := s.values["strict_knowledge"]
	if !ok {
		return true
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return true
		}
		return parsed
	default:
		return true
	}
}

// Offerings returns the configured structured offerings, if any.
func (s Snapshot) Offerings() []any {
	if raw, ok := s.values["offerings"]; ok {
		if list, ok := raw.([]any); ok {
			return list
		}
	}
	// Presets historically stored sample data under "products".
	if raw, ok := s.values["products"]; ok {
		if list, ok := raw.([]any); ok {
			return list
		}
	}
	return nil
}
