package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preset is one entry of the domain preset catalog: a ready-made business
// profile the operator can apply in one click.
type Preset struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	CEOEmail    string `json:"ceo_email"`
	SampleData  []any  `json:"sample_data,omitempty"`
}

// Presets loads the preset catalog. A missing catalog is an empty list, not
// an error.
func (s *Store) Presets() ([]Preset, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, presetsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []Preset{}, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	return presets, nil
}

// ApplyPreset rewrites the configuration document from the named preset.
func (s *Store) ApplyPreset(id string) (*Preset, error) {
	presets, err := s.Presets()
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		if p.ID != id {
			continue
		}
		doc := map[string]any{
			"company_name": p.CompanyName,
			"ceo_email":    p.CEOEmail,
			"agent_name":   p.CompanyName + " Assistant",
		}
		if len(p.SampleData) > 0 {
			doc["offerings"] = p.SampleData
		}
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		s.logger.Info("applied preset %s (%s)", p.ID, p.CompanyName)
		return &p, nil
	}
	return nil, fmt.Errorf("preset not found: %s", id)
}
