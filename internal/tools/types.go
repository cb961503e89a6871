package tools

import (
	agenterrors "leadagent/internal/errors"
)

// Directive is the single structured action a model reply may embed:
// { "tool": <name>, "params": {...} }.
type Directive struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// SideChannel is a machine-readable value surfaced to the caller alongside
// the human-readable text, e.g. a document URL the UI turns into a download.
type SideChannel struct {
	Action string `json:"action"`
	URL    string `json:"url"`
}

// Result is a normalized dispatch outcome. When Replace is set the text
// substitutes the model's reply; otherwise the model's cleaned reply stays
// and Text is a confirmation for logs and tests.
type Result struct {
	Text    string
	Side    *SideChannel
	Replace bool
}

// Params wraps a directive's parameter map with typed access.
type Params map[string]any

// String returns the named parameter as a string, empty when absent or not
// a string.
func (p Params) String(key string) string {
	if raw, ok := p[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

// Require returns the named string parameter or an InvalidParameters error
// naming the tool and the gap.
func (p Params) Require(tool, key string) (string, error) {
	value := p.String(key)
	if value == "" {
		return "", &agenterrors.InvalidParametersError{Tool: tool, Param: key}
	}
	return value, nil
}
