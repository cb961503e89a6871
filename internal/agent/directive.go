package agent

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	agenterrors "leadagent/internal/errors"
	"leadagent/internal/logging"
	"leadagent/internal/tools"
)

// technicalIssueApology replaces malformed replies whose directive span
// swallowed all the prose, so the user never sees raw broken JSON.
const technicalIssueApology = "I attempted to perform an action but encountered a technical issue."

var extractLogger = logging.NewComponentLogger("DirectiveExtractor")

// ExtractDirective scans a raw model reply for the single embedded action
// directive. It returns the directive (nil when absent) and the reply text
// with the directive span removed, for fallback display.
//
// The candidate span runs from the first '{' to the last '}', considered only
// when the literal substring `"tool":` occurs somewhere in the reply. That
// guard keeps prose with stray braces from triggering a parse. Exactly one
// span is ever considered; nested or multiple directives are unsupported.
func ExtractDirective(raw string) (*tools.Directive, string) {
	if !strings.Contains(raw, `"tool":`) {
		return nil, raw
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, raw
	}

	span := raw[start : end+1]
	directive, err := parseDirective(span)
	if err != nil {
		extractLogger.Warn("%v", &agenterrors.ParseError{Span: span, Err: err})
		clean := strings.TrimSpace(raw[:start])
		if clean == "" {
			clean = technicalIssueApology
		}
		return nil, clean
	}

	cleaned := strings.TrimSpace(raw[:start] + raw[end+1:])
	if directive.Tool == "" {
		// Parsed but not a directive; drop the span and move on.
		return nil, cleaned
	}
	return directive, cleaned
}

// parseDirective applies the layered repair strategy: strict parse, then the
// one empirically justified heuristic (models emit raw newlines inside string
// values), then a lenient repair pass that tolerates stray control characters
// and similar damage.
func parseDirective(span string) (*tools.Directive, error) {
	if directive, err := decodeDirective(span); err == nil {
		return directive, nil
	} else if escaped := strings.ReplaceAll(span, "\n", `\n`); escaped != span {
		if directive, err := decodeDirective(escaped); err == nil {
			return directive, nil
		}
	}

	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		return nil, err
	}
	return decodeDirective(repaired)
}

func decodeDirective(span string) (*tools.Directive, error) {
	var directive tools.Directive
	if err := json.Unmarshal([]byte(span), &directive); err != nil {
		return nil, err
	}
	return &directive, nil
}
