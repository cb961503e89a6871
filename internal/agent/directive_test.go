package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDirectiveNoToolSubstring(t *testing.T) {
	raw := "Sure! Here is a summary {with some braces} but no action."
	directive, cleaned := ExtractDirective(raw)

	assert.Nil(t, directive)
	assert.Equal(t, raw, cleaned)
}

func TestExtractDirectiveWellFormed(t *testing.T) {
	raw := `Sure! {"tool":"update_lead_info","params":{"name":"Amy"}}`
	directive, cleaned := ExtractDirective(raw)

	require.NotNil(t, directive)
	assert.Equal(t, "update_lead_info", directive.Tool)
	assert.Equal(t, "Amy", directive.Params["name"])
	assert.Equal(t, "Sure!", cleaned)
}

func TestExtractDirectiveRepairsRawNewlineInString(t *testing.T) {
	raw := "{\"tool\":\"send_sms\",\"params\":{\"mobile_number\":\"555\",\"message\":\"line one\nline two\"}}"
	directive, _ := ExtractDirective(raw)

	require.NotNil(t, directive)
	assert.Equal(t, "send_sms", directive.Tool)
	assert.Equal(t, "line one\nline two", directive.Params["message"])
}

func TestExtractDirectiveLenientRepair(t *testing.T) {
	// Trailing comma is invalid JSON and survives the newline pass; only the
	// lenient repair tier recovers it.
	raw := `{"tool":"send_sms","params":{"mobile_number":"555","message":"hi",}}`
	directive, _ := ExtractDirective(raw)

	require.NotNil(t, directive)
	assert.Equal(t, "send_sms", directive.Tool)
}

func TestExtractDirectiveUnparseableKeepsPrefix(t *testing.T) {
	raw := `Let me do that. {"tool": not even close to json`
	directive, cleaned := ExtractDirective(raw)

	// No closing brace: the span gate fails before any parse attempt.
	assert.Nil(t, directive)
	assert.Equal(t, raw, cleaned)
}

func TestExtractDirectiveBrokenSpanFallsBackToPrefix(t *testing.T) {
	// The span parses as JSON but tool is not a string, so every tier fails
	// to produce a directive.
	raw := `On it! {"tool": ["send_sms"], "params": {}}`
	directive, cleaned := ExtractDirective(raw)

	assert.Nil(t, directive)
	assert.Equal(t, "On it!", cleaned)
}

func TestExtractDirectiveEmptyPrefixGetsApology(t *testing.T) {
	raw := `{"tool": ["send_sms"], "params": {}}`
	directive, cleaned := ExtractDirective(raw)

	assert.Nil(t, directive)
	assert.Equal(t, technicalIssueApology, cleaned)
}

func TestExtractDirectiveRemovesSpanFromDisplayText(t *testing.T) {
	raw := "Before. {\"tool\":\"send_sms\",\"params\":{\"mobile_number\":\"1\",\"message\":\"x\"}} After."
	directive, cleaned := ExtractDirective(raw)

	require.NotNil(t, directive)
	assert.Equal(t, "Before.  After.", cleaned)
}

func TestExtractDirectiveEmptyToolTreatedAsAbsent(t *testing.T) {
	raw := `Noted: {"tool":"","params":{}} done.`
	directive, cleaned := ExtractDirective(raw)

	assert.Nil(t, directive)
	assert.Equal(t, "Noted:  done.", cleaned)
}
