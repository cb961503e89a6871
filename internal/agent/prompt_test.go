package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadagent/internal/config"
)

func TestComposePromptDefaults(t *testing.T) {
	prompt := ComposePrompt(config.NewSnapshot(nil, ""))

	assert.Contains(t, prompt, "You represent the company")
	assert.Contains(t, prompt, "Your name is Assistant.")
	assert.Contains(t, prompt, "(no documents uploaded yet)")
}

func TestComposePromptEmbedsConfiguration(t *testing.T) {
	snap := config.NewSnapshot(map[string]any{
		"company_name": "Acme Travel",
		"agent_name":   "Tripper",
	}, "Bali packages start at $999.")

	prompt := ComposePrompt(snap)

	assert.Contains(t, prompt, "You represent Acme Travel")
	assert.Contains(t, prompt, "Your name is Tripper.")
	assert.Contains(t, prompt, "Bali packages start at $999.")
	assert.Contains(t, prompt, refusalTemplate)
}

func TestComposePromptEnumeratesToolVocabulary(t *testing.T) {
	prompt := ComposePrompt(config.NewSnapshot(nil, ""))

	for _, tool := range []string{
		"update_lead_info(name, email, mobile, topic)",
		"generate_flyer_pdf(title, content, filename)",
		"email_flyer(to_email, title, content, filename)",
		"send_email(to_email, subject, content)",
		"send_sms(mobile_number, message)",
	} {
		assert.Contains(t, prompt, tool)
	}
	assert.Contains(t, prompt, `{ "tool": "tool_name", "params": { ... } }`)
	assert.Contains(t, prompt, "AT MOST ONE")
}

func TestComposePromptStrictKnowledgeToggle(t *testing.T) {
	offerings := []any{map[string]any{"name": "Bali Getaway"}}

	strict := ComposePrompt(config.NewSnapshot(map[string]any{
		"offerings": offerings,
	}, ""))
	assert.Contains(t, strict, "STRICTLY LIMITED SCOPE")
	assert.NotContains(t, strict, "Bali Getaway")

	open := ComposePrompt(config.NewSnapshot(map[string]any{
		"strict_knowledge": false,
		"offerings":        offerings,
	}, ""))
	assert.NotContains(t, open, "STRICTLY LIMITED SCOPE")
	assert.Contains(t, open, "OFFERINGS:")
	assert.Contains(t, open, "Bali Getaway")
}

func TestComposePromptIsPure(t *testing.T) {
	snap := config.NewSnapshot(map[string]any{"company_name": "Acme"}, "facts")
	first := ComposePrompt(snap)
	second := ComposePrompt(snap)

	assert.True(t, strings.EqualFold(first, second))
	assert.Equal(t, first, second)
}
