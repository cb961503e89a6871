package agent

import (
	"context"
	"errors"
	"fmt"

	"leadagent/internal/config"
	agenterrors "leadagent/internal/errors"
	"leadagent/internal/llm"
	"leadagent/internal/logging"
	"leadagent/internal/session"
	"leadagent/internal/tools"
)

// Orchestrator is the top-level conversation entry point: it composes the
// system prompt, calls the completion service with the full turn history,
// runs the reply through directive extraction and tool dispatch, and returns
// the user-visible text plus an optional side-channel result.
type Orchestrator struct {
	client   llm.Client
	store    *config.Store
	registry *tools.Registry
	logger   logging.Logger
}

// New wires an orchestrator.
func New(client llm.Client, store *config.Store, registry *tools.Registry) *Orchestrator {
	return &Orchestrator{
		client:   client,
		store:    store,
		registry: registry,
		logger:   logging.NewComponentLogger("Orchestrator"),
	}
}

// ProcessTurn handles one user message against the given history. History is
// read-only here; the caller persists the new turns.
//
// Failures rooted in the unpredictable upstream text (connectivity, malformed
// directives, bad parameters, unknown tools) are absorbed into the display
// text. The returned error is non-nil only for document render failures,
// which the caller must surface: a flyer request that silently does nothing
// is worse than a visible failure.
func (o *Orchestrator) ProcessTurn(ctx context.Context, userText string, history []session.Turn) (string, *tools.SideChannel, error) {
	// One configuration read per invocation: prompt composition, recipient
	// resolution and document branding all see the same values.
	snap := o.store.Load()

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: ComposePrompt(snap)})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: userText})

	reply, err := o.client.Complete(ctx, messages)
	if err != nil {
		o.logger.Error("completion failed: %v", err)
		return fmt.Sprintf("Error contacting AI: %v", err), nil, nil
	}

	directive, cleaned := ExtractDirective(reply)
	if directive == nil {
		return cleaned, nil, nil
	}

	result, err := o.registry.Dispatch(ctx, directive, snap)
	if err != nil {
		var renderErr *agenterrors.RenderError
		switch {
		case errors.As(err, &renderErr):
			return "", nil, err
		case errors.Is(err, agenterrors.ErrUnknownTool):
			o.logger.Warn("ignoring directive for unknown tool %q", directive.Tool)
			return reply, nil, nil
		case agenterrors.IsInvalidParameters(err):
			o.logger.Warn("dropping directive: %v", err)
		default:
			o.logger.Error("tool %s failed: %v", directive.Tool, err)
		}
		if cleaned == "" {
			cleaned = technicalIssueApology
		}
		return cleaned, nil, nil
	}

	display := cleaned
	if result.Replace || display == "" {
		display = result.Text
	}
	return display, result.Side, nil
}
