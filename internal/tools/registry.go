package tools

import (
	"context"
	"sort"

	"leadagent/internal/config"
	agenterrors "leadagent/internal/errors"
	"leadagent/internal/leads"
	"leadagent/internal/logging"
	"leadagent/internal/render"
)

// Handler executes one tool against a directive's parameters. The snapshot is
// the same configuration read the rest of the invocation uses.
type Handler func(ctx context.Context, params Params, snap config.Snapshot) (*Result, error)

// Registry is the closed dispatch table mapping tool names to handlers.
type Registry struct {
	handlers map[string]Handler
	logger   logging.Logger
}

// NewRegistry wires the five built-in tools against their collaborators.
func NewRegistry(leadStore *leads.Store, mailer *Mailer, renderer *render.FlyerRenderer) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		logger:   logging.NewComponentLogger("ToolRegistry"),
	}
	r.handlers["update_lead_info"] = updateLeadInfo(leadStore)
	r.handlers["send_sms"] = sendSMS()
	r.handlers["send_email"] = sendEmail(mailer)
	r.handlers["generate_flyer_pdf"] = generateFlyer(renderer)
	r.handlers["email_flyer"] = emailFlyer(renderer, mailer)
	return r
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes a parsed directive to its handler. An unrecognized tool
// name yields ErrUnknownTool and no side effect.
func (r *Registry) Dispatch(ctx context.Context, d *Directive, snap config.Snapshot) (*Result, error) {
	handler, ok := r.handlers[d.Tool]
	if !ok {
		return nil, agenterrors.ErrUnknownTool
	}
	r.logger.Info("dispatching tool %s", d.Tool)
	return handler(ctx, Params(d.Params), snap)
}
