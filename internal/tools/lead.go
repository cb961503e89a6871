package tools

import (
	"context"
	"fmt"

	"leadagent/internal/config"
	"leadagent/internal/leads"
)

// updateLeadInfo records whatever contact fields the model extracted. All
// parameters are optional; the store merges them into the roster.
func updateLeadInfo(store *leads.Store) Handler {
	return func(_ context.Context, params Params, _ config.Snapshot) (*Result, error) {
		lead, err := store.Upsert(
			params.String("name"),
			params.String("email"),
			params.String("mobile"),
			params.String("topic"),
		)
		if err != nil {
			return nil, err
		}
		return &Result{
			Text: fmt.Sprintf("User info updated: %s, %s, %s", lead.Name, lead.Email, lead.Mobile),
		}, nil
	}
}
