package tools

import (
	"context"
	"fmt"
	"strings"

	"leadagent/internal/config"
	"leadagent/internal/render"
)

// generateFlyer is the generate_flyer_pdf tool: renders a branded PDF and
// hands its download URL back on the side channel.
func generateFlyer(renderer *render.FlyerRenderer) Handler {
	return func(_ context.Context, params Params, snap config.Snapshot) (*Result, error) {
		title, err := params.Require("generate_flyer_pdf", "title")
		if err != nil {
			return nil, err
		}
		content, err := params.Require("generate_flyer_pdf", "content")
		if err != nil {
			return nil, err
		}

		url, err := renderer.Render(title, unescapeContent(content), params.String("filename"), snap)
		if err != nil {
			return nil, err
		}
		return &Result{
			Text:    fmt.Sprintf("I've generated the flyer '%s' for you. [Download PDF](%s)", title, url),
			Side:    &SideChannel{Action: "download", URL: url},
			Replace: true,
		}, nil
	}
}

// emailFlyer is the email_flyer tool: renders the PDF, then emails it as an
// attachment to the requested address.
func emailFlyer(renderer *render.FlyerRenderer, mailer *Mailer) Handler {
	return func(ctx context.Context, params Params, snap config.Snapshot) (*Result, error) {
		to, err := params.Require("email_flyer", "to_email")
		if err != nil {
			return nil, err
		}
		title, err := params.Require("email_flyer", "title")
		if err != nil {
			return nil, err
		}
		content, err := params.Require("email_flyer", "content")
		if err != nil {
			return nil, err
		}

		url, err := renderer.Render(title, unescapeContent(content), params.String("filename"), snap)
		if err != nil {
			return nil, err
		}

		subject := fmt.Sprintf("Your Requested Flyer: %s", title)
		body := fmt.Sprintf("Hello,\n\nPlease find attached the flyer for '%s' as requested.\n\nBest regards,\n%s", title, snap.AgentName())
		recipient, err := mailer.Send(ctx, to, subject, body, strings.TrimPrefix(url, "/"), snap)
		if err != nil {
			return &Result{Text: fmt.Sprintf("Error: %v", err), Replace: true}, nil
		}
		return &Result{
			Text:    fmt.Sprintf("Flyer emailed to %s. [Download PDF](%s)", recipient, url),
			Side:    &SideChannel{Action: "download", URL: url},
			Replace: true,
		}, nil
	}
}

// Models frequently double-escape line breaks inside directive string values;
// turn them back into real newlines before layout.
func unescapeContent(content string) string {
	return strings.ReplaceAll(content, `\n`, "\n")
}
