package tools

import (
	"context"

	"leadagent/internal/config"
	"leadagent/internal/logging"
)

// sendSMS is the send_sms tool. Delivery is log-only; a real gateway
// integration lives outside this service.
func sendSMS() Handler {
	logger := logging.NewComponentLogger("SMS")
	return func(_ context.Context, params Params, _ config.Snapshot) (*Result, error) {
		mobile, err := params.Require("send_sms", "mobile_number")
		if err != nil {
			return nil, err
		}
		message, err := params.Require("send_sms", "message")
		if err != nil {
			return nil, err
		}
		logger.Info("mock SMS to %s: %s", mobile, message)
		return &Result{Text: "SMS sent successfully.", Replace: true}, nil
	}
}
