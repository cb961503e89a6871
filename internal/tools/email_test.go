package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadagent/internal/config"
	agenterrors "leadagent/internal/errors"
)

func TestResolveCEOAliasWithoutConfiguredAddress(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})

	_, err := mailer.Resolve("CEO", config.NewSnapshot(nil, ""))
	assert.ErrorIs(t, err, agenterrors.ErrMissingRecipient)

	_, err = mailer.Resolve("ceo", config.NewSnapshot(nil, ""))
	assert.ErrorIs(t, err, agenterrors.ErrMissingRecipient, "alias match is case-insensitive")
}

func TestResolveCEOAliasWithConfiguredAddress(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	snap := config.NewSnapshot(map[string]any{"ceo_email": "x@y.com"}, "")

	recipient, err := mailer.Resolve("CEO", snap)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", recipient)
}

func TestResolvePassesOrdinaryAddressesThrough(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})

	recipient, err := mailer.Resolve("amy@example.com", config.NewSnapshot(nil, ""))
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", recipient)
}

func TestDegradedModeSendIsSuccess(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	snap := config.NewSnapshot(map[string]any{"ceo_email": "x@y.com"}, "")

	recipient, err := mailer.Send(context.Background(), "CEO", "subject", "body", "", snap)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", recipient)
}

func TestDegradedModeStillFailsOnMissingRecipient(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})

	_, err := mailer.Send(context.Background(), "CEO", "subject", "body", "", config.NewSnapshot(nil, ""))
	assert.ErrorIs(t, err, agenterrors.ErrMissingRecipient)
}

func TestSMTPConfigDegradedDetection(t *testing.T) {
	assert.True(t, SMTPConfig{Host: "h", Port: 587}.Degraded())
	assert.True(t, SMTPConfig{Host: "h", Port: 587, User: "u"}.Degraded())
	assert.False(t, SMTPConfig{Host: "h", Port: 587, User: "u", Password: "p"}.Degraded())
}
