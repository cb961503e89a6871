package tools

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"

	"leadagent/internal/config"
	agenterrors "leadagent/internal/errors"
	"leadagent/internal/logging"
)

// SMTPConfig carries outbound mail credentials. Empty credentials put the
// mailer in degraded mode: sends are logged and reported as successful
// without touching the network, so the agent loop never blocks on missing
// operational secrets.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPConfigFromEnv reads EMAIL_HOST, EMAIL_PORT, EMAIL_USER and
// EMAIL_PASSWORD, defaulting to Gmail submission settings.
func SMTPConfigFromEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host:     os.Getenv("EMAIL_HOST"),
		Port:     587,
		User:     os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASSWORD"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if raw := os.Getenv("EMAIL_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Degraded reports whether the mailer lacks real credentials.
func (c SMTPConfig) Degraded() bool {
	return c.User == "" || c.Password == ""
}

// Mailer sends transactional email with optional attachments.
type Mailer struct {
	cfg    SMTPConfig
	logger logging.Logger
}

// NewMailer returns a mailer for the given transport settings.
func NewMailer(cfg SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg, logger: logging.NewComponentLogger("Mailer")}
	if cfg.Degraded() {
		m.logger.Warn("no SMTP credentials configured, mailer running in degraded mode (log-only)")
	}
	return m
}

// Resolve maps the symbolic CEO recipient alias to the configured escalation
// address. Any other value passes through unchanged.
func (m *Mailer) Resolve(to string, snap config.Snapshot) (string, error) {
	if !strings.EqualFold(to, "CEO") {
		return to, nil
	}
	ceo := snap.CEOEmail()
	if ceo == "" {
		return "", agenterrors.ErrMissingRecipient
	}
	return ceo, nil
}

// Send delivers one message, attaching the file at attachmentPath when it
// exists. Returns the effective recipient. Transport failures come back as
// MailError and are never retried.
func (m *Mailer) Send(ctx context.Context, to, subject, body, attachmentPath string, snap config.Snapshot) (string, error) {
	recipient, err := m.Resolve(to, snap)
	if err != nil {
		return "", err
	}

	if m.cfg.Degraded() {
		m.logger.Info("degraded mode: mock email to %s subject=%q attachment=%q", recipient, subject, attachmentPath)
		return recipient, nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.User); err != nil {
		return "", &agenterrors.MailError{Recipient: recipient, Err: err}
	}
	if err := msg.To(recipient); err != nil {
		return "", &agenterrors.MailError{Recipient: recipient, Err: err}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if attachmentPath != "" {
		if _, statErr := os.Stat(attachmentPath); statErr == nil {
			msg.AttachFile(attachmentPath)
		} else {
			m.logger.Warn("attachment %q not found, sending without it", attachmentPath)
		}
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
	}
	// Port 465 is implicit TLS; everything else negotiates STARTTLS when the
	// server offers it.
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return "", &agenterrors.MailError{Recipient: recipient, Err: err}
	}
	m.logger.Info("sending email via %s:%d to %s", m.cfg.Host, m.cfg.Port, recipient)
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", &agenterrors.MailError{Recipient: recipient, Err: err}
	}
	return recipient, nil
}

// sendEmail is the send_email tool: subject, content, recipient (with CEO
// alias resolution). Recipient and transport failures surface as error text
// so the operator can fix configuration; they are not hidden.
func sendEmail(mailer *Mailer) Handler {
	return func(ctx context.Context, params Params, snap config.Snapshot) (*Result, error) {
		to, err := params.Require("send_email", "to_email")
		if err != nil {
			return nil, err
		}
		subject, err := params.Require("send_email", "subject")
		if err != nil {
			return nil, err
		}
		content, err := params.Require("send_email", "content")
		if err != nil {
			return nil, err
		}

		recipient, err := mailer.Send(ctx, to, subject, content, "", snap)
		if err != nil {
			return &Result{Text: fmt.Sprintf("Error: %v", err), Replace: true}, nil
		}
		return &Result{Text: fmt.Sprintf("Email sent successfully to %s.", recipient), Replace: true}, nil
	}
}
