// Package mailer sends notification email. Delivery is best effort; the
// dispatcher logs failures and moves on.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NoopSender silently accepts everything. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, to, subject, htmlBody string) error { return nil }

type smtpSender struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

// New selects the SMTP sender when email is configured, otherwise the noop.
func New(cfg config.Config, log *zap.Logger) Sender {
	if !cfg.SMTP.Enabled || strings.TrimSpace(cfg.SMTP.Host) == "" {
		log.Info("smtp disabled, email notifications will be dropped")
		return NoopSender{}
	}
	return &smtpSender{cfg: cfg.SMTP, log: log.Named("mailer")}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("missing recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", sanitizeHeader(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}

// sanitizeHeader strips CR/LF so template values can never inject headers.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.TrimSpace(value)
}

var Module = fx.Module("mailer",
	fx.Provide(New),
)
