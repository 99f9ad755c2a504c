// Package notify delivers best-effort email notifications.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

// Notifier sends a message and reports whether it was handed to the relay.
// Failures are never returned as errors.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.From != ""
}

// sendMail is a seam for tests. smtp.SendMail upgrades to STARTTLS when the
// relay offers it.
var sendMail = smtp.SendMail

type SMTPNotifier struct {
	cfg    SMTPConfig
	logger logging.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, logger logging.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger.With("module", "notify")}
}

func (n *SMTPNotifier) Notify(ctx context.Context, to, subject, body string) bool {
	if to == "" {
		return false
	}
	if !n.cfg.configured() {
		n.logger.Debug(ctx, "smtp not configured, skipping notification", "to", to)
		return false
	}
	if err := ctx.Err(); err != nil {
		return false
	}

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	if err := sendMail(addr, auth, n.cfg.From, []string{to}, buildMessage(n.cfg.From, to, subject, body)); err != nil {
		n.logger.Warn(ctx, "failed to send notification", "to", to, "error", err)
		return false
	}

	n.logger.Info(ctx, "notification sent", "to", to, "subject", subject)
	return true
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string, string) bool { return false }
