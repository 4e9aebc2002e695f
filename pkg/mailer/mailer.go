// Package mailer delivers outbound account email such as password reset links.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when a host is configured, otherwise one that only logs.
func New(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg, log)
}

type logMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log.With(zap.String("mailer", "log"))}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Email not sent, no SMTP host configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
	log  *zap.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	port := cfg.Port
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &smtpMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		auth: auth,
		from: from,
		log:  log.With(zap.String("mailer", "smtp")),
		send: smtp.SendMail,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, m.compose(msg)); err != nil {
		m.log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	m.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (m *smtpMailer) compose(msg Message) []byte {
	contentType, body := "text/plain", msg.Text
	if msg.HTML != "" {
		contentType, body = "text/html", msg.HTML
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\"\r\n\r\n", contentType)
	b.WriteString(body)
	return []byte(b.String())
}
