package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	mail "github.com/go-mail/mail/v2"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/errs"
)

// Mailer delivers a plain text message to recipients.
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// NewMailer picks the transport named by MAIL_TRANSPORT.
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Transport {
	case "resend":
		return NewResendMailer(cfg.ResendAPIKey, cfg.ResendFromEmail)
	case "smtp":
		return NewSMTPMailer(cfg)
	case "none", "":
		return NopMailer{}, nil
	default:
		return nil, errs.NewConfigInvalidError("MAIL_TRANSPORT", fmt.Sprintf("unknown transport %q", cfg.Transport))
	}
}

// NopMailer drops every message.
type NopMailer struct{}

func (NopMailer) Send(context.Context, string, string, []string) error { return nil }

// SMTPMailer sends through an SMTP relay with mandatory STARTTLS.
type SMTPMailer struct {
	from   string
	dialer *mail.Dialer
}

func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, errs.NewConfigMissingError("SMTP_HOST")
	}
	if cfg.SMTPFrom == "" {
		return nil, errs.NewConfigMissingError("SMTP_FROM")
	}

	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.SMTPHost,
		InsecureSkipVerify: cfg.SMTPSkipVerify,
	}
	d.Timeout = 15 * time.Second

	return &SMTPMailer{from: cfg.SMTPFrom, dialer: d}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return errs.NewEmailTransportError("smtp", fmt.Errorf("at least one recipient is required"))
	}
	if err := ctx.Err(); err != nil {
		return errs.NewEmailTransportError("smtp", err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errs.NewEmailTransportError("smtp", err)
	}
	return nil
}
