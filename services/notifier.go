package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/models"
)

// Notifier emails the site owner about new submissions.
type Notifier struct {
	mailer    Mailer
	recipient string
	logger    zerolog.Logger
}

// NewNotifier sends to recipient; with no recipient every notification is skipped.
func NewNotifier(mailer Mailer, recipient string) *Notifier {
	if mailer == nil {
		mailer = NopMailer{}
	}
	return &Notifier{
		mailer:    mailer,
		recipient: strings.TrimSpace(recipient),
		logger:    log.With().Str("component", "notifier").Logger(),
	}
}

// ContactReceived announces a stored contact message.
func (n *Notifier) ContactReceived(ctx context.Context, msg *models.ContactMessage) error {
	subject := "New Contact Form Submission: " + msg.Subject
	body := fmt.Sprintf(`New message from your portfolio website:

Name: %s
Email: %s
Subject: %s
Inquiry type: %s

Message:
%s
`, msg.Name, msg.Email, msg.Subject, msg.InquiryLabel(), msg.Message)

	return n.send(ctx, subject, body)
}

// NewsletterSignup announces a newsletter subscription.
func (n *Notifier) NewsletterSignup(ctx context.Context, email string) error {
	body := fmt.Sprintf("New newsletter subscription from your portfolio website:\n\nEmail: %s\n", email)
	return n.send(ctx, "New Newsletter Subscription", body)
}

func (n *Notifier) send(ctx context.Context, subject, body string) error {
	if n.recipient == "" {
		n.logger.Debug().Str("subject", subject).Msg("no notification recipient configured, skipping email")
		return nil
	}
	return n.mailer.Send(ctx, subject, body, []string{n.recipient})
}
