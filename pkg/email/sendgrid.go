package email

import (
	"context"
	"fmt"

	"lunarai-web/internal/domain"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	ToEmail   string
}

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridDispatcher delivers contact inquiries via the SendGrid v3 API
type SendGridDispatcher struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	toEmail   string
}

// NewSendGridDispatcher creates a SendGrid-backed dispatcher
func NewSendGridDispatcher(cfg SendGridConfig) *SendGridDispatcher {
	return newSendGridDispatcher(cfg, sendgrid.NewSendClient(cfg.APIKey))
}

func newSendGridDispatcher(cfg SendGridConfig, client sendGridClient) *SendGridDispatcher {
	if cfg.FromName == "" {
		cfg.FromName = "LunarAI Website"
	}
	return &SendGridDispatcher{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		toEmail:   cfg.ToEmail,
	}
}

// Dispatch sends the inquiry; any status >= 400 is a failure
func (s *SendGridDispatcher) Dispatch(ctx context.Context, form domain.ContactForm) error {
	data := NewContactEmailData(form)
	html, text, err := RenderContactEmail(data)
	if err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", s.toEmail)
	message := mail.NewSingleEmail(from, data.Subject(), to, text, html)
	message.SetReplyTo(mail.NewEmail(data.SenderName(), data.Email))

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
