package email

import (
	"context"
	"fmt"
	"time"

	"lunarai-web/internal/domain"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings (Brevo by default)
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string // Verified sender email (different from SMTP login)
	ToEmail   string
	Timeout   time.Duration
}

// SMTPDispatcher delivers contact inquiries over SMTP
type SMTPDispatcher struct {
	fromEmail string
	toEmail   string
	timeout   time.Duration
	send      func(m *gomail.Message) error
}

// NewSMTPDispatcher creates a dispatcher that dials cfg.Host for every message
func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return newSMTPDispatcher(cfg, func(m *gomail.Message) error {
		return d.DialAndSend(m)
	})
}

func newSMTPDispatcher(cfg SMTPConfig, send func(m *gomail.Message) error) *SMTPDispatcher {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SMTPDispatcher{
		fromEmail: from,
		toEmail:   cfg.ToEmail,
		timeout:   timeout,
		send:      send,
	}
}

// Dispatch renders the inquiry and sends it to the configured recipient
func (s *SMTPDispatcher) Dispatch(ctx context.Context, form domain.ContactForm) error {
	msg, err := s.buildMessage(form)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(msg)
	}()

	// Respect ctx deadline if it's sooner than our own timeout
	wait := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < wait {
			wait = d
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return context.DeadlineExceeded
	}
}

func (s *SMTPDispatcher) buildMessage(form domain.ContactForm) (*gomail.Message, error) {
	data := NewContactEmailData(form)
	html, text, err := RenderContactEmail(data)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, "LunarAI Website")
	m.SetHeader("To", s.toEmail)
	m.SetAddressHeader("Reply-To", data.Email, data.SenderName())
	m.SetHeader("Subject", data.Subject())
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)
	return m, nil
}
