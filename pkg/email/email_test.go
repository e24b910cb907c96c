package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lunarai-web/internal/domain"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

var inquiry = domain.ContactForm{
	FirstName: " John ",
	LastName:  "Doe",
	Email:     "john@company.com",
	Company:   "Acme <Labs>",
	Service:   domain.ServiceLeadGeneration,
	Message:   "Need a demo",
}

func TestRenderContactEmail(t *testing.T) {
	data := NewContactEmailData(inquiry)
	assert.Equal(t, "John Doe", data.SenderName())
	assert.Equal(t, "New inquiry: Lead Generation from Acme <Labs>", data.Subject())

	html, text, err := RenderContactEmail(data)
	require.NoError(t, err)

	assert.Contains(t, html, "John Doe (john@company.com)")
	assert.Contains(t, html, "Acme &lt;Labs&gt;", "html body escapes user input")
	assert.Contains(t, text, "Company: Acme <Labs>", "text body is not escaped")
	assert.Contains(t, text, "Service Interest: Lead Generation")
}

func TestSMTPDispatcherBuildsMessage(t *testing.T) {
	var sent *gomail.Message
	d := newSMTPDispatcher(SMTPConfig{
		Username: "login@brevo.com",
		ToEmail:  "admin@lunarai.agency",
	}, func(m *gomail.Message) error {
		sent = m
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), inquiry))
	require.NotNil(t, sent)

	assert.Equal(t, []string{"admin@lunarai.agency"}, sent.GetHeader("To"))
	assert.Len(t, sent.GetHeader("Reply-To"), 1)
	assert.Contains(t, sent.GetHeader("Reply-To")[0], "john@company.com")
	assert.Contains(t, sent.GetHeader("From")[0], "login@brevo.com", "falls back to SMTP login")

	var raw bytes.Buffer
	_, err := sent.WriteTo(&raw)
	require.NoError(t, err)
	assert.True(t, strings.Contains(raw.String(), "text/html"))
}

func TestSMTPDispatcherWrapsSendError(t *testing.T) {
	d := newSMTPDispatcher(SMTPConfig{FromEmail: "noreply@lunarai.agency", ToEmail: "a@b.c"}, func(m *gomail.Message) error {
		return errors.New("535 auth failed")
	})

	err := d.Dispatch(context.Background(), inquiry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
}

func TestSMTPDispatcherRespectsDeadline(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	d := newSMTPDispatcher(SMTPConfig{FromEmail: "noreply@lunarai.agency", ToEmail: "a@b.c", Timeout: time.Minute}, func(m *gomail.Message) error {
		<-block
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Dispatch(ctx, inquiry)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type mockSendGrid struct {
	mock.Mock
}

func (m *mockSendGrid) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

func TestSendGridDispatcher(t *testing.T) {
	client := new(mockSendGrid)
	client.On("SendWithContext", mock.Anything, mock.MatchedBy(func(m *mail.SGMailV3) bool {
		return m.Subject == "New inquiry: Lead Generation from Acme <Labs>" &&
			m.ReplyTo != nil && m.ReplyTo.Address == "john@company.com" &&
			m.From.Name == "LunarAI Website"
	})).Return(&rest.Response{StatusCode: 202}, nil).Once()

	d := newSendGridDispatcher(SendGridConfig{FromEmail: "noreply@lunarai.agency", ToEmail: "admin@lunarai.agency"}, client)
	require.NoError(t, d.Dispatch(context.Background(), inquiry))
	client.AssertExpectations(t)
}

func TestSendGridDispatcherErrorStatus(t *testing.T) {
	client := new(mockSendGrid)
	client.On("SendWithContext", mock.Anything, mock.Anything).
		Return(&rest.Response{StatusCode: 401, Body: "unauthorized"}, nil).Once()

	d := newSendGridDispatcher(SendGridConfig{FromEmail: "noreply@lunarai.agency", ToEmail: "admin@lunarai.agency"}, client)
	err := d.Dispatch(context.Background(), inquiry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
