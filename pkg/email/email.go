package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"lunarai-web/internal/domain"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Service   string
	Message   string
}

// NewContactEmailData copies the form fields for the template
func NewContactEmailData(form domain.ContactForm) ContactEmailData {
	return ContactEmailData{
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     strings.TrimSpace(form.Email),
		Company:   strings.TrimSpace(form.Company),
		Service:   form.Service,
		Message:   strings.TrimSpace(form.Message),
	}
}

// SenderName is "First Last"
func (d ContactEmailData) SenderName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Subject is the inquiry email subject line
func (d ContactEmailData) Subject() string {
	return fmt.Sprintf("New inquiry: %s from %s", d.Service, d.Company)
}

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0b0b1f; color: #c4b5fd; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #7c3aed; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Consultation Request</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.SenderName}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Company:</div>
                <div>{{.Company}}</div>
            </div>
            <div class="field">
                <div class="label">Service Interest:</div>
                <div>{{.Service}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the LunarAI website contact form.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`

const contactTextTemplate = `New consultation request

From: {{.SenderName}} <{{.Email}}>
Company: {{.Company}}
Service Interest: {{.Service}}

{{.Message}}
`

var (
	htmlTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))
	textTmpl = texttemplate.Must(texttemplate.New("contact_text").Parse(contactTextTemplate))
)

// RenderContactEmail renders the HTML and plain-text bodies
func RenderContactEmail(data ContactEmailData) (string, string, error) {
	var body bytes.Buffer
	if err := htmlTmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template: %w", err)
	}
	return body.String(), text.String(), nil
}
