// utils/email.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"go-storefront/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	WelcomeSubject           = "Welcome to My Website!"
	OrderConfirmationSubject = "Your Order Confirmation"
)

// Email is one outbound message. At least one of TextBody and HTMLBody is set.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
}

// Mailer delivers a single email and reports success or failure
type Mailer interface {
	SendEmail(ctx context.Context, email Email) error
}

// EmailService sends transactional mail through a provider
type EmailService struct {
	mailer Mailer
}

// NewEmailService wraps mailer
func NewEmailService(mailer Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// NewMailer returns the provider named by provider ("postmark" or "sendgrid")
func NewMailer(provider, postmarkToken, sendgridKey, sender string) (Mailer, error) {
	switch strings.ToLower(provider) {
	case "postmark":
		if postmarkToken == "" {
			return nil, errors.New("POSTMARK_API_TOKEN is not set in environment variables")
		}
		return NewPostmarkMailer(postmarkToken, sender), nil
	case "sendgrid":
		if sendgridKey == "" {
			return nil, errors.New("SENDGRID_API_KEY is not set in environment variables")
		}
		return NewSendGridMailer(sendgridKey, sender), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", provider)
	}
}

// SendEmail sends a prepared email
func (es *EmailService) SendEmail(ctx context.Context, email Email) error {
	if err := es.mailer.SendEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	slog.Debug("Email sent", "to", email.To, "subject", email.Subject)
	return nil
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<h2>Welcome, {{.FirstName}} {{.LastName}}!</h2>
<p>We're excited to have you on board.</p>
<p>Best regards,</p>
<p>The Storefront Team</p>
`))

// WelcomeEmail builds the message sent after sign-up
func WelcomeEmail(to, firstName, lastName string) (Email, error) {
	var b strings.Builder
	err := welcomeTemplate.Execute(&b, struct{ FirstName, LastName string }{firstName, lastName})
	if err != nil {
		return Email{}, fmt.Errorf("render welcome email: %w", err)
	}
	return Email{To: to, Subject: WelcomeSubject, HTMLBody: b.String()}, nil
}

// OrderConfirmationEmail builds the plain-text order summary for checkout
func OrderConfirmationEmail(to string, summary models.OrderSummary) Email {
	return Email{To: to, Subject: OrderConfirmationSubject, TextBody: summary.PlainText()}
}

// PostmarkMailer delivers through the Postmark API
type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

// NewPostmarkMailer creates a Postmark-backed mailer
func NewPostmarkMailer(apiToken, sender string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail implements Mailer
func (m *PostmarkMailer) SendEmail(_ context.Context, email Email) error {
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.sender,
		To:       email.To,
		Subject:  email.Subject,
		HtmlBody: email.HTMLBody,
		TextBody: email.TextBody,
	})
	if err != nil {
		return fmt.Errorf("postmark: %w", err)
	}
	return nil
}

// SendGridMailer delivers through the SendGrid v3 API
type SendGridMailer struct {
	client *sendgrid.Client
	sender string
}

// NewSendGridMailer creates a SendGrid-backed mailer
func NewSendGridMailer(apiKey, sender string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail implements Mailer
func (m *SendGridMailer) SendEmail(ctx context.Context, email Email) error {
	msg := mail.NewV3Mail()
	msg.SetFrom(mail.NewEmail("", m.sender))
	msg.Subject = email.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", email.To))
	msg.AddPersonalizations(p)

	// SendGrid rejects empty content blocks; text must precede html
	if email.TextBody != "" {
		msg.AddContent(mail.NewContent("text/plain", email.TextBody))
	}
	if email.HTMLBody != "" {
		msg.AddContent(mail.NewContent("text/html", email.HTMLBody))
	}

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
