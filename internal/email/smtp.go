package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

// =============================================================================
// SMTP Notifier
// =============================================================================

// SMTPNotifier sends feedback to the support mailbox via SMTP.
//
// This implementation works with:
// - Mailhog (development): No authentication required
// - Any standard SMTP relay: Uses username/password authentication
type SMTPNotifier struct {
	config   SMTPConfig
	template *template.Template
	logger   *slog.Logger

	// sendMail is smtp.SendMail, replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTP-based notifier.
func NewSMTPNotifier(config SMTPConfig, logger *slog.Logger) (*SMTPNotifier, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if config.To == "" {
		return nil, fmt.Errorf("feedback recipient is required")
	}
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}

	tmpl, err := template.New("feedback").Parse(feedbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feedback email template: %w", err)
	}

	return &SMTPNotifier{
		config:   config,
		template: tmpl,
		logger:   logger,
		sendMail: smtp.SendMail,
	}, nil
}

// SendFeedback forwards f with the visitor as Reply-To.
func (s *SMTPNotifier) SendFeedback(ctx context.Context, f Feedback) error {
	data := map[string]any{
		"Name":    f.Name,
		"Email":   f.Email,
		"Message": f.Message,
		"Locale":  f.Locale,
		"Year":    time.Now().Year(),
	}

	var html bytes.Buffer
	if err := s.template.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render feedback email template: %w", err)
	}

	textBody := fmt.Sprintf(`New feedback from the website

Name: %s
Email: %s
Language: %s

%s
`, f.Name, f.Email, f.Locale, f.Message)

	return s.send(ctx, Email{
		To:       s.config.To,
		ReplyTo:  f.Email,
		Subject:  "Website feedback from " + f.Name,
		HTMLBody: html.String(),
		TextBody: textBody,
	})
}

// =============================================================================
// Internal Methods
// =============================================================================

// send sends an email via SMTP.
func (s *SMTPNotifier) send(ctx context.Context, email Email) error {
	msg := s.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	// Create auth if credentials are provided (not needed for Mailhog)
	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := s.sendMail(addr, auth, s.config.From, []string{email.To}, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to send email",
			"to", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.InfoContext(ctx, "email sent",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

// buildMessage constructs the raw email message with headers.
func (s *SMTPNotifier) buildMessage(email Email) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", headerValue(s.config.FromName), s.config.From)
	fmt.Fprintf(&buf, "To: %s\r\n", headerValue(email.To))
	if email.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", headerValue(email.ReplyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", headerValue(email.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	boundary := "===============FEEDBACK_BOUNDARY==============="
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	buf.WriteString("\r\n")

	// Plain text part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.TextBody)
	buf.WriteString("\r\n")

	// HTML part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.HTMLBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

// headerValue strips line breaks so visitor input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

const feedbackTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #111827;">
  <h2>New feedback from the website</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <p><strong>Language:</strong> {{.Locale}}</p>
  <div style="white-space: pre-wrap; border-top: 1px solid #e5e7eb; padding-top: 12px;"{{if eq .Locale "ar"}} dir="rtl"{{end}}>{{.Message}}</div>
  <p style="color: #6b7280; font-size: 12px;">&copy; {{.Year}} Saudi AI Contracts</p>
</body>
</html>`

var _ Notifier = (*SMTPNotifier)(nil)
