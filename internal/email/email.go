// Package email forwards visitor feedback to the support mailbox.
//
// Notifier has two implementations:
// - SMTPNotifier: sends via SMTP (Mailhog in development, any relay in production)
// - LogNotifier: logs the message when no SMTP host is configured
package email

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Notifier delivers a feedback message to the support team.
type Notifier interface {
	SendFeedback(ctx context.Context, f Feedback) error
}

// =============================================================================
// Data Types
// =============================================================================

// Feedback is a validated message from the contact form.
type Feedback struct {
	Name    string
	Email   string // Used as Reply-To
	Message string
	Locale  string // Visitor's display language, "ar" or "en"
}

// Email represents a single email message.
type Email struct {
	To       string // Recipient email address
	ReplyTo  string // Optional Reply-To address
	Subject  string // Email subject line
	HTMLBody string // HTML content of the email
	TextBody string // Plain text fallback content
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string // SMTP server hostname (e.g., "localhost" for Mailhog)
	Port     int    // SMTP server port (e.g., 1025 for Mailhog)
	Username string // SMTP authentication username (empty for Mailhog)
	Password string // SMTP authentication password (empty for Mailhog)
	From     string // Sender address
	FromName string // Sender display name
	To       string // Support mailbox receiving feedback
}

const (
	// DefaultFromEmail is the default sender address.
	DefaultFromEmail = "noreply@saudi-ai-contracts.com"

	// DefaultFromName is the default sender display name.
	DefaultFromName = "Saudi AI Contracts"
)

// =============================================================================
// Log Notifier
// =============================================================================

// LogNotifier records feedback in the application log only.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendFeedback logs f.
func (n *LogNotifier) SendFeedback(ctx context.Context, f Feedback) error {
	n.logger.InfoContext(ctx, "feedback not forwarded, smtp disabled",
		"name", f.Name,
		"email", f.Email,
		"message_length", utf8.RuneCountInString(f.Message),
		"locale", f.Locale,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
