package mailer

import (
	"context"
	"fmt"
	"log/slog"
)

// Sender delivers a fully prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Email is a message ready for delivery.
type Email struct {
	Headers     map[string]string
	Tags        map[string]string
	Subject     string
	HTML        string
	Text        string
	From        string
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment is a file sent with an Email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // set for inline images
	Content     []byte
}

// Recipient formats "Name <email>", or just email when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// LogSender logs emails instead of delivering them. Useful in development.
type LogSender struct {
	Logger *slog.Logger
}

// Send implements Sender.
func (s LogSender) Send(ctx context.Context, email *Email) error {
	s.Logger.InfoContext(ctx, "email",
		slog.String("from", email.From),
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.Int("html_bytes", len(email.HTML)),
		slog.Int("attachments", len(email.Attachments)),
	)
	return nil
}
