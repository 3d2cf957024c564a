package resend

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mvc/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{client: resend.NewClient(cfg.APIKey)}
}

// NewWithClient uses a preconfigured client, e.g. one pointing at a test server.
func NewWithClient(client *resend.Client) *Sender {
	return &Sender{client: client}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if _, err := s.client.Emails.SendWithContext(ctx, request(email)); err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	return nil
}

func request(email *mailer.Email) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}
	for _, a := range email.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		})
	}
	for _, name := range slices.Sorted(maps.Keys(email.Tags)) {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: email.Tags[name]})
	}
	return req
}
