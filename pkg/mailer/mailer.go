package mailer

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"strings"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
// Register it as an app component to use it from controllers.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// Message describes a templated email.
type Message struct {
	To       string
	Template string // e.g. "welcome.md"
	Data     any

	Subject     string // overrides the template subject
	Layout      string // overrides Config.DefaultLayout; "-" disables the layout
	From        string
	ReplyTo     string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Send renders msg and delivers it. The subject is taken from msg, then the
// template's "subject" frontmatter key, then Config.FallbackSubject, and is
// itself executed as a template with msg.Data.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	layout := cmp.Or(msg.Layout, m.config.DefaultLayout)
	if layout == "-" {
		layout = ""
	}
	result, err := m.renderer.Render(layout, msg.Template, msg.Data)
	if err != nil {
		return err
	}

	subject, err := executeSubject(cmp.Or(msg.Subject, metaString(result.Metadata, "subject"), m.config.FallbackSubject), msg.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:          []string{msg.To},
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		From:        msg.From,
		ReplyTo:     msg.ReplyTo,
		CC:          msg.CC,
		BCC:         msg.BCC,
		Attachments: msg.Attachments,
	})
}

// SendRaw delivers a prepared email. From defaults to Config.Sender().
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "" && email.Text == "":
		return ErrNoContent
	}
	if email.From == "" {
		email.From = m.config.Sender()
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// metaString reads a frontmatter key case-insensitively.
func metaString(meta map[string]any, key string) string {
	for k, v := range meta {
		if s, ok := v.(string); ok && strings.EqualFold(k, key) {
			return s
		}
	}
	return ""
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
