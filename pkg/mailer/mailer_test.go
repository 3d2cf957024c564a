package mailer_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/mailer"
)

type captureSender struct {
	sent []*mailer.Email
	err  error
}

func (s *captureSender) Send(_ context.Context, e *mailer.Email) error {
	s.sent = append(s.sent, e)
	return s.err
}

var templates = fstest.MapFS{
	"welcome.md":        {Data: []byte("---\nsubject: Welcome, {{.Name}}\n---\n# Hello {{.Name}}\n")},
	"plain.md":          {Data: []byte("Just **text**.")},
	"broken.md":         {Data: []byte("---\nsubject: x\n")},
	"layouts/base.html": {Data: []byte("<body>{{.Content}}</body>")},
}

func newMailer(s mailer.Sender) *mailer.Mailer {
	return mailer.New(s, mailer.NewRenderer(templates, ""), mailer.Config{
		From:            "foo@bar.net",
		FromName:        "Foo Bar",
		FallbackSubject: "Notification",
		DefaultLayout:   "base.html",
	})
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	s := &captureSender{}
	m := newMailer(s)

	err := m.Send(context.Background(), mailer.Message{To: "ann@example.com", Template: "welcome.md", Data: map[string]string{"Name": "Ann"}})
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	email := s.sent[0]
	require.Equal(t, "Welcome, Ann", email.Subject)
	require.Equal(t, "Foo Bar <foo@bar.net>", email.From)
	require.Equal(t, []string{"ann@example.com"}, email.To)
	require.Equal(t, "<body><h1>Hello Ann</h1>\n</body>", email.HTML)
	require.Equal(t, "# Hello Ann\n", email.Text)

	err = m.Send(context.Background(), mailer.Message{To: "bob@example.com", Template: "plain.md", Layout: "-"})
	require.NoError(t, err)
	require.Equal(t, "Notification", s.sent[1].Subject)
	require.Equal(t, "<p>Just <strong>text</strong>.</p>\n", s.sent[1].HTML)
}

func TestMailer_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newMailer(&captureSender{})

	require.ErrorIs(t, m.Send(ctx, mailer.Message{Template: "welcome.md"}), mailer.ErrNoRecipient)
	require.ErrorIs(t, m.Send(ctx, mailer.Message{To: "a@b.c", Template: "missing.md"}), mailer.ErrTemplateNotFound)
	require.ErrorIs(t, m.Send(ctx, mailer.Message{To: "a@b.c", Template: "broken.md"}), mailer.ErrInvalidFrontmatter)
	require.ErrorIs(t, m.Send(ctx, mailer.Message{To: "a@b.c", Template: "plain.md", Layout: "nope.html"}), mailer.ErrLayoutNotFound)
	require.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"a@b.c"}, HTML: "x"}), mailer.ErrNoSubject)
	require.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"a@b.c"}, Subject: "x"}), mailer.ErrNoContent)

	failing := newMailer(&captureSender{err: errors.New("smtp down")})
	err := failing.SendRaw(ctx, &mailer.Email{To: []string{"a@b.c"}, Subject: "x", Text: "y"})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorContains(t, err, "smtp down")
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tpl, err := mailer.ParseTemplate([]byte("---\r\nsubject: Hi\r\ntags: [a, b]\r\n---\r\nBody"))
	require.NoError(t, err)
	require.Equal(t, "Hi", tpl.Metadata["subject"])
	require.Equal(t, []any{"a", "b"}, tpl.Metadata["tags"])
	require.Equal(t, "Body", tpl.Body)

	tpl, err = mailer.ParseTemplate([]byte("no frontmatter"))
	require.NoError(t, err)
	require.Empty(t, tpl.Metadata)
	require.Equal(t, "no frontmatter", tpl.Body)

	_, err = mailer.ParseTemplate([]byte("---\nkey: [unclosed\n---\n"))
	require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a@b.c", mailer.Recipient("", "a@b.c"))
	require.Equal(t, "Ann <a@b.c>", mailer.Recipient("Ann", "a@b.c"))
}
