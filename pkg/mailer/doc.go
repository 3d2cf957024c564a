// Package mailer sends emails rendered from markdown templates.
//
// Templates are markdown files with optional YAML frontmatter, executed with
// text/template and converted to HTML by [github.com/yuin/goldmark]:
//
//	---
//	subject: Welcome, {{.Name}}
//	---
//	# Hello {{.Name}}
//
//	Thanks for signing up.
//
// The HTML is wrapped in an html/template layout that prints {{.Content}}.
// Delivery goes through a [Sender]; pkg/mailer/resend talks to the Resend
// API and [LogSender] only logs, for development.
//
// Register a Mailer as a component so controllers can load it:
//
//	m := mailer.New(resend.New(cfg.Resend), mailer.NewRenderer(templates, "layouts"), cfg.Mail)
//	app := mvc.New(mvc.WithComponent("mailer", func(*mvc.Controller) (any, error) { return m, nil }))
//
//	// in an action
//	m, err := mvc.Component[*mailer.Mailer](&c.Controller, "mailer")
//	err = m.Send(c.Context(), mailer.Message{To: email, Template: "welcome.md", Data: user})
package mailer
