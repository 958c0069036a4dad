// Package mailer renders markdown email templates and hands the result to a
// delivery provider.
//
// A template is a markdown file with optional YAML frontmatter. The body is a
// text/template executed with the caller's data, converted to HTML by
// goldmark and wrapped in an html/template layout:
//
//	---
//	Subject: "Hello {{.Name}}"
//	---
//	Hi {{md .Name}}!
//
//	[!answer|{{md .Answer}}]
//
//	[!button|Unsubscribe]({{.UnsubscribeURL}})
//
// The md func escapes untrusted text so it cannot introduce markup. Raw HTML
// inside the markdown is dropped by goldmark; the two directives above are
// the only way to emit interactive elements.
//
// Providers implement [Sender]: package resend (default), package smtp and
// the built-in [LogSender] for local runs.
//
//	m := mailer.New(resend.New(cfg.Resend), mailer.NewRenderer(templates.FS), cfg.Mailer)
//	err := m.Send(ctx, mailer.SendParams{To: "reader@example.com", Template: "daily.md", Data: data})
package mailer
