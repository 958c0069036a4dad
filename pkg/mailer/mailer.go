package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated message.
type SendParams struct {
	To       string
	Template string // e.g. "daily.md"
	Data     any

	Subject string // overrides the frontmatter Subject
	Layout  string // overrides Config.DefaultLayout
	From    string
	ReplyTo string
	Headers map[string]string
	Tags    Tags
}

// Render builds the Email for params without sending it.
// Subject precedence: params.Subject, frontmatter Subject, Config.FallbackSubject.
// The subject is itself executed as a text template over params.Data.
func (m *Mailer) Render(params SendParams) (*Email, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = result.Metadata["Subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	if subject, err = executeSubject(subject, params.Data); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	return &Email{
		To:      []string{params.To},
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		Headers: params.Headers,
		Tags:    params.Tags,
	}, nil
}

// Send renders params and delivers the message.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	email, err := m.Render(params)
	if err != nil {
		return err
	}
	return m.Deliver(ctx, email)
}

// Deliver validates a prepared Email and passes it to the Sender.
func (m *Mailer) Deliver(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
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
