// Package smtp delivers mailer emails over SMTP using go-mail.
package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/goodvibes/pkg/mailer"
)

var ErrInvalidAddress = errors.New("smtp: invalid address")

// Config holds SMTP settings.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"Daily Good Vibes <onboarding@resend.dev>"`
	// TLS is "mandatory", "opportunistic" or "none".
	TLS string `env:"SMTP_TLS" envDefault:"mandatory"`
}

// Sender implements mailer.Sender. Each Send dials a fresh connection.
type Sender struct {
	client *mail.Client
	from   string
}

// New creates an SMTP sender. Authentication is enabled when Username is set.
func New(cfg Config) (*Sender, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTLSPolicy(tlsPolicy(cfg.TLS))}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to create client: %w", err)
	}
	return &Sender{client: client, from: cfg.From}, nil
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := s.message(email)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (s *Sender) message(email *mailer.Email) (*mail.Msg, error) {
	from := email.From
	if from == "" {
		from = s.from
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, errors.Join(ErrInvalidAddress, err)
		}
	}
	for k, v := range email.Headers {
		msg.SetGenHeader(mail.Header(k), v)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	if email.Text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, email.Text)
	}
	return msg, nil
}

func tlsPolicy(s string) mail.TLSPolicy {
	switch s {
	case "none":
		return mail.NoTLS
	case "opportunistic":
		return mail.TLSOpportunistic
	default:
		return mail.TLSMandatory
	}
}
