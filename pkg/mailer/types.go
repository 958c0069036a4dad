package mailer

import "fmt"

// Tags are provider tags attached to a message. A struct{}{} value marks a
// presence-only tag; providers that need a value send "true".
type Tags map[string]any

// SimpleTags creates presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats an RFC 5322 address: "Name <email>" or just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a rendered message ready for a Sender.
type Email struct {
	To      []string
	From    string // empty means the provider's configured sender
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Headers map[string]string
	Tags    Tags
}

// Validate checks the fields every provider requires.
func (e *Email) Validate() error {
	switch {
	case e == nil || len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "":
		return ErrNoContent
	}
	return nil
}
