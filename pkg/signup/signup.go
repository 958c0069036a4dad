// Package signup implements the subscription form flow:
// validate, check for an existing subscriber, insert.
package signup

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrymomot/goodvibes/pkg/subscriber"
)

// Messages shown to the visitor.
const (
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgAlreadySubscribed = "This email is already subscribed!"
	MsgSubscribed        = "🎉 Successfully subscribed! Check your inbox at 7 AM ET tomorrow."
	MsgFailed            = "Something went wrong. Please try again later."
	MsgInProgress        = "Your subscription is already being processed."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var emailRules = []validation.Rule{
	validation.Required,
	validation.Match(emailPattern),
}

// Store is the subscriber gateway used by the form.
type Store interface {
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, email string) error
}

// Outcome classifies a submission.
type Outcome int

const (
	OutcomeSubscribed Outcome = iota
	OutcomeInvalid
	OutcomeDuplicate
	OutcomeBusy
	OutcomeFailed
)

// Result is what the visitor sees after a submit.
type Result struct {
	Outcome Outcome
	Message string
	Email   string
}

// OK reports whether a subscriber was created.
func (r Result) OK() bool { return r.Outcome == OutcomeSubscribed }

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithObserver is called on every state transition of an email.
func WithObserver(fn func(email string, s State)) Option {
	return func(f *Form) { f.observe = fn }
}

// Form runs the subscription state machine. Submissions for different
// emails proceed in parallel; a second submit for an email that is still
// Submitting is rejected.
type Form struct {
	store   Store
	log     *slog.Logger
	observe func(email string, s State)

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewForm creates a Form over store.
func NewForm(store Store, opts ...Option) *Form {
	f := &Form{
		store:    store,
		log:      slog.New(slog.DiscardHandler),
		observe:  func(string, State) {},
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Normalize trims and lower-cases an email address.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate checks the normalised address.
func Validate(email string) error {
	return validation.Validate(email, emailRules...)
}

// State reports whether email is currently being submitted.
func (f *Form) State(email string) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.inflight[Normalize(email)]; ok {
		return Submitting
	}
	return Idle
}

// Submit runs one submission to completion. Invalid input never reaches
// the store.
func (f *Form) Submit(ctx context.Context, raw string) Result {
	email := Normalize(raw)
	if err := Validate(email); err != nil {
		return Result{Outcome: OutcomeInvalid, Message: MsgInvalidEmail, Email: email}
	}

	if !f.begin(email) {
		return Result{Outcome: OutcomeBusy, Message: MsgInProgress, Email: email}
	}
	defer f.end(email)

	res := f.subscribe(ctx, email)
	f.observe(email, Done)
	return res
}

func (f *Form) subscribe(ctx context.Context, email string) Result {
	exists, err := f.store.Exists(ctx, email)
	if err != nil {
		f.log.ErrorContext(ctx, "subscription lookup failed", slog.String("email", email), slog.String("error", err.Error()))
		return Result{Outcome: OutcomeFailed, Message: MsgFailed, Email: email}
	}
	if exists {
		return Result{Outcome: OutcomeDuplicate, Message: MsgAlreadySubscribed, Email: email}
	}

	// The unique constraint still catches a signup that raced past Exists.
	if err := f.store.Insert(ctx, email); err != nil {
		if errors.Is(err, subscriber.ErrAlreadySubscribed) {
			return Result{Outcome: OutcomeDuplicate, Message: MsgAlreadySubscribed, Email: email}
		}
		f.log.ErrorContext(ctx, "subscription insert failed", slog.String("email", email), slog.String("error", err.Error()))
		return Result{Outcome: OutcomeFailed, Message: MsgFailed, Email: email}
	}

	f.log.InfoContext(ctx, "new subscriber", slog.String("email", email))
	return Result{Outcome: OutcomeSubscribed, Message: MsgSubscribed, Email: email}
}

func (f *Form) begin(email string) bool {
	f.mu.Lock()
	if _, busy := f.inflight[email]; busy {
		f.mu.Unlock()
		return false
	}
	f.inflight[email] = struct{}{}
	f.mu.Unlock()

	f.observe(email, Submitting)
	return true
}

func (f *Form) end(email string) {
	f.mu.Lock()
	delete(f.inflight, email)
	f.mu.Unlock()

	f.observe(email, Idle)
}
