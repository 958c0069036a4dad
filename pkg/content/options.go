package content

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
)

const (
	DefaultQuoteURL  = "https://zenquotes.io/api/today"
	DefaultTriviaURL = "https://opentdb.com/api.php?amount=10&type=multiple"
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithHTTPClient sets the client used for the quote and trivia APIs.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.http = c
		}
	}
}

// WithQuoteURL overrides the quote endpoint.
func WithQuoteURL(u string) Option {
	return func(a *Aggregator) { a.quoteURL = u }
}

// WithTriviaURL overrides the trivia endpoint.
func WithTriviaURL(u string) Option {
	return func(a *Aggregator) { a.triviaURL = u }
}

// WithCompleter sets the language model used for news.
// Without one, news always falls back.
func WithCompleter(c Completer) Option {
	return func(a *Aggregator) { a.llm = c }
}

// WithRand makes the answer shuffle deterministic.
func WithRand(r *rand.Rand) Option {
	return func(a *Aggregator) {
		if r != nil {
			a.shuffle = r.Shuffle
		}
	}
}

// WithLogger sets the logger for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}
