package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/goodvibes/pkg/sanitizer"
)

// Completer returns a text completion for a single prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewsPrompt asks the model for exactly five news items as bare JSON.
const NewsPrompt = `You are a tech news curator. Generate exactly 5 AI news summaries.

Return ONLY valid JSON (no markdown, no code blocks, no extra text):

[
  {
    "headline": "headline text",
    "summary": "summary text",
    "why_it_matters": "importance text"
  }
]

Requirements:
- Exactly 5 news items
- Headlines: max 15 words
- Summaries: 2-3 sentences, max 100 words each
- Focus on: AI breakthroughs, products, policy, research, industry news
- Make it engaging for tech readers`

// Aggregator gathers one issue's content from its three sources.
// Every public method succeeds; failures are logged and replaced by fallbacks.
type Aggregator struct {
	http      *http.Client
	quoteURL  string
	triviaURL string
	llm       Completer
	shuffle   func(n int, swap func(i, j int))
	log       *slog.Logger
}

// NewAggregator creates an Aggregator with production endpoints.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		http:      &http.Client{Timeout: 30 * time.Second},
		quoteURL:  DefaultQuoteURL,
		triviaURL: DefaultTriviaURL,
		shuffle:   rand.Shuffle,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collect fetches quote, trivia and news concurrently. Sections that fell
// back are listed in Content.Fallbacks.
func (a *Aggregator) Collect(ctx context.Context) Content {
	var (
		c                         Content
		quoteOK, triviaOK, newsOK bool
		wg                        sync.WaitGroup
	)
	wg.Go(func() { c.Quote, quoteOK = a.quote(ctx) })
	wg.Go(func() { c.Trivia, triviaOK = a.trivia(ctx) })
	wg.Go(func() { c.News, newsOK = a.news(ctx) })
	wg.Wait()

	for section, ok := range map[string]bool{SectionQuote: quoteOK, SectionTrivia: triviaOK, SectionNews: newsOK} {
		if !ok {
			c.Fallbacks = append(c.Fallbacks, section)
		}
	}
	slices.Sort(c.Fallbacks)
	return c
}

// Quote returns today's quote or FallbackQuote.
func (a *Aggregator) Quote(ctx context.Context) Quote {
	q, _ := a.quote(ctx)
	return q
}

// Trivia returns numbered questions with shuffled options or FallbackTrivia.
func (a *Aggregator) Trivia(ctx context.Context) []TriviaQuestion {
	qs, _ := a.trivia(ctx)
	return qs
}

// News returns exactly NewsCount items: the model's output normalized, or FallbackNews.
func (a *Aggregator) News(ctx context.Context) []NewsItem {
	items, _ := a.news(ctx)
	return items
}

func (a *Aggregator) quote(ctx context.Context) (Quote, bool) {
	q, err := a.fetchQuote(ctx)
	if err != nil {
		a.log.WarnContext(ctx, "using fallback quote", slog.String("error", err.Error()))
		return FallbackQuote(), false
	}
	return q, true
}

func (a *Aggregator) trivia(ctx context.Context) ([]TriviaQuestion, bool) {
	qs, err := a.fetchTrivia(ctx)
	if err != nil {
		a.log.WarnContext(ctx, "using fallback trivia", slog.String("error", err.Error()))
		return FallbackTrivia(), false
	}
	return qs, true
}

func (a *Aggregator) news(ctx context.Context) ([]NewsItem, bool) {
	items, err := a.generateNews(ctx)
	if err != nil {
		a.log.WarnContext(ctx, "using fallback news", slog.String("error", err.Error()))
		return FallbackNews(), false
	}
	if len(items) < NewsCount {
		a.log.InfoContext(ctx, "padding news with filler items", slog.Int("received", len(items)))
	}
	return NormalizeNews(items), true
}

type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

func (a *Aggregator) fetchQuote(ctx context.Context) (Quote, error) {
	var payload []zenQuote
	if err := a.getJSON(ctx, a.quoteURL, &payload); err != nil {
		return Quote{}, err
	}
	if len(payload) == 0 {
		return Quote{}, ErrEmptyResult
	}

	q := Quote{Text: sanitizer.PlainText(payload[0].Q), Author: sanitizer.PlainText(payload[0].A)}
	if q.Text == "" {
		return Quote{}, ErrEmptyResult
	}
	return q, nil
}

type triviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (a *Aggregator) fetchTrivia(ctx context.Context) ([]TriviaQuestion, error) {
	var payload triviaResponse
	if err := a.getJSON(ctx, a.triviaURL, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: response code %d", ErrEmptyResult, payload.ResponseCode)
	}

	out := make([]TriviaQuestion, 0, len(payload.Results))
	for i, r := range payload.Results {
		options := make([]string, 0, len(r.IncorrectAnswers)+1)
		options = append(options, r.IncorrectAnswers...)
		options = append(options, r.CorrectAnswer)
		// OpenTDB entity-encodes answers that are themselves markup
		// (&lt;ul&gt;), so they are decoded, never stripped.
		sanitizer.DecodeTextAll(options)
		a.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		out = append(out, TriviaQuestion{
			Number:        i + 1,
			Question:      sanitizer.DecodeText(r.Question),
			Category:      sanitizer.DecodeText(r.Category),
			Difficulty:    r.Difficulty,
			Options:       options,
			CorrectAnswer: sanitizer.DecodeText(r.CorrectAnswer),
		})
	}
	return out, nil
}

func (a *Aggregator) generateNews(ctx context.Context) ([]NewsItem, error) {
	if a.llm == nil {
		return nil, ErrNoCompleter
	}

	raw, err := a.llm.Complete(ctx, NewsPrompt)
	if err != nil {
		return nil, err
	}

	items, err := ParseNewsItems(raw)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Headline = sanitizer.PlainText(items[i].Headline)
		items[i].Summary = sanitizer.PlainText(items[i].Summary)
		items[i].WhyItMatters = sanitizer.PlainText(items[i].WhyItMatters)
	}
	return items, nil
}

func (a *Aggregator) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrUpstreamStatus, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Join(ErrUpstreamPayload, err)
	}
	return nil
}
