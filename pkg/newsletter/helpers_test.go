package newsletter

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
	"github.com/dmitrymomot/goodvibes/pkg/subscriber"
)

// 12:00 UTC is 08:00 in New York.
var issueTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	templates, err := Templates()
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r := NewRenderer(templates, loc)
	r.now = func() time.Time { return issueTime }
	return r
}

func fallbackContent() content.Content {
	return content.Content{
		Quote:  content.FallbackQuote(),
		Trivia: content.FallbackTrivia(),
		News:   content.FallbackNews(),
	}
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, params mailer.SendParams) error {
	return m.Called(ctx, params).Error(0)
}

type mockSubscribers struct {
	mock.Mock
}

func (m *mockSubscribers) FetchActive(ctx context.Context, limit int) ([]subscriber.Subscriber, error) {
	args := m.Called(ctx, limit)
	subs, _ := args.Get(0).([]subscriber.Subscriber)
	return subs, args.Error(1)
}

type countingSource struct {
	calls atomic.Int32
	c     content.Content
}

func (s *countingSource) Collect(context.Context) content.Content {
	s.calls.Add(1)
	return s.c
}

func subscribers(emails ...string) []subscriber.Subscriber {
	subs := make([]subscriber.Subscriber, 0, len(emails))
	for _, e := range emails {
		subs = append(subs, subscriber.Subscriber{Email: e, UnsubscribeToken: "tok-" + e})
	}
	return subs
}

func toRecipient(email string) any {
	return mock.MatchedBy(func(p mailer.SendParams) bool { return p.To == email })
}
