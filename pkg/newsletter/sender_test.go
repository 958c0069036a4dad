package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/pkg/mailer"
)

func TestBatchSender_Send(t *testing.T) {
	t.Parallel()

	m := &mockMailer{}
	m.On("Send", mock.Anything, mock.MatchedBy(func(p mailer.SendParams) bool {
		issue, ok := p.Data.(Issue)
		return ok && p.Template == TemplateName && p.Layout == LayoutName &&
			issue.UnsubscribeURL == "https://vibes.example/unsubscribe.html?token=tok-"+p.To
	})).Return(nil).Times(3)

	s := NewBatchSender(m, newTestRenderer(t), Config{WebsiteURL: "https://vibes.example/"}, nil)
	report := s.Send(context.Background(), fallbackContent(), subscribers("a@x.io", "b@x.io", "c@x.io"))

	require.Equal(t, Report{Success: 3}, report)
	m.AssertExpectations(t)
}

func TestBatchSender_TestModeSendsOnce(t *testing.T) {
	t.Parallel()

	m := &mockMailer{}
	m.On("Send", mock.Anything, toRecipient("a@x.io")).Return(nil).Once()

	s := NewBatchSender(m, newTestRenderer(t), Config{TestMode: true}, nil)
	report := s.Send(context.Background(), fallbackContent(), subscribers("a@x.io", "b@x.io", "c@x.io"))

	require.Equal(t, Report{Success: 1}, report)
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Send", 1)
}

func TestBatchSender_FailureContinues(t *testing.T) {
	t.Parallel()

	m := &mockMailer{}
	m.On("Send", mock.Anything, toRecipient("a@x.io")).Return(nil).Once()
	m.On("Send", mock.Anything, toRecipient("b@x.io")).Return(errors.New("rate limited")).Once()
	m.On("Send", mock.Anything, toRecipient("c@x.io")).Return(nil).Once()

	s := NewBatchSender(m, newTestRenderer(t), Config{}, nil)
	report := s.Send(context.Background(), fallbackContent(), subscribers("a@x.io", "b@x.io", "c@x.io"))

	require.Equal(t, Report{Success: 2, Errors: 1}, report)
	m.AssertExpectations(t)
}

func TestBatchSender_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	m := &mockMailer{}
	m.On("Send", mock.Anything, toRecipient("a@x.io")).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

	s := NewBatchSender(m, newTestRenderer(t), Config{}, nil)
	report := s.Send(ctx, fallbackContent(), subscribers("a@x.io", "b@x.io"))

	require.Equal(t, Report{Success: 1}, report)
	m.AssertNumberOfCalls(t, "Send", 1)
}

func TestBatchSender_UnsubscribeURL(t *testing.T) {
	t.Parallel()

	s := NewBatchSender(&mockMailer{}, newTestRenderer(t), Config{WebsiteURL: "https://vibes.example"}, nil)
	require.Equal(t, "https://vibes.example/unsubscribe.html?token=abc123", s.UnsubscribeURL("abc123"))
}
