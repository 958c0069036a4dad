package handlers

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/internal/handlers/views"
)

// IssueSource renders the web version of today's issue.
type IssueSource interface {
	WebVersion(ctx context.Context) (string, error)
}

// Issue serves today's newsletter in the browser.
type Issue struct {
	source IssueSource
}

// NewIssue creates the handler.
func NewIssue(source IssueSource) *Issue {
	return &Issue{source: source}
}

func (h *Issue) Routes(r app.Router) {
	r.GET("/issues/today", h.today)
}

func (h *Issue) today(c app.Context) error {
	html, err := h.source.WebVersion(c.Context())
	if err != nil {
		return app.ErrServiceUnavailable("Today's issue is not available yet.", app.WithError(err))
	}
	c.SetHeader("Cache-Control", "public, max-age=300")
	return c.Render(http.StatusOK, views.Issue(html))
}
