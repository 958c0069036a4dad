package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/internal/handlers"
	"github.com/dmitrymomot/goodvibes/pkg/signup"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type issueFunc func(ctx context.Context) (string, error)

func (f issueFunc) WebVersion(ctx context.Context) (string, error) { return f(ctx) }

func newApp(store signup.Store, issue handlers.IssueSource) *app.App {
	return app.New(app.WithHandlers(
		handlers.NewSubscribe(signup.NewForm(store)),
		handlers.NewIssue(issue),
	))
}

func do(a *app.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func postForm(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(url.Values{"email": {email}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubscribe_Page(t *testing.T) {
	t.Parallel()

	rec := do(newApp(&mockStore{}, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), `action="/subscribe"`)
	require.NotContains(t, rec.Body.String(), `id="message"`)
}

func TestSubscribe_Form(t *testing.T) {
	t.Parallel()

	t.Run("success clears the input", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Exists", mock.Anything, "reader@example.com").Return(false, nil)
		store.On("Insert", mock.Anything, "reader@example.com").Return(nil)

		rec := do(newApp(store, nil), postForm("Reader@Example.com"))
		require.Equal(t, http.StatusCreated, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, `class="message success"`)
		require.Contains(t, body, "Successfully subscribed!")
		require.Contains(t, body, `value=""`)
	})

	t.Run("invalid email keeps the input and skips the store", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}

		rec := do(newApp(store, nil), postForm("nope"))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), signup.MsgInvalidEmail)
		require.Contains(t, rec.Body.String(), `value="nope"`)
		store.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("markup in the echoed email is escaped", func(t *testing.T) {
		t.Parallel()
		rec := do(newApp(&mockStore{}, nil), postForm(`"><script>x</script>`))
		require.NotContains(t, rec.Body.String(), "<script>x</script>")
	})
}

func TestSubscribe_JSON(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	store.On("Exists", mock.Anything, "taken@example.com").Return(true, nil)
	store.On("Exists", mock.Anything, "broken@example.com").Return(false, errors.New("db down"))

	a := newApp(store, nil)

	rec := do(a, postJSON(`{"email":"taken@example.com"}`))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"ok":false,"message":"This email is already subscribed!"}`, rec.Body.String())

	rec = do(a, postJSON(`{"email":"broken@example.com"}`))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"ok":false,"message":"Something went wrong. Please try again later."}`, rec.Body.String())

	rec = do(a, postJSON(`not json`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIssue_Today(t *testing.T) {
	t.Parallel()

	ok := issueFunc(func(context.Context) (string, error) { return "<!DOCTYPE html><h1>issue</h1>", nil })
	rec := do(newApp(&mockStore{}, ok), httptest.NewRequest(http.MethodGet, "/issues/today", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<!DOCTYPE html><h1>issue</h1>", rec.Body.String())

	failing := issueFunc(func(context.Context) (string, error) { return "", errors.New("cache down") })
	rec = do(newApp(&mockStore{}, failing), httptest.NewRequest(http.MethodGet, "/issues/today", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
