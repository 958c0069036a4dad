package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/pkg/health"
)

type routes func(r app.Router)

func (fn routes) Routes(r app.Router) { fn(r) }

func serve(a *app.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	a := app.New(app.WithHandlers(routes(func(r app.Router) {
		r.GET("/hello/{name}", func(c app.Context) error {
			return c.String(http.StatusOK, "hello "+c.Param("name"))
		})
		r.POST("/echo", func(c app.Context) error {
			var body struct {
				Email string `json:"email"`
			}
			if err := c.BindJSON(&body); err != nil {
				return app.ErrBadRequest("bad body", app.WithError(err))
			}
			return c.JSON(http.StatusCreated, body)
		})
	})))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/hello/vibes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello vibes", rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"email":"a@b.co"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(a, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"email":"a@b.co"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(a, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"bad body"}`, rec.Body.String())
}

func TestApp_ErrorHandling(t *testing.T) {
	t.Parallel()

	a := app.New(
		app.WithHTTPMiddleware(middleware.RequestID),
		app.WithHandlers(routes(func(r app.Router) {
			r.GET("/boom", func(c app.Context) error { return errors.New("db password leaked") })
			r.GET("/gone", func(c app.Context) error { return c.Error(http.StatusNotFound, "no such issue") })
		})),
		app.WithNotFoundHandler(func(c app.Context) error {
			return c.String(http.StatusNotFound, "nothing here")
		}),
	)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")

	req := httptest.NewRequest(http.MethodGet, "/gone", nil)
	req.Header.Set("Accept", "application/json")
	rec = serve(a, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"no such issue"`)
	require.Contains(t, rec.Body.String(), `"request_id":`)

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "nothing here", rec.Body.String())
}

func TestApp_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		order []string
	)
	trace := func(name string) app.Middleware {
		return func(next app.HandlerFunc) app.HandlerFunc {
			return func(c app.Context) error {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return next(c)
			}
		}
	}

	a := app.New(
		app.WithMiddleware(trace("global")),
		app.WithHandlers(routes(func(r app.Router) {
			r.GET("/", func(c app.Context) error { return c.NoContent(http.StatusNoContent) }, trace("first"), trace("second"))
			r.Group(func(g app.Router) {
				g.POST("/grouped", func(c app.Context) error { return c.NoContent(http.StatusAccepted) }, trace("route"))
			}, trace("group"))
		})),
	)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"global", "first", "second"}, order)

	order = nil
	rec = serve(a, httptest.NewRequest(http.MethodPost, "/grouped", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, []string{"global", "group", "route"}, order)
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	a := app.New(app.WithHealthChecks(health.Checks{
		"postgres": func(context.Context) error { return errors.New("down") },
	}))

	rec := serve(a, httptest.NewRequest(http.MethodGet, app.LivenessPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, httptest.NewRequest(http.MethodGet, app.ReadinessPath, nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"postgres"`)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started, stopped bool
	addrCh := make(chan string, 1)

	a := app.New(app.WithHandlers(routes(func(r app.Router) {
		r.GET("/", func(c app.Context) error { return c.String(http.StatusOK, "up") })
	})))

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(
			app.Address("127.0.0.1:0"),
			app.WithContext(ctx),
			app.StartupHook(func(context.Context) error { started = true; return nil }),
			app.ShutdownHook(func(context.Context) error { stopped = true; return nil }),
			app.OnReady(func(addr string) { addrCh <- addr }),
		)
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()
	require.NoError(t, <-errCh)
	require.True(t, started)
	require.True(t, stopped)
}

func TestApp_RunStartupFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("migrations failed")
	var stopped bool
	err := app.New().Run(
		app.Address("127.0.0.1:0"),
		app.StartupHook(func(context.Context) error { return boom }),
		app.ShutdownHook(func(context.Context) error { stopped = true; return nil }),
	)
	require.ErrorIs(t, err, boom)
	require.True(t, stopped)
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	a := app.New(app.WithHandlers(routes(func(r app.Router) {
		r.GET("/flush", func(c app.Context) error {
			bc, flush, _ := app.Buffer(c)
			require.NoError(t, bc.String(http.StatusAccepted, "buffered"))
			require.False(t, c.Written())
			return flush()
		})
		r.GET("/discard", func(c app.Context) error {
			bc, flush, discard := app.Buffer(c)
			discard()
			require.ErrorIs(t, bc.String(http.StatusOK, "dropped"), http.ErrHandlerTimeout)
			require.NoError(t, flush())
			return c.String(http.StatusServiceUnavailable, "kept")
		})
	})))

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flush", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "buffered", rec.Body.String())

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/discard", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "kept", rec.Body.String())
}
