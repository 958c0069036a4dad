package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what handlers use to declare routes. Route middleware listed
// first runs first.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	// Group shares middleware between routes without a path prefix.
	Group(fn func(r Router), mw ...Middleware)
}

type routerAdapter struct {
	mux chi.Router
	app *App
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodGet, path, r.app.wrapHandler(chain(h, mw)))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodPost, path, r.app.wrapHandler(chain(h, mw)))
}

func (r *routerAdapter) Group(fn func(Router), mw ...Middleware) {
	r.mux.Group(func(g chi.Router) {
		for _, m := range mw {
			g.Use(r.app.adaptMiddleware(m))
		}
		fn(&routerAdapter{mux: g, app: r.app})
	})
}

func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// adaptMiddleware lets an app Middleware sit in chi's stack. The handler
// it wraps writes through the shared ResponseWriter; its errors are handled
// by the inner route, so next always reports nil here.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a.logger)
			err := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})(c)
			if err != nil {
				a.handleError(c, err)
			}
		})
	}
}
