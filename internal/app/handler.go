package app

// Handler declares routes on a router.
//
//	type SubscribeHandler struct{ form *signup.Form }
//
//	func (h *SubscribeHandler) Routes(r app.Router) {
//	    r.POST("/subscribe", h.subscribe)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
