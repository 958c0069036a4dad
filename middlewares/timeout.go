package middlewares

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/dmitrymomot/goodvibes/internal/app"
)

// Timeout bounds the handler's request context. A handler still running at
// the deadline is abandoned and the request fails with 503 wrapping a
// TimeoutError; handlers should watch ctx.Done to stop early. Responses are
// buffered until the handler returns, so writes after the deadline are
// dropped with http.ErrHandlerTimeout.
func Timeout(d time.Duration) app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			c.SetContext(ctx)

			// The handler writes into a buffer so a late write after the
			// deadline cannot interleave with the 503. Panics on its goroutine
			// are caught here rather than by Recover further up the chain.
			bc, flush, discard := app.Buffer(c)
			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- &PanicError{Value: r, Stack: debug.Stack()}
					}
				}()
				done <- next(bc)
			}()

			select {
			case err := <-done:
				if errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
					discard()
					return timedOut(c, d)
				}
				if _, ok := AsPanicError(err); ok {
					discard()
					return err
				}
				if ferr := flush(); err == nil {
					err = ferr
				}
				return err
			case <-ctx.Done():
				discard()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return timedOut(c, d)
				}
				return ctx.Err()
			}
		}
	}
}

func timedOut(c app.Context, d time.Duration) error {
	c.LogWarn("request timeout", "timeout", d.String())
	return app.ErrServiceUnavailable("The request took too long. Please try again.",
		app.WithError(&TimeoutError{Duration: d}),
		app.WithRequestID(c.RequestID()),
	)
}
