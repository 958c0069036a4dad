package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/goodvibes/internal/app"
)

// DefaultStackSize caps captured stack traces.
const DefaultStackSize = 4096

// Recover turns a panic into a PanicError for the app's error handler.
// The panic is logged with its stack unless stackSize is 0.
func Recover(stackSize ...int) app.Middleware {
	size := DefaultStackSize
	if len(stackSize) > 0 {
		size = stackSize[0]
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var stack []byte
				if size > 0 {
					stack = make([]byte, size)
					stack = stack[:runtime.Stack(stack, false)]
				}
				c.LogError("panic recovered", "panic", r, "stack", string(stack))
				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
