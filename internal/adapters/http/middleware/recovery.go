package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/problem"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

// ErrPanic wraps values recovered from a panicking handler.
var ErrPanic = errors.New("panic recovered")

// Recovery returns middleware that recovers from panics.
// On panic, it:
//   - Logs the recovered value with full stack trace at ERROR level
//   - Responds with the 500 problem produced by the translator
//
// This middleware should be applied first in the chain to catch panics
// from all subsequent handlers and middleware.
func Recovery(translator *problem.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			translator.Respond(c, panicError(r))
		}()

		c.Next()
	}
}

// panicError turns a recovered value into an error, keeping a panicked error in the chain.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}

	return fmt.Errorf("%w: %v", ErrPanic, r)
}
