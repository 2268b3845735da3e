package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/problem"
)

// ErrorHandler returns middleware that renders the last error a handler
// attached with c.Error as a problem response.
// Nothing is written when the handler already produced a response.
func ErrorHandler(translator *problem.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		translator.Respond(c, c.Errors.Last().Err)
	}
}

// MethodNotAllowed is the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	_ = c.Error(&problem.MethodNotAllowedError{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
	})
}

// RouteNotFound is the engine's NoRoute handler.
func RouteNotFound(c *gin.Context) {
	_ = c.Error(&problem.RouteNotFoundError{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
	})
}
