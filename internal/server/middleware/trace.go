package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SyedFrazAli/geoscope/internal/tracing"
)

// traceHeaderName returns the name of the header used for trace IDs.
func traceHeaderName(config tracing.Config) string {
	if config.TraceHeader != "" {
		return config.TraceHeader
	}

	return "GS-Trace-Id"
}

// WithTrace assigns each request a trace id, honoring one supplied by the
// caller, and echoes it on the response.
func WithTrace(config tracing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeaderName(config))
		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(traceHeaderName(config), traceID)

		c.Next()
	}
}

// WithOperationName tags the request context with a logical operation name
// for access logging.
func WithOperationName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tracing.WithOperationName(c.Request.Context(), name)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
