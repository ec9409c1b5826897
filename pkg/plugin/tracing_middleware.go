package plugin

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Fl0rencess720/repoaccess/pkg/common/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// tracingMiddleware opens a server span per request and makes sure every
// response carries a request id.
func tracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("plugin.http")

	return func(c *gin.Context) {
		reqCtx := otel.GetTextMapPropagator().Extract(
			c.Request.Context(),
			propagation.HeaderCarrier(c.Request.Header),
		)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		reqCtx, span := tracer.Start(reqCtx, fmt.Sprintf("%s %s", c.Request.Method, route), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		requestID := strings.TrimSpace(c.GetHeader(observability.RequestIDHeader))
		if requestID == "" {
			requestID = observability.RequestIDFromContext(reqCtx)
		}
		reqCtx = observability.ContextWithRequestID(reqCtx, requestID)

		c.Request = c.Request.WithContext(reqCtx)
		c.Writer.Header().Set(observability.RequestIDHeader, requestID)

		span.SetAttributes(
			attribute.String("request.id", requestID),
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", c.Request.URL.Path),
		)
		if owner := c.Param("owner"); owner != "" {
			span.SetAttributes(
				attribute.String("github.owner", owner),
				attribute.String("github.repo", c.Param("repo")),
			)
		}

		c.Next()

		statusCode := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
		for _, ginErr := range c.Errors {
			span.RecordError(ginErr.Err)
		}
		if statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
		}
	}
}
