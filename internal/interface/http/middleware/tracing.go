package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "bookcatalog/http"

// Tracing 链路追踪中间件
//
// 1. 从请求头(traceparent)恢复上游的链路上下文
// 2. 为每个请求开启一个Server Span,并替换c.Request的Context
// 3. 下游用例的Span挂在它下面,请求日志里的trace_id也来自这里
//
// 未调用tracing.InitTracer时全局Provider是空实现,不产生任何数据
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+c.Request.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Request.Method),
				semconv.URLPath(c.Request.URL.Path),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// 路由模板匹配后才知道
		if route := c.FullPath(); route != "" {
			span.SetName(fmt.Sprintf("HTTP %s %s", c.Request.Method, route))
			span.SetAttributes(semconv.HTTPRoute(route))
		}

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		if status >= 500 {
			span.SetStatus(codes.Error, c.Errors.String())
		}
	}
}
