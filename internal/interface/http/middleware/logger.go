package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// SlowRequestThreshold 超过该耗时的请求记为慢请求
const SlowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
//
// 教学要点:
// 1. 每个请求一条结构化日志(方法、路径、状态码、耗时、客户端IP、请求ID)
// 2. response.Error挂到gin.Context上的内部错误在这里统一输出,不返回给客户端
// 3. 5xx记Error,4xx记Warn,其余记Info
func Logger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"latency":    latency.String(),
			"client_ip":  c.ClientIP(),
			"request_id": GetRequestID(c),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields["trace_id"] = traceID
		}

		entry := log.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("请求处理失败")
		case status >= 400:
			entry.Warn("请求被拒绝")
		default:
			entry.Info("请求完成")
		}

		if latency > SlowRequestThreshold {
			entry.Warn("慢请求")
		}
	}
}
