// Package router 组装gin引擎:中间件、业务路由和运维路由
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
)

// New 创建并配置Gin引擎
// 路由一览:
//
//	GET    /ping                     健康检查
//	GET    /metrics                  Prometheus指标
//	GET    /swagger/*any             API文档
//	GET    /api/books                图书列表
//	POST   /api/books                新增图书
//	GET    /api/books/:id            图书详情
//	PUT    /api/books/:id            替换图书
//	DELETE /api/books/:id            删除图书
//	GET    /api/books/findAuthors    作者前缀检索
//	GET    /api/books/findTitle      标题检索
//	GET    /api/books/findWord       内容关键词检索
//	POST   /api/books/findForm       组合检索
func New(cfg *config.Config, log *logrus.Logger, bookHandler *handler.BookHandler) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	books := r.Group("/api/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.POST("", bookHandler.CreateBook)

		// 静态路径优先于 /:id 匹配
		books.GET("/findAuthors", bookHandler.FindAuthors)
		books.GET("/findTitle", bookHandler.FindTitle)
		books.GET("/findWord", bookHandler.FindWord)
		books.POST("/findForm", bookHandler.FindForm)

		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.ReplaceBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
