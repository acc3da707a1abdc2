package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title           图书目录服务 API
// @version         1.0
// @description     图书增删改查与检索(标题子串、作者前缀、内容关键词、组合检索)
// @host            localhost:8080
// @BasePath        /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 依赖注入(配置、日志、存储、缓存、消息队列、路由)
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	cfg := app.Config
	app.Log.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"mode":    cfg.Server.Mode,
		"storage": cfg.Storage.Driver,
		"redis":   cfg.Redis.Enabled,
		"mq":      cfg.MQ.Enabled,
		"tracing": cfg.Tracing.Enabled,
	}).Info("✓ 配置加载成功")

	// 2. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			app.Log.WithError(err).Warn("初始化链路追踪失败,继续运行")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					app.Log.WithError(err).Warn("关闭链路追踪失败")
				}
			}()
		}
	}

	// 3. 启动灌数(失败只记日志)
	app.Seeder.Execute(ctx)

	// 4. 启动HTTP服务
	if err := runServer(ctx, app); err != nil {
		app.Log.WithError(err).Error("服务异常退出")
	}
}

// runServer 启动HTTP服务,收到退出信号后在超时时间内优雅关闭
func runServer(ctx context.Context, app *App) error {
	cfg := app.Config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	app.Log.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"swagger": "http://localhost" + srv.Addr + "/swagger/index.html",
	}).Info("🚀 服务启动")

	select {
	case <-ctx.Done():
		app.Log.Info("收到退出信号,开始关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		app.Log.Info("服务已关闭")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
