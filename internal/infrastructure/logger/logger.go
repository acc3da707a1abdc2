package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// New 根据日志配置创建logrus.Logger
// 设计说明：
// 1. 只创建实例,不使用logrus的全局logger,通过wire注入到各层
// 2. format=json用于生产环境日志采集,text用于本地开发
// 3. output为文件路径时以追加方式打开,由cleanup负责关闭
func New(cfg *config.Config) (*logrus.Logger, func(), error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.SetReportCaller(cfg.Log.EnableCaller)

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out, cleanup, err := openOutput(cfg.Log.Output)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(out)

	return log, cleanup, nil
}

func openOutput(output string) (io.Writer, func(), error) {
	switch output {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, func() { f.Close() }, nil
}
