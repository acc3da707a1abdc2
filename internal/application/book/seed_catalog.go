package book

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// SeedCatalogUseCase 启动灌数用例
// 清空存储后写入示例图书;失败只记录日志,服务照常启动
type SeedCatalogUseCase struct {
	bookService book.Service
	enabled     bool
	log         *logrus.Logger
}

// NewSeedCatalogUseCase 创建灌数用例
func NewSeedCatalogUseCase(bookService book.Service, enabled bool, log *logrus.Logger) *SeedCatalogUseCase {
	metrics.InitMetrics()
	return &SeedCatalogUseCase{
		bookService: bookService,
		enabled:     enabled,
		log:         log,
	}
}

// Execute 执行灌数,返回写入的图书数量(未启用或失败时为0)
func (uc *SeedCatalogUseCase) Execute(ctx context.Context) int {
	if !uc.enabled {
		uc.log.Info("启动灌数已关闭")
		return 0
	}

	books := book.SampleBooks()
	if err := uc.bookService.Reset(ctx, books); err != nil {
		uc.log.WithError(err).Error("启动灌数失败")
		return 0
	}

	metrics.SetGauge(metrics.CatalogSeededBooks, float64(len(books)))
	uc.log.WithField("count", len(books)).Info("✓ 示例图书已写入")
	return len(books)
}
