package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Engine *gin.Engine
	Seeder *appbook.SeedCatalogUseCase
}

// ========================================
// Custom Providers
// ========================================
// 教学说明:
// 存储后端、缓存、消息队列都由配置决定,Wire无法直接表达"按配置二选一",
// 所以这些依赖用自定义Provider在函数内部分支

// bookStore 选定后端的仓储与事务管理器
// 两者必须来自同一个连接,所以一起构造
type bookStore struct {
	repo book.Repository
	tx   book.TxManager
}

// provideBookStore 按storage.driver打开存储
func provideBookStore(cfg *config.Config, log *logrus.Logger) (*bookStore, func(), error) {
	if cfg.Storage.Driver == config.StorageMySQL {
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return &bookStore{
			repo: mysql.NewBookRepository(db),
			tx:   mysql.NewTxManager(db),
		}, cleanup, nil
	}

	db, err := sqlite.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return &bookStore{
		repo: sqlite.NewBookRepository(db),
		tx:   sqlite.NewTxManager(db),
	}, func() { db.Close() }, nil
}

// provideTxManager 事务管理器
func provideTxManager(store *bookStore) book.TxManager {
	return store.tx
}

// provideBookRepository 图书仓储,redis.enabled时包一层缓存
func provideBookRepository(cfg *config.Config, log *logrus.Logger, store *bookStore) (book.Repository, func(), error) {
	if !cfg.Redis.Enabled {
		return store.repo, func() {}, nil
	}

	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewBookCache(store.repo, client, cfg.Redis.CacheTTL, log), func() { client.Close() }, nil
}

// provideEventPublisher 图书事件发布者,mq.enabled为false时丢弃事件
func provideEventPublisher(cfg *config.Config, log *logrus.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return book.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, err
	}
	return event.NewBookEventPublisher(publisher), func() { publisher.Close() }, nil
}

// provideSearchBooksUseCase 检索用例(默认条数来自配置)
func provideSearchBooksUseCase(cfg *config.Config, bookService book.Service) *appbook.SearchBooksUseCase {
	return appbook.NewSearchBooksUseCase(bookService, cfg.Storage.DefaultPageSize)
}

// provideSeedCatalogUseCase 启动灌数用例
func provideSeedCatalogUseCase(cfg *config.Config, bookService book.Service, log *logrus.Logger) *appbook.SeedCatalogUseCase {
	return appbook.NewSeedCatalogUseCase(bookService, cfg.Seed.Enabled, log)
}
