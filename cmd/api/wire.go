//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明:
// 1. 本文件只在 `wire gen ./cmd/api` 时参与编译
// 2. wire_gen.go是生成结果,修改依赖后重新执行wire gen
// 3. 自定义Provider放在providers.go,正常编译和wire gen都能看到

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 配置、日志、存储、缓存、消息队列
var infrastructureSet = wire.NewSet(
	config.Load,
	logger.New,
	provideBookStore,
	provideTxManager,
	provideBookRepository,
	provideEventPublisher,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewManageBooksUseCase,
	provideSearchBooksUseCase,
	provideSeedCatalogUseCase,
)

// interfaceSet HTTP处理器与路由
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按依赖的逆序释放资源(消息队列、Redis、数据库、日志文件)
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
