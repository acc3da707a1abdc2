package book

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// tracerName 应用层Span的Tracer名称
const tracerName = "bookcatalog/application"

// ManageBooksUseCase 图书增删改查用例
// 设计说明:
// 1. 业务规则(ID生成、存在性校验)由领域服务负责,这里只做流程编排
// 2. 写操作成功后发布变更事件;事件发布失败只记日志,不影响接口结果
type ManageBooksUseCase struct {
	bookService book.Service
	publisher   book.EventPublisher
	log         *logrus.Logger
}

// NewManageBooksUseCase 创建增删改查用例
func NewManageBooksUseCase(bookService book.Service, publisher book.EventPublisher, log *logrus.Logger) *ManageBooksUseCase {
	metrics.InitMetrics()
	return &ManageBooksUseCase{
		bookService: bookService,
		publisher:   publisher,
		log:         log,
	}
}

// BookInput 新增/替换图书的输入
// ClientID非nil表示请求体里带了id字段(即使值为0),这种请求必须拒绝
type BookInput struct {
	ClientID    *int
	Title       string
	Author      string
	Content     string
	ReleaseDate book.Date
}

func (in *BookInput) toEntity() (*book.Book, error) {
	if in == nil {
		return nil, book.ErrEmptyPayload
	}
	if in.ClientID != nil {
		return nil, book.ErrIDMustBeGenerated
	}
	return book.NewBook(in.Title, in.Author, in.Content, in.ReleaseDate), nil
}

// List 查询全部图书
func (uc *ManageBooksUseCase) List(ctx context.Context) ([]*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	books, err := uc.bookService.ListBooks(ctx)
	tracing.EndSpan(span, err)
	return books, err
}

// Get 根据ID查询
func (uc *ManageBooksUseCase) Get(ctx context.Context, id int) (*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	b, err := uc.bookService.GetBook(ctx, id)
	tracing.EndSpan(span, err)
	return b, err
}

// Create 新增图书
func (uc *ManageBooksUseCase) Create(ctx context.Context, in *BookInput) (created *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() {
		uc.observe("create", err)
		tracing.EndSpan(span, err)
	}()

	b, err := in.toEntity()
	if err != nil {
		return nil, err
	}

	created, err = uc.bookService.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, book.NewEvent(book.EventCreated, created.ID, created))
	return created, nil
}

// Replace 整体替换图书
// 不存在的ID无论请求体如何都返回404:
// 请求体合法时由领域服务校验存在性;请求体非法时这里先补一次存在性校验
func (uc *ManageBooksUseCase) Replace(ctx context.Context, id int, in *BookInput) (updated *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ReplaceBook")
	defer func() {
		uc.observe("replace", err)
		tracing.EndSpan(span, err)
	}()

	b, err := in.toEntity()
	if err != nil {
		if notFound := uc.bookService.VerifyExists(ctx, id); notFound != nil {
			return nil, notFound
		}
		return nil, err
	}

	updated, err = uc.bookService.ReplaceBook(ctx, id, b)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, book.NewEvent(book.EventUpdated, updated.ID, updated))
	return updated, nil
}

// VerifyExists 校验图书存在(HTTP层在解析请求体之前调用)
func (uc *ManageBooksUseCase) VerifyExists(ctx context.Context, id int) error {
	return uc.bookService.VerifyExists(ctx, id)
}

// Delete 删除图书
func (uc *ManageBooksUseCase) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer func() {
		uc.observe("delete", err)
		tracing.EndSpan(span, err)
	}()

	if err = uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, book.NewEvent(book.EventDeleted, id, nil))
	return nil
}

func (uc *ManageBooksUseCase) publish(ctx context.Context, e book.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.log.WithError(err).WithFields(logrus.Fields{
			"event":   e.Type,
			"book_id": e.BookID,
		}).Warn("发布图书事件失败")
	}
}

func (uc *ManageBooksUseCase) observe(operation string, err error) {
	metrics.IncCounterVec(metrics.BookOperationsTotal, map[string]string{
		"operation": operation,
		"result":    metrics.Result(err),
	})
}
