package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// 检索类型(监控标签)
const (
	SearchByTitle   = "title"
	SearchByAuthor  = "author"
	SearchByWord    = "word"
	SearchByExample = "form"
)

// SearchBooksUseCase 图书检索用例
// 设计说明:
// 1. 四种检索:标题子串、作者前缀、内容关键词、按样例组合检索
// 2. 每次检索记录耗时和结果条数,便于发现慢查询和"空结果"问题
type SearchBooksUseCase struct {
	bookService     book.Service
	defaultPageSize int
}

// NewSearchBooksUseCase 创建检索用例
// defaultPageSize为组合检索未指定maxResults时的条数
func NewSearchBooksUseCase(bookService book.Service, defaultPageSize int) *SearchBooksUseCase {
	metrics.InitMetrics()
	if defaultPageSize <= 0 {
		defaultPageSize = book.DefaultMaxResults
	}
	return &SearchBooksUseCase{
		bookService:     bookService,
		defaultPageSize: defaultPageSize,
	}
}

// SearchRequest 组合检索请求
// 零值字段表示未设置
type SearchRequest struct {
	ReleaseDate book.Date
	Author      string
	Content     string
	MaxResults  int
	OrderBy     string
	Direction   string
}

// ByTitle 标题子串检索(大小写不敏感)
func (uc *SearchBooksUseCase) ByTitle(ctx context.Context, title string) ([]*book.Book, error) {
	return uc.run(ctx, SearchByTitle, attribute.String("title", title), func(ctx context.Context) ([]*book.Book, error) {
		return uc.bookService.FindByTitle(ctx, title)
	})
}

// ByAuthor 作者前缀检索
func (uc *SearchBooksUseCase) ByAuthor(ctx context.Context, author string) ([]*book.Book, error) {
	return uc.run(ctx, SearchByAuthor, attribute.String("author", author), func(ctx context.Context) ([]*book.Book, error) {
		return uc.bookService.FindByAuthor(ctx, author)
	})
}

// ByWord 内容关键词检索,最多返回100条
func (uc *SearchBooksUseCase) ByWord(ctx context.Context, word string) ([]*book.Book, error) {
	return uc.run(ctx, SearchByWord, attribute.String("word", word), func(ctx context.Context) ([]*book.Book, error) {
		return uc.bookService.FindByWord(ctx, word)
	})
}

// ByExample 按样例组合检索
func (uc *SearchBooksUseCase) ByExample(ctx context.Context, req SearchRequest) ([]*book.Book, error) {
	limit := req.MaxResults
	if limit <= 0 {
		limit = uc.defaultPageSize
	}

	q := book.Query{
		ReleaseDate: req.ReleaseDate,
		Author:      req.Author,
		Content:     req.Content,
		Page:        book.NewPageRequest(limit, req.OrderBy, req.Direction),
	}

	attr := attribute.StringSlice("filters", filters(q))
	return uc.run(ctx, SearchByExample, attr, func(ctx context.Context) ([]*book.Book, error) {
		return uc.bookService.Search(ctx, q)
	})
}

func (uc *SearchBooksUseCase) run(
	ctx context.Context,
	kind string,
	attr attribute.KeyValue,
	search func(ctx context.Context) ([]*book.Book, error),
) ([]*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	span.SetAttributes(attribute.String("search.kind", kind), attr)

	start := time.Now()
	books, err := search(ctx)

	labels := map[string]string{"kind": kind}
	metrics.IncCounterVec(metrics.BookSearchesTotal, labels)
	metrics.ObserveHistogramVec(metrics.BookSearchDuration, labels, time.Since(start).Seconds())
	if err == nil {
		metrics.ObserveHistogramVec(metrics.BookSearchResults, labels, float64(len(books)))
		span.SetAttributes(attribute.Int("search.results", len(books)))
	}

	tracing.EndSpan(span, err)
	return books, err
}

// filters 已设置的过滤条件名称
func filters(q book.Query) []string {
	names := make([]string, 0, 3)
	if q.HasReleaseDate() {
		names = append(names, "releaseDate")
	}
	if q.HasAuthor() {
		names = append(names, "author")
	}
	if q.HasContent() {
		names = append(names, "content")
	}
	return names
}
