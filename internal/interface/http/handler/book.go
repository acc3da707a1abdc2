package handler

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	manageBooks *appbook.ManageBooksUseCase
	searchBooks *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(manageBooks *appbook.ManageBooksUseCase, searchBooks *appbook.SearchBooksUseCase) *BookHandler {
	return &BookHandler{
		manageBooks: manageBooks,
		searchBooks: searchBooks,
	}
}

// ListBooks 查询全部图书
// @Summary      图书列表
// @Description  返回存储中的全部图书,没有数据时返回空数组
// @Tags         图书
// @Produce      json
// @Success      200 {array} dto.BookResponse
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.manageBooks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponses(books))
}

// GetBook 查询图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.manageBooks.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(b))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  ID由服务端生成(当前最大ID+1),请求体不能包含id
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      415 {object} response.Response "请求体缺失或不是JSON"
// @Failure      422 {object} response.Response "请求体包含id"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	input, err := bindBook(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.manageBooks.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(created))
}

// ReplaceBook 整体替换图书
// @Summary      替换图书
// @Description  先校验图书存在,再校验请求体;未提供的字段会被清空
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      415 {object} response.Response "请求体缺失或不是JSON"
// @Failure      422 {object} response.Response "请求体包含id"
// @Router       /api/books/{id} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 1. 存在性优先于请求体校验
	if err := h.manageBooks.VerifyExists(ctx, id); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 请求体
	input, err := bindBook(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.manageBooks.Replace(ctx, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(updated))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.manageBooks.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// FindAuthors 按作者前缀检索
// @Summary      作者前缀检索
// @Description  作者以给定文本开头(区分大小写),按作者排序
// @Tags         图书检索
// @Produce      json
// @Param        author query string true "作者前缀"
// @Success      200 {array} dto.BookResponse
// @Failure      400 {object} response.Response "缺少author参数"
// @Router       /api/books/findAuthors [get]
func (h *BookHandler) FindAuthors(c *gin.Context) {
	author, ok := requiredQuery(c, "author")
	if !ok {
		return
	}
	h.writeBooks(c)(h.searchBooks.ByAuthor(c.Request.Context(), author))
}

// FindTitle 按标题子串检索
// @Summary      标题检索
// @Description  标题包含给定文本(不区分大小写)
// @Tags         图书检索
// @Produce      json
// @Param        title query string true "标题片段"
// @Success      200 {array} dto.BookResponse
// @Failure      400 {object} response.Response "缺少title参数"
// @Router       /api/books/findTitle [get]
func (h *BookHandler) FindTitle(c *gin.Context) {
	title, ok := requiredQuery(c, "title")
	if !ok {
		return
	}
	h.writeBooks(c)(h.searchBooks.ByTitle(c.Request.Context(), title))
}

// FindWord 按内容关键词检索
// @Summary      内容关键词检索
// @Description  内容包含给定词(分词后不区分大小写),最多返回100条
// @Tags         图书检索
// @Produce      json
// @Param        word query string true "关键词"
// @Success      200 {array} dto.BookResponse
// @Failure      400 {object} response.Response "缺少word参数"
// @Router       /api/books/findWord [get]
func (h *BookHandler) FindWord(c *gin.Context) {
	word, ok := requiredQuery(c, "word")
	if !ok {
		return
	}
	h.writeBooks(c)(h.searchBooks.ByWord(c.Request.Context(), word))
}

// FindForm 按样例组合检索
// @Summary      组合检索
// @Description  出版日期、作者、内容三个条件可选;分页排序参数分别作用于每一次底层检索
// @Tags         图书检索
// @Accept       json
// @Produce      json
// @Param        request body dto.BookQueryRequest true "检索条件"
// @Success      200 {array} dto.BookResponse
// @Failure      415 {object} response.Response "请求体不是JSON"
// @Router       /api/books/findForm [post]
func (h *BookHandler) FindForm(c *gin.Context) {
	var req dto.BookQueryRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	date, err := dto.ParseReleaseDate(req.ReleaseDate)
	if err != nil {
		response.Error(c, apperrors.WithCause(apperrors.ErrUnsupportedMediaType, err))
		return
	}

	h.writeBooks(c)(h.searchBooks.ByExample(c.Request.Context(), appbook.SearchRequest{
		ReleaseDate: date,
		Author:      req.Author,
		Content:     req.Content,
		MaxResults:  req.MaxResults,
		OrderBy:     req.OrderBy,
		Direction:   req.Direction,
	}))
}

// =========================================
// 辅助函数
// =========================================

// writeBooks 输出检索结果
func (h *BookHandler) writeBooks(c *gin.Context) func([]*book.Book, error) {
	return func(books []*book.Book, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.NewBookResponses(books))
	}
}

// bookID 解析路径中的图书ID
// 非整数ID与不存在的ID一样返回404
func bookID(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Withf(book.ErrBookNotFound, "图书不存在: id=%s", raw)
	}
	return id, nil
}

// requiredQuery 读取必填查询参数,缺失时返回400
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value, ok := c.GetQuery(name)
	if !ok {
		response.Error(c, apperrors.Withf(apperrors.ErrInvalidParams, "缺少查询参数: %s", name))
		return "", false
	}
	return value, true
}

// bindBook 解析图书请求体
func bindBook(c *gin.Context) (*appbook.BookInput, error) {
	var req dto.BookRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	// 客户端带id时不再校验其他字段,一律422
	if req.ID != nil {
		return nil, book.ErrIDMustBeGenerated
	}

	date, err := dto.ParseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, apperrors.WithCause(apperrors.ErrUnsupportedMediaType, err)
	}

	return &appbook.BookInput{
		ClientID:    req.ID,
		Title:       req.Title,
		Author:      req.Author,
		Content:     req.Content,
		ReleaseDate: date,
	}, nil
}

// bindJSON 校验Content-Type并解析JSON请求体
// 以下情况都返回415:
// 1. Content-Type不是JSON
// 2. 请求体为空或为null
// 3. 请求体无法解析为目标结构
func bindJSON(c *gin.Context, obj interface{}) error {
	if !isJSON(c.ContentType()) {
		return apperrors.Withf(apperrors.ErrUnsupportedMediaType, "不支持的Content-Type: %q", c.ContentType())
	}

	body, err := c.GetRawData()
	if err != nil {
		return apperrors.WithCause(apperrors.ErrUnsupportedMediaType, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return apperrors.ErrUnsupportedMediaType
	}

	if err := binding.JSON.BindBody(body, obj); err != nil {
		return apperrors.WithCause(apperrors.ErrUnsupportedMediaType, err)
	}
	return nil
}

// isJSON application/json 或 application/*+json
func isJSON(contentType string) bool {
	return contentType == binding.MIMEJSON ||
		(strings.HasPrefix(contentType, "application/") && strings.HasSuffix(contentType, "+json"))
}
