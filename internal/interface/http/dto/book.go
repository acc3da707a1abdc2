package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookRequest 新增/替换图书请求
// 说明:
// 1. id必须由服务端生成,请求体中出现非null的id直接返回422(包括0)
// 2. releaseDate格式为YYYY-MM-DD,空串或null表示未设置
type BookRequest struct {
	ID          *int   `json:"id,omitempty" swaggerignore:"true"`
	Title       string `json:"title" example:"Matilda"`
	Author      string `json:"author" example:"Roald Dahl"`
	Content     string `json:"content" example:"Magic. School."`
	ReleaseDate string `json:"releaseDate" example:"1988-10-01"`
}

// BookResponse 图书响应
// releaseDate未设置时输出null
type BookResponse struct {
	ID          int     `json:"id" example:"8"`
	Title       string  `json:"title" example:"Charlie and the Chocolate Factory"`
	Author      string  `json:"author" example:"Roald Dahl"`
	Content     string  `json:"content" example:"Adventures of young Charlie Bucket"`
	ReleaseDate *string `json:"releaseDate" example:"1964-01-17"`
}

// BookQueryRequest 组合检索请求
// 三个过滤条件都可选;maxResults、orderBy、direction分别作用于每一次底层检索
type BookQueryRequest struct {
	ReleaseDate string `json:"releaseDate" example:"1964-01-17"`
	Author      string `json:"author" example:"Roald Dahl"`
	Content     string `json:"content" example:"chocolate"`
	MaxResults  int    `json:"maxResults" example:"10"`
	OrderBy     string `json:"orderBy" enums:"id,title,author,releaseDate" example:"releaseDate"`
	Direction   string `json:"direction" enums:"ASC,DESC" example:"DESC"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		Content: b.Content,
	}
	if !b.ReleaseDate.IsZero() {
		date := b.ReleaseDate.String()
		resp.ReleaseDate = &date
	}
	return resp
}

// NewBookResponses 批量转换
// 没有结果时返回空数组而不是null
func NewBookResponses(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return list
}

// ParseReleaseDate 解析可选的出版日期,空串返回零值
func ParseReleaseDate(s string) (book.Date, error) {
	if s == "" {
		return book.Date{}, nil
	}
	return book.ParseDate(s)
}
