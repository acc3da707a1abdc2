package book

import (
	"context"
)

// Query 组合检索条件(按样例检索)
// 三个过滤条件都是可选的;Page分别作用于每一次底层检索
type Query struct {
	ReleaseDate Date   // 出版日期,零值表示未设置
	Author      string // 作者精确匹配,空串表示未设置
	Content     string // 内容关键词,空串表示未设置
	Page        PageRequest
}

// HasReleaseDate 是否设置了出版日期条件
func (q Query) HasReleaseDate() bool {
	return !q.ReleaseDate.IsZero()
}

// HasAuthor 是否设置了作者条件
func (q Query) HasAuthor() bool {
	return q.Author != ""
}

// HasContent 是否设置了内容条件
func (q Query) HasContent() bool {
	return q.Content != ""
}

// searchByExample 组合检索
//
// 执行顺序(与线上行为保持一致,包括不对称的求交逻辑):
// 1. 设置了出版日期:R = 按日期检索,工作集 = R
// 2. 设置了作者:A = 按作者检索;若也设置了日期,A只保留工作集中存在的ID(保持A的顺序);工作集 = A
// 3. 设置了内容:C = 按内容检索;只有日期和作者都设置时才与工作集求交,否则C直接覆盖工作集
// 4. 什么条件都没有:返回空
//
// 注意:只有日期+作者+内容三者同时设置时,内容条件才参与求交;
// "仅内容"、"日期+内容"、"作者+内容"三种组合中内容结果会直接覆盖之前的结果
func searchByExample(ctx context.Context, repo Repository, q Query) ([]*Book, error) {
	page := q.Page.Normalize()
	books := make([]*Book, 0)

	if q.HasReleaseDate() {
		byReleaseDate, err := repo.FindByReleaseDate(ctx, q.ReleaseDate, page)
		if err != nil {
			return nil, err
		}
		books = byReleaseDate
	}

	if q.HasAuthor() {
		byAuthor, err := repo.FindByAuthor(ctx, q.Author, page)
		if err != nil {
			return nil, err
		}
		if q.HasReleaseDate() {
			byAuthor = retainAll(byAuthor, books)
		}
		books = byAuthor
	}

	if q.HasContent() {
		byContent, err := repo.FindByContentContains(ctx, q.Content, page)
		if err != nil {
			return nil, err
		}
		if q.HasReleaseDate() && q.HasAuthor() {
			byContent = retainAll(byContent, books)
		}
		books = byContent
	}

	return distinct(books), nil
}

// retainAll 只保留keep中也存在的图书(按ID判断),保持books原有顺序
func retainAll(books, keep []*Book) []*Book {
	ids := make(map[int]struct{}, len(keep))
	for _, b := range keep {
		ids[b.ID] = struct{}{}
	}

	kept := make([]*Book, 0, len(books))
	for _, b := range books {
		if _, ok := ids[b.ID]; ok {
			kept = append(kept, b)
		}
	}
	return kept
}

// distinct 按ID去重,保留首次出现的顺序
func distinct(books []*Book) []*Book {
	seen := make(map[int]struct{}, len(books))
	result := make([]*Book, 0, len(books))
	for _, b := range books {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		result = append(result, b)
	}
	return result
}
