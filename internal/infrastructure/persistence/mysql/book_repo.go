package mysql

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 内容检索用REGEXP单词边界匹配,效果接近SQLite的FTS5分词(数据量大时应换成FULLTEXT索引)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Save 插入或整体替换
// INSERT ... ON DUPLICATE KEY UPDATE,created_at保持首次插入的值
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "author", "content", "release_date", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "保存图书失败")
	}

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id int) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// ExistsByID 判断ID是否存在
func (r *bookRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return count > 0, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id int) error {
	result := r.getDB(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindAll 查询全部图书
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return r.find(r.getDB(ctx).Order("id ASC"))
}

// DeleteAll 清空
// GORM默认拒绝不带条件的批量删除,需要显式AllowGlobalUpdate
func (r *bookRepository) DeleteAll(ctx context.Context) error {
	err := r.getDB(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BookModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空图书失败")
	}
	return nil
}

// MaxID 当前最大ID
func (r *bookRepository) MaxID(ctx context.Context) (int, error) {
	var maxID int
	err := r.getDB(ctx).Model(&BookModel{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "查询最大ID失败")
	}
	return maxID, nil
}

// FindByTitleLike 标题大小写不敏感的子串匹配
func (r *bookRepository) FindByTitleLike(ctx context.Context, title string) ([]*book.Book, error) {
	query := r.getDB(ctx).
		Where("LOWER(title) LIKE ?", "%"+escapeLike(strings.ToLower(title))+"%").
		Order("id ASC")
	return r.find(query)
}

// FindByAuthorLike 作者前缀匹配(大小写敏感),按作者排序
// 学习要点:utf8mb4默认排序规则忽略大小写,比较时显式使用utf8mb4_bin
func (r *bookRepository) FindByAuthorLike(ctx context.Context, author string) ([]*book.Book, error) {
	query := r.getDB(ctx).
		Where("LEFT(author, CHAR_LENGTH(?)) = ? COLLATE utf8mb4_bin", author, author).
		Order("author ASC").Order("id ASC")
	return r.find(query)
}

// FindByContentContains 内容包含某个词(大小写不敏感,按单词边界)
func (r *bookRepository) FindByContentContains(ctx context.Context, word string, page book.PageRequest) ([]*book.Book, error) {
	pattern := contentPattern(word)
	if pattern == "" {
		return []*book.Book{}, nil
	}

	query := r.getDB(ctx).Where("content REGEXP ?", pattern)
	return r.find(paginate(query, page))
}

// FindByAuthor 作者精确匹配
func (r *bookRepository) FindByAuthor(ctx context.Context, author string, page book.PageRequest) ([]*book.Book, error) {
	query := r.getDB(ctx).Where("author = ? COLLATE utf8mb4_bin", author)
	return r.find(paginate(query, page))
}

// FindByReleaseDate 出版日期精确匹配
func (r *bookRepository) FindByReleaseDate(ctx context.Context, date book.Date, page book.PageRequest) ([]*book.Book, error) {
	query := r.getDB(ctx).Where("release_date = ?", date.String())
	return r.find(paginate(query, page))
}

// =========================================
// 辅助函数
// =========================================

func (r *bookRepository) find(query *gorm.DB) ([]*book.Book, error) {
	var models []BookModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// paginate 排序+条数限制
// 排序字段只接受白名单,非法值在Normalize时已经回退为id
func paginate(query *gorm.DB, page book.PageRequest) *gorm.DB {
	page = page.Normalize()
	return query.Order(orderClause(page)).Order("id ASC").Limit(page.Limit)
}

func orderClause(page book.PageRequest) string {
	var column string
	switch page.OrderBy {
	case book.SortByTitle:
		column = "title"
	case book.SortByAuthor:
		column = "author"
	case book.SortByReleaseDate:
		column = "release_date"
	default:
		column = "id"
	}

	if page.Descending() {
		return column + " DESC"
	}
	return column + " ASC"
}

// contentPattern 单词边界正则(MySQL 8使用ICU正则,支持\b)
func contentPattern(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return `\b` + regexp.QuoteMeta(word) + `\b`
}

// escapeLike 转义LIKE通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Content:     b.Content,
		ReleaseDate: b.ReleaseDate.String(),
	}
}

// toBookEntity GORM模型 → 领域实体
// 日期格式异常时按未设置处理
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:      model.ID,
		Title:   model.Title,
		Author:  model.Author,
		Content: model.Content,
	}
	if model.ReleaseDate != "" {
		if d, err := book.ParseDate(model.ReleaseDate); err == nil {
			b.ReleaseDate = d
		}
	}
	return b
}
