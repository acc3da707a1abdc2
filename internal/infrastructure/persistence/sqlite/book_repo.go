package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(SQLite + FTS5)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 标题和内容走FTS5全文索引,作者和出版日期走普通B树索引
// 3. 出版日期以YYYY-MM-DD文本存储,字典序即时间序
type bookRepository struct {
	db *sql.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *sql.DB) book.Repository {
	return &bookRepository{db: db}
}

const selectColumns = `SELECT b.id, b.title, b.author, b.body, b.release_date FROM books b`

// Save 插入或整体替换
// 使用UPSERT而不是INSERT OR REPLACE:REPLACE的隐式删除不会触发删除触发器,全文索引会残留旧词
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO books (id, title, author, body, release_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			body = excluded.body,
			release_date = excluded.release_date`,
		b.ID, b.Title, b.Author, b.Content, nullableDate(b.ReleaseDate),
	)
	if err != nil {
		return apperrors.Wrap(err, "保存图书失败")
	}
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id int) (*book.Book, error) {
	row := r.conn(ctx).QueryRowContext(ctx, selectColumns+` WHERE b.id = ?`, id)

	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return b, nil
}

// ExistsByID 判断ID是否存在
func (r *bookRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return exists, nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id int) error {
	result, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	if affected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// FindAll 查询全部图书(按ID排序)
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return r.query(ctx, selectColumns+` ORDER BY b.id`)
}

// DeleteAll 清空
func (r *bookRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM books`); err != nil {
		return apperrors.Wrap(err, "清空图书失败")
	}
	return nil
}

// MaxID 当前最大ID
func (r *bookRepository) MaxID(ctx context.Context) (int, error) {
	var maxID int
	if err := r.conn(ctx).QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM books`).Scan(&maxID); err != nil {
		return 0, apperrors.Wrap(err, "查询最大ID失败")
	}
	return maxID, nil
}

// FindByTitleLike 标题大小写不敏感的子串匹配
// 注意:FTS5按词匹配,"godf"匹配不到"Godfather",所以标题子串走LIKE
func (r *bookRepository) FindByTitleLike(ctx context.Context, title string) ([]*book.Book, error) {
	return r.query(ctx,
		selectColumns+` WHERE LOWER(b.title) LIKE '%' || LOWER(?) || '%' ESCAPE '\' ORDER BY b.id`,
		escapeLike(title),
	)
}

// FindByAuthorLike 作者前缀匹配(大小写敏感),按作者排序
// 学习要点:SQLite的LIKE默认忽略ASCII大小写,这里用substr比较保证大小写敏感
func (r *bookRepository) FindByAuthorLike(ctx context.Context, author string) ([]*book.Book, error) {
	return r.query(ctx,
		selectColumns+` WHERE substr(b.author, 1, ?) = ? ORDER BY b.author, b.id`,
		utf8.RuneCountInString(author), author,
	)
}

// FindByContentContains 内容包含某个词
// 默认分词器unicode61会去掉标点并转小写,"force"可以匹配"Force."
func (r *bookRepository) FindByContentContains(ctx context.Context, word string, page book.PageRequest) ([]*book.Book, error) {
	match := contentMatch(word)
	if match == "" {
		return []*book.Book{}, nil
	}

	page = page.Normalize()
	return r.query(ctx,
		selectColumns+` JOIN books_fts f ON f.rowid = b.id WHERE books_fts MATCH ?`+orderBy(page)+` LIMIT ?`,
		match, page.Limit,
	)
}

// FindByAuthor 作者精确匹配
func (r *bookRepository) FindByAuthor(ctx context.Context, author string, page book.PageRequest) ([]*book.Book, error) {
	page = page.Normalize()
	return r.query(ctx,
		selectColumns+` WHERE b.author = ?`+orderBy(page)+` LIMIT ?`,
		author, page.Limit,
	)
}

// FindByReleaseDate 出版日期精确匹配
func (r *bookRepository) FindByReleaseDate(ctx context.Context, date book.Date, page book.PageRequest) ([]*book.Book, error) {
	page = page.Normalize()
	return r.query(ctx,
		selectColumns+` WHERE b.release_date = ?`+orderBy(page)+` LIMIT ?`,
		date.String(), page.Limit,
	)
}

// =========================================
// 辅助函数
// =========================================

// conn 从context获取事务,没有则使用连接池
func (r *bookRepository) conn(ctx context.Context) dbtx {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db
}

func (r *bookRepository) query(ctx context.Context, query string, args ...interface{}) ([]*book.Book, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	defer rows.Close()

	books := make([]*book.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "读取图书失败")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "读取图书失败")
	}
	return books, nil
}

// scanner 兼容*sql.Row和*sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(s scanner) (*book.Book, error) {
	var (
		b           book.Book
		releaseDate sql.NullString
	)
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Content, &releaseDate); err != nil {
		return nil, err
	}

	if releaseDate.Valid && releaseDate.String != "" {
		d, err := book.ParseDate(releaseDate.String)
		if err != nil {
			return nil, fmt.Errorf("图书%d: %w", b.ID, err)
		}
		b.ReleaseDate = d
	}
	return &b, nil
}

// sortColumns 排序字段白名单(JSON字段名 → 列名),防止SQL注入
var sortColumns = map[book.SortField]string{
	book.SortByID:          "b.id",
	book.SortByTitle:       "b.title",
	book.SortByAuthor:      "b.author",
	book.SortByReleaseDate: "b.release_date",
}

func orderBy(page book.PageRequest) string {
	column := sortColumns[page.OrderBy]
	if column == "" {
		column = sortColumns[book.SortByID]
	}
	direction := "ASC"
	if page.Descending() {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, b.id ASC", column, direction)
}

// contentMatch 构建只检索body列的FTS5表达式
// 整个词作为短语加引号,避免用户输入被当成FTS5语法(AND/OR/NEAR/*)
func contentMatch(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return `body : "` + strings.ReplaceAll(word, `"`, `""`) + `"`
}

// escapeLike 转义LIKE通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullableDate(d book.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
