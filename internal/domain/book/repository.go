package book

import (
	"context"
	"strings"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(SQLite内嵌索引 / MySQL / Redis缓存装饰器)
// 2. 全文检索能力也收敛在这个窄接口里,更换索引引擎不影响查询服务
// 3. "没有匹配"返回空切片而不是错误;只有按ID定位的FindByID/Delete会返回ErrBookNotFound
type Repository interface {
	// Save 按ID插入或整体替换,同时更新所有二级索引
	Save(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id int) (*Book, error)

	// ExistsByID 判断ID是否存在(更新、删除前校验)
	ExistsByID(ctx context.Context, id int) (bool, error)

	// Delete 删除图书及其索引
	Delete(ctx context.Context, id int) error

	// FindAll 查询全部图书
	FindAll(ctx context.Context) ([]*Book, error)

	// DeleteAll 清空存储(仅用于启动灌数和测试)
	DeleteAll(ctx context.Context) error

	// MaxID 当前最大ID,空库返回0
	MaxID(ctx context.Context) (int, error)

	// FindByTitleLike 标题模糊匹配(大小写不敏感的子串匹配)
	FindByTitleLike(ctx context.Context, title string) ([]*Book, error)

	// FindByAuthorLike 作者前缀匹配(作者不分词,大小写敏感),按作者排序
	FindByAuthorLike(ctx context.Context, author string) ([]*Book, error)

	// FindByContentContains 内容包含某个词(分词后大小写不敏感)
	FindByContentContains(ctx context.Context, word string, page PageRequest) ([]*Book, error)

	// FindByAuthor 作者精确匹配
	FindByAuthor(ctx context.Context, author string, page PageRequest) ([]*Book, error)

	// FindByReleaseDate 出版日期精确匹配
	FindByReleaseDate(ctx context.Context, date Date, page PageRequest) ([]*Book, error)
}

// EventPublisher 图书变更事件发布接口
// 由infrastructure/event实现(RabbitMQ),未启用消息队列时使用空实现
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// TxManager 事务管理接口
// fn内通过ctx执行的所有Repository操作处于同一事务,fn返回error时回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SortField 可排序字段(取值与JSON字段名一致)
type SortField string

const (
	SortByID          SortField = "id"
	SortByTitle       SortField = "title"
	SortByAuthor      SortField = "author"
	SortByReleaseDate SortField = "releaseDate"
)

// Direction 排序方向
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

const (
	// DefaultMaxResults 未指定maxResults时每次检索的条数
	DefaultMaxResults = 100
	// WordSearchLimit findWord接口固定返回前100条
	WordSearchLimit = 100
)

// PageRequest 分页排序参数
// 注意:组合检索时该参数分别作用于每一次底层检索,而不是最终的交集
type PageRequest struct {
	Limit     int       // 最多返回条数
	OrderBy   SortField // 排序字段
	Direction Direction // 排序方向
}

// NewPageRequest 构建分页参数
// 学习要点:
// 1. limit<=0 时使用默认值
// 2. 未知排序字段回退到id,未知方向回退到ASC(大小写不敏感)
func NewPageRequest(limit int, orderBy, direction string) PageRequest {
	return PageRequest{
		Limit:     limit,
		OrderBy:   SortField(orderBy),
		Direction: Direction(strings.ToUpper(strings.TrimSpace(direction))),
	}.Normalize()
}

// Normalize 参数默认值与合法性修正
func (p PageRequest) Normalize() PageRequest {
	if p.Limit <= 0 {
		p.Limit = DefaultMaxResults
	}
	switch p.OrderBy {
	case SortByID, SortByTitle, SortByAuthor, SortByReleaseDate:
	default:
		p.OrderBy = SortByID
	}
	switch Direction(strings.ToUpper(string(p.Direction))) {
	case DESC:
		p.Direction = DESC
	default:
		p.Direction = ASC
	}
	return p
}

// Descending 是否降序
func (p PageRequest) Descending() bool {
	return p.Direction == DESC
}
