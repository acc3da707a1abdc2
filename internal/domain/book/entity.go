package book

import (
	"fmt"
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由服务端生成(当前最大ID+1),一旦分配不再变化
// 2. 两本图书相等当且仅当ID相等(见Equal)
// 3. Title、Content参与全文检索;Author不分词,只做精确/前缀匹配与排序
// 4. ReleaseDate只精确到日,对外序列化为ISO-8601(YYYY-MM-DD)
type Book struct {
	ID          int
	Title       string // 书名(全文索引)
	Author      string // 作者(不分词,可排序)
	Content     string // 内容摘要(全文索引,索引中不保存原文)
	ReleaseDate Date   // 出版日期
}

// NewBook 创建新图书(工厂方法)
// ID留空,由领域服务在持久化前分配
func NewBook(title, author, content string, releaseDate Date) *Book {
	return &Book{
		Title:       title,
		Author:      author,
		Content:     content,
		ReleaseDate: releaseDate,
	}
}

// Equal 按ID判断是否为同一本书
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return false
	}
	return b.ID == other.ID
}

// IsPersisted ID已分配
func (b *Book) IsPersisted() bool {
	return b.ID > 0
}

// ReplaceWith 整体替换除ID外的所有字段(PUT语义)
func (b *Book) ReplaceWith(other *Book) {
	b.Title = other.Title
	b.Author = other.Author
	b.Content = other.Content
	b.ReleaseDate = other.ReleaseDate
}

// Clone 返回副本,避免调用方修改仓储内部数据
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// DateLayout ISO-8601日期格式
const DateLayout = "2006-01-02"

// Date 日期值对象(不含时分秒和时区)
// 设计说明:使用可比较的结构体而不是time.Time,
// 按日期做精确匹配和map去重时不受时区、单调时钟影响
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate 创建日期
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf 截取time.Time的日期部分
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate 解析YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("非法日期 %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero 未设置
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time 转换为UTC零点
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String 格式化为YYYY-MM-DD,未设置时返回空串
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}
