package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// KeyPrefix 图书缓存key前缀,完整key为 bookcatalog:book:{id}
const KeyPrefix = "bookcatalog:book:"

// BreakerName 缓存熔断器名称(日志和监控标签)
const BreakerName = "book-cache"

// bookCache 图书仓储的缓存装饰器(Cache-Aside)
// 设计说明:
// 1. 只缓存按ID读取的结果;列表和检索结果变化太频繁,直接走存储
// 2. 写操作先写存储,再删除缓存
// 3. Redis故障不影响业务:所有Redis调用都经过熔断器,失败或熔断时直接访问存储
type bookCache struct {
	book.Repository // 未覆盖的方法直接委托给底层仓储

	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
	log     *logrus.Logger
}

// NewBookCache 用Redis缓存包装底层仓储
func NewBookCache(repo book.Repository, client *redis.Client, ttl time.Duration, log *logrus.Logger) book.Repository {
	metrics.InitMetrics()

	cfg := circuitbreaker.DefaultConfig()
	// 未命中是正常结果,不计入失败
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, redis.Nil)
	}
	breaker := circuitbreaker.NewCircuitBreaker(BreakerName, cfg)
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.WithFields(logrus.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("缓存熔断器状态变化")
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": BreakerName}, float64(circuitbreaker.StateClosed))

	return &bookCache{
		Repository: repo,
		client:     client,
		breaker:    breaker,
		ttl:        ttl,
		log:        log,
	}
}

// cachedBook 缓存中的JSON结构
type cachedBook struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// FindByID 先查缓存,未命中再查存储并回填
func (c *bookCache) FindByID(ctx context.Context, id int) (*book.Book, error) {
	if b, ok := c.get(ctx, id); ok {
		return b, nil
	}

	b, err := c.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.set(ctx, b)
	return b, nil
}

// ExistsByID 缓存命中即存在
func (c *bookCache) ExistsByID(ctx context.Context, id int) (bool, error) {
	if _, ok := c.get(ctx, id); ok {
		return true, nil
	}
	return c.Repository.ExistsByID(ctx, id)
}

// Save 写存储后删除缓存
func (c *bookCache) Save(ctx context.Context, b *book.Book) error {
	if err := c.Repository.Save(ctx, b); err != nil {
		return err
	}
	c.evict(ctx, key(b.ID))
	return nil
}

// Delete 删存储后删除缓存
func (c *bookCache) Delete(ctx context.Context, id int) error {
	if err := c.Repository.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, key(id))
	return nil
}

// DeleteAll 清空存储后按前缀清理缓存
func (c *bookCache) DeleteAll(ctx context.Context) error {
	if err := c.Repository.DeleteAll(ctx); err != nil {
		return err
	}

	err := c.breaker.Execute(func() error {
		iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		c.log.WithError(err).Warn("清理图书缓存失败")
	}
	return nil
}

// =========================================
// 辅助函数
// =========================================

func key(id int) string {
	return KeyPrefix + strconv.Itoa(id)
}

// get 读缓存,任何错误都按未命中处理
func (c *bookCache) get(ctx context.Context, id int) (*book.Book, bool) {
	var data []byte
	err := c.breaker.Execute(func() error {
		var err error
		data, err = c.client.Get(ctx, key(id)).Bytes()
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		c.record("miss")
		return nil, false
	case errors.Is(err, circuitbreaker.ErrOpenState):
		c.record("rejected")
		return nil, false
	default:
		c.record("error")
		c.log.WithError(err).WithField("book_id", id).Warn("读取图书缓存失败")
		return nil, false
	}

	b, err := decode(data)
	if err != nil {
		c.record("error")
		c.log.WithError(err).WithField("book_id", id).Warn("图书缓存数据损坏")
		c.evict(ctx, key(id))
		return nil, false
	}

	c.record("hit")
	return b, true
}

func (c *bookCache) set(ctx context.Context, b *book.Book) {
	data, err := encode(b)
	if err != nil {
		return
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key(b.ID), data, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		c.log.WithError(err).WithField("book_id", b.ID).Warn("写入图书缓存失败")
	}
}

func (c *bookCache) evict(ctx context.Context, keys ...string) {
	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		c.log.WithError(err).WithField("keys", keys).Warn("删除图书缓存失败")
	}
}

func (c *bookCache) record(result string) {
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": result})
}

func encode(b *book.Book) ([]byte, error) {
	return json.Marshal(cachedBook{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Content:     b.Content,
		ReleaseDate: b.ReleaseDate.String(),
	})
}

func decode(data []byte) (*book.Book, error) {
	var cb cachedBook
	if err := json.Unmarshal(data, &cb); err != nil {
		return nil, err
	}

	b := &book.Book{
		ID:      cb.ID,
		Title:   cb.Title,
		Author:  cb.Author,
		Content: cb.Content,
	}
	if cb.ReleaseDate != "" {
		d, err := book.ParseDate(cb.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("缓存中的出版日期非法: %w", err)
		}
		b.ReleaseDate = d
	}
	return b, nil
}
