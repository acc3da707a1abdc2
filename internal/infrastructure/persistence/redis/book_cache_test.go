package redis

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// stubRepository 只实现缓存装饰器会调用的方法,并记录调用次数
type stubRepository struct {
	book.Repository
	books       map[int]*book.Book
	findByIDHit int
}

func (r *stubRepository) FindByID(_ context.Context, id int) (*book.Book, error) {
	r.findByIDHit++
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b.Clone(), nil
}

func (r *stubRepository) ExistsByID(_ context.Context, id int) (bool, error) {
	_, ok := r.books[id]
	return ok, nil
}

func (r *stubRepository) Save(_ context.Context, b *book.Book) error {
	r.books[b.ID] = b.Clone()
	return nil
}

func (r *stubRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubRepository) DeleteAll(context.Context) error {
	r.books = make(map[int]*book.Book)
	return nil
}

// unreachableClient 指向不可达地址的客户端,模拟Redis宕机
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBookCache_DegradesWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := &stubRepository{books: map[int]*book.Book{}}
	for _, b := range book.SampleBooks() {
		repo.books[b.ID] = b
	}

	cache := NewBookCache(repo, unreachableClient(t), time.Minute, log)

	// Redis不可用时读写照常,结果来自存储
	b, err := cache.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "The Godfather", b.Title)

	_, err = cache.FindByID(ctx, 0)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	exists, err := cache.ExistsByID(ctx, 8)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Save(ctx, &book.Book{ID: 9, Title: "Matilda"}))
	require.NoError(t, cache.Delete(ctx, 9))
	assert.ErrorIs(t, cache.Delete(ctx, 9), book.ErrBookNotFound)
	require.NoError(t, cache.DeleteAll(ctx))
	assert.Empty(t, repo.books)

	// 连续失败后熔断器打开
	assert.Equal(t, circuitbreaker.StateOpen, cache.(*bookCache).breaker.State())
}

func TestBookCache_EncodeDecode(t *testing.T) {
	b := book.SampleBooks()[7]

	data, err := encode(b)
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, b, decoded)

	_, err = decode([]byte(`{"id":1,"releaseDate":"01/17/1964"}`))
	assert.Error(t, err)

	assert.Equal(t, "bookcatalog:book:8", key(8))
}
