package book

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository 测试用内存仓储
// 只实现组合检索和ID生成需要的最小语义,排序统一按ID
type memoryRepository struct {
	mu    sync.Mutex
	books map[int]*Book
}

func newMemoryRepository(books ...*Book) *memoryRepository {
	r := &memoryRepository{books: make(map[int]*Book)}
	for _, b := range books {
		r.books[b.ID] = b.Clone()
	}
	return r
}

func (r *memoryRepository) Save(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b.Clone()
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	return b.Clone(), nil
}

func (r *memoryRepository) ExistsByID(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.books[id]
	return ok, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memoryRepository) FindAll(context.Context) ([]*Book, error) {
	return r.filter(func(*Book) bool { return true }, 0), nil
}

func (r *memoryRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = make(map[int]*Book)
	return nil
}

func (r *memoryRepository) MaxID(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxID := 0
	for id := range r.books {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (r *memoryRepository) FindByTitleLike(_ context.Context, title string) ([]*Book, error) {
	return r.filter(func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.Title), strings.ToLower(title))
	}, 0), nil
}

func (r *memoryRepository) FindByAuthorLike(_ context.Context, author string) ([]*Book, error) {
	return r.filter(func(b *Book) bool { return strings.HasPrefix(b.Author, author) }, 0), nil
}

func (r *memoryRepository) FindByContentContains(_ context.Context, word string, page PageRequest) ([]*Book, error) {
	word = strings.ToLower(word)
	return r.filter(func(b *Book) bool {
		for _, token := range strings.FieldsFunc(strings.ToLower(b.Content), func(c rune) bool {
			return c == ' ' || c == '.'
		}) {
			if token == word {
				return true
			}
		}
		return false
	}, page.Limit), nil
}

func (r *memoryRepository) FindByAuthor(_ context.Context, author string, page PageRequest) ([]*Book, error) {
	return r.filter(func(b *Book) bool { return b.Author == author }, page.Limit), nil
}

func (r *memoryRepository) FindByReleaseDate(_ context.Context, date Date, page PageRequest) ([]*Book, error) {
	return r.filter(func(b *Book) bool { return b.ReleaseDate == date }, page.Limit), nil
}

func (r *memoryRepository) filter(match func(*Book) bool, limit int) []*Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*Book, 0)
	for _, b := range r.books {
		if match(b) {
			result = append(result, b.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// passthroughTx 测试用事务管理器,直接执行fn
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(books ...*Book) Service {
	return NewService(newMemoryRepository(books...), passthroughTx{})
}

func ids(books []*Book) []int {
	result := make([]int, 0, len(books))
	for _, b := range books {
		result = append(result, b.ID)
	}
	return result
}

func TestService_CreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("空库第一本ID为1", func(t *testing.T) {
		svc := newTestService()

		created, err := svc.CreateBook(ctx, NewBook("t", "a", "c", NewDate(2001, time.January, 1)))
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
	})

	t.Run("新ID为最大ID加1", func(t *testing.T) {
		svc := newTestService(SampleBooks()...)

		created, err := svc.CreateBook(ctx, NewBook("t", "a", "c", Date{}))
		require.NoError(t, err)
		assert.Equal(t, 9, created.ID)

		stored, err := svc.GetBook(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, "t", stored.Title)
	})

	t.Run("客户端指定ID", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.CreateBook(ctx, &Book{ID: 3, Title: "t"})
		assert.ErrorIs(t, err, ErrIDMustBeGenerated)
	})

	t.Run("空请求体", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.CreateBook(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyPayload)
	})

	t.Run("并发创建ID不重复", func(t *testing.T) {
		svc := newTestService()

		const n = 20
		var wg sync.WaitGroup
		created := make(chan int, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b, err := svc.CreateBook(ctx, NewBook("t", "a", "c", Date{}))
				if err == nil {
					created <- b.ID
				}
			}()
		}
		wg.Wait()
		close(created)

		seen := make(map[int]bool)
		for id := range created {
			assert.False(t, seen[id], "重复ID: %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})
}

func TestService_ReplaceBook(t *testing.T) {
	ctx := context.Background()

	t.Run("不存在时优先返回404", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.ReplaceBook(ctx, 0, nil)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("整体替换保留路径ID", func(t *testing.T) {
		svc := newTestService(SampleBooks()...)

		updated, err := svc.ReplaceBook(ctx, 4, NewBook("New", "Someone", "", Date{}))
		require.NoError(t, err)
		assert.Equal(t, 4, updated.ID)

		stored, err := svc.GetBook(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, "New", stored.Title)
		assert.Equal(t, "Someone", stored.Author)
		assert.True(t, stored.ReleaseDate.IsZero())
	})

	t.Run("请求体带ID", func(t *testing.T) {
		svc := newTestService(SampleBooks()...)

		_, err := svc.ReplaceBook(ctx, 4, &Book{ID: 4})
		assert.ErrorIs(t, err, ErrIDMustBeGenerated)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(SampleBooks()...)

	require.NoError(t, svc.DeleteBook(ctx, 1))

	_, err := svc.GetBook(ctx, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.ErrorIs(t, svc.DeleteBook(ctx, 1), ErrBookNotFound)
}

func TestService_FindByWord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(SampleBooks()...)

	books, err := svc.FindByWord(ctx, "force")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(books))

	books, err = svc.FindByWord(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	extra := &Book{ID: 9, Title: "Matilda", Author: "Roald Dahl", Content: "Magic. School.", ReleaseDate: NewDate(1988, time.October, 1)}
	svc := newTestService(append(SampleBooks(), extra)...)

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{
			name:  "无条件返回空",
			query: Query{},
			want:  []int{},
		},
		{
			name:  "仅作者",
			query: Query{Author: "Roald Dahl"},
			want:  []int{8, 9},
		},
		{
			name:  "日期和作者求交",
			query: Query{ReleaseDate: NewDate(1964, time.January, 17), Author: "Roald Dahl"},
			want:  []int{8},
		},
		{
			name:  "日期和作者不匹配",
			query: Query{ReleaseDate: NewDate(1954, time.July, 29), Author: "Roald Dahl"},
			want:  []int{},
		},
		{
			name:  "日期加内容时内容结果覆盖",
			query: Query{ReleaseDate: NewDate(1954, time.July, 29), Content: "magic"},
			want:  []int{3, 9},
		},
		{
			name:  "作者加内容时内容结果覆盖",
			query: Query{Author: "Mario Puzo", Content: "magic"},
			want:  []int{3, 9},
		},
		{
			name:  "三个条件同时设置才三者求交",
			query: Query{ReleaseDate: NewDate(1988, time.October, 1), Author: "Roald Dahl", Content: "magic"},
			want:  []int{9},
		},
		{
			name:  "分页作用于每次检索",
			query: Query{Author: "Roald Dahl", Page: PageRequest{Limit: 1}},
			want:  []int{8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := svc.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(books))
		})
	}
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&Book{ID: 42, Title: "old"})

	require.NoError(t, svc.Reset(ctx, SampleBooks()))

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(books))
}

func TestSearch_Distinct(t *testing.T) {
	b := &Book{ID: 1}
	assert.Equal(t, []int{1, 2}, ids(distinct([]*Book{b, {ID: 2}, b})))
}

func TestNewPageRequest(t *testing.T) {
	p := NewPageRequest(0, "unknown", "sideways")
	assert.Equal(t, PageRequest{Limit: DefaultMaxResults, OrderBy: SortByID, Direction: ASC}, p)

	p = NewPageRequest(5, "releaseDate", "desc")
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, SortByReleaseDate, p.OrderBy)
	assert.True(t, p.Descending())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1964-01-17")
	require.NoError(t, err)
	assert.Equal(t, NewDate(1964, time.January, 17), d)
	assert.Equal(t, "1964-01-17", d.String())

	_, err = ParseDate("17/01/1964")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrBookNotFound))
	assert.Equal(t, "", Date{}.String())
}
