package sqlite

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

func newTestRepository(t *testing.T) book.Repository {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := NewDB(config.Default(), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewBookRepository(db)
	ctx := context.Background()
	for _, b := range book.SampleBooks() {
		require.NoError(t, repo.Save(ctx, b))
	}
	return repo
}

func bookIDs(books []*book.Book) []int {
	result := make([]int, 0, len(books))
	for _, b := range books {
		result = append(result, b.ID)
	}
	return result
}

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	found, err := repo.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "The Godfather", found.Title)
	assert.Equal(t, book.NewDate(1969, time.March, 10), found.ReleaseDate)

	_, err = repo.FindByID(ctx, 0)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	exists, err := repo.ExistsByID(ctx, 8)
	require.NoError(t, err)
	assert.True(t, exists)

	maxID, err := repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, maxID)

	require.NoError(t, repo.Delete(ctx, 8))
	assert.ErrorIs(t, repo.Delete(ctx, 8), book.ErrBookNotFound)

	maxID, err = repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, maxID)

	require.NoError(t, repo.DeleteAll(ctx))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	maxID, err = repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxID)
}

func TestBookRepository_SaveReplacesIndex(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	// 替换内容后旧词不能再命中
	require.NoError(t, repo.Save(ctx, &book.Book{ID: 1, Title: "Star Wars", Author: "George Lucas", Content: "Droids."}))

	books, err := repo.FindByContentContains(ctx, "force", book.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = repo.FindByContentContains(ctx, "droids", book.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, bookIDs(books))

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found.ReleaseDate.IsZero())
}

func TestBookRepository_FindByTitleLike(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	books, err := repo.FindByTitleLike(ctx, "godf")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Godfather", books[0].Title)

	books, err = repo.FindByTitleLike(ctx, "THE")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7, 8}, bookIDs(books))

	books, err = repo.FindByTitleLike(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_FindByAuthorLike(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	books, err := repo.FindByAuthorLike(ctx, "J")
	require.NoError(t, err)
	// 按作者排序:J. K. Rowling < J. R. R. Tolkien < John Grisham
	assert.Equal(t, []int{3, 2, 5}, bookIDs(books))

	books, err = repo.FindByAuthorLike(ctx, "george")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_FindByContentContains(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	books, err := repo.FindByContentContains(ctx, "force", book.PageRequest{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Star Wars: From the Adventures of Luke Skywalker", books[0].Title)

	books, err = repo.FindByContentContains(ctx, "MAGIC", book.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, bookIDs(books))

	// 标题中的词不参与内容检索
	books, err = repo.FindByContentContains(ctx, "godfather", book.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, books)

	// FTS5语法字符按普通文本处理
	books, err = repo.FindByContentContains(ctx, `park" OR "mafia`, book.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_PageRequest(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	extra := &book.Book{ID: 9, Title: "Matilda", Author: "Roald Dahl", Content: "Magic. School.", ReleaseDate: book.NewDate(1988, time.October, 1)}
	require.NoError(t, repo.Save(ctx, extra))

	books, err := repo.FindByAuthor(ctx, "Roald Dahl", book.NewPageRequest(0, "releaseDate", "DESC"))
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8}, bookIDs(books))

	books, err = repo.FindByAuthor(ctx, "Roald Dahl", book.NewPageRequest(1, "releaseDate", "ASC"))
	require.NoError(t, err)
	assert.Equal(t, []int{8}, bookIDs(books))

	books, err = repo.FindByContentContains(ctx, "magic", book.NewPageRequest(0, "title", "ASC"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 9}, bookIDs(books))

	books, err = repo.FindByReleaseDate(ctx, book.NewDate(1964, time.January, 17), book.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{8}, bookIDs(books))

	books, err = repo.FindByAuthor(ctx, "Roald", book.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestTxManager_Rollback(t *testing.T) {
	ctx := context.Background()

	log := logrus.New()
	log.SetOutput(io.Discard)
	db, err := NewDB(config.Default(), log)
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookRepository(db)
	txm := NewTxManager(db)
	require.NoError(t, repo.Save(ctx, book.SampleBooks()[0]))

	errBoom := errors.New("boom")
	err = txm.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, bookIDs(all))

	err = txm.Transaction(ctx, func(ctx context.Context) error {
		return repo.DeleteAll(ctx)
	})
	require.NoError(t, err)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
