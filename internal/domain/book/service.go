package book

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装ID生成、存在性校验、组合检索等业务规则
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBook 根据ID获取图书,不存在返回ErrBookNotFound
	GetBook(ctx context.Context, id int) (*Book, error)

	// CreateBook 新增图书
	// 业务规则:
	// - 调用方不能指定ID
	// - 新ID = 当前最大ID + 1(空库为1)
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// ReplaceBook 整体替换图书(ID来自路径)
	ReplaceBook(ctx context.Context, id int, b *Book) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id int) error

	// VerifyExists 校验图书存在,不存在返回ErrBookNotFound
	VerifyExists(ctx context.Context, id int) error

	// FindByTitle 标题模糊检索
	FindByTitle(ctx context.Context, title string) ([]*Book, error)

	// FindByAuthor 作者前缀检索
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)

	// FindByWord 内容关键词检索(最多WordSearchLimit条)
	FindByWord(ctx context.Context, word string) ([]*Book, error)

	// Search 组合检索(日期/作者/内容)
	Search(ctx context.Context, q Query) ([]*Book, error)

	// Reset 清空存储并写入给定图书(启动灌数)
	Reset(ctx context.Context, books []*Book) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   TxManager

	// idMu 串行化"取最大ID+1再保存",避免同一进程内并发创建拿到相同ID
	// 多实例共享MySQL时仍可能冲突(已知限制)
	idMu sync.Mutex
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id int) (*Book, error) {
	if err := s.VerifyExists(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. 请求体校验
	if b == nil {
		return nil, ErrEmptyPayload
	}
	if b.IsPersisted() {
		return nil, ErrIDMustBeGenerated
	}

	s.idMu.Lock()
	defer s.idMu.Unlock()

	// 2. 生成ID
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	// 3. 持久化
	created := b.Clone()
	created.ID = id
	if err := s.repo.Save(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}

// ReplaceBook 整体替换图书
func (s *service) ReplaceBook(ctx context.Context, id int, b *Book) (*Book, error) {
	// 1. 先校验存在性(与删除、查询保持一致:不存在时优先返回404)
	if err := s.VerifyExists(ctx, id); err != nil {
		return nil, err
	}

	// 2. 请求体校验
	if b == nil {
		return nil, ErrEmptyPayload
	}
	if b.IsPersisted() {
		return nil, ErrIDMustBeGenerated
	}

	// 3. 替换字段,ID以路径为准
	updated := &Book{ID: id}
	updated.ReplaceWith(b)

	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id int) error {
	if err := s.VerifyExists(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// VerifyExists 校验图书存在
func (s *service) VerifyExists(ctx context.Context, id int) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.Withf(ErrBookNotFound, "图书不存在: id=%d", id)
	}
	return nil
}

// FindByTitle 标题模糊检索
func (s *service) FindByTitle(ctx context.Context, title string) ([]*Book, error) {
	return s.repo.FindByTitleLike(ctx, title)
}

// FindByAuthor 作者前缀检索
func (s *service) FindByAuthor(ctx context.Context, author string) ([]*Book, error) {
	return s.repo.FindByAuthorLike(ctx, author)
}

// FindByWord 内容关键词检索
func (s *service) FindByWord(ctx context.Context, word string) ([]*Book, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return []*Book{}, nil
	}
	return s.repo.FindByContentContains(ctx, word, PageRequest{Limit: WordSearchLimit}.Normalize())
}

// Search 组合检索
func (s *service) Search(ctx context.Context, q Query) ([]*Book, error) {
	return searchByExample(ctx, s.repo, q)
}

// Reset 清空存储并写入给定图书(同一事务内执行,失败时保留原数据)
func (s *service) Reset(ctx context.Context, books []*Book) error {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, b := range books {
			if err := s.repo.Save(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
}

// =========================================
// 辅助函数:ID生成
// =========================================

// nextID 当前最大ID+1,空库返回1
// 调用方必须持有idMu
func (s *service) nextID(ctx context.Context) (int, error) {
	maxID, err := s.repo.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
