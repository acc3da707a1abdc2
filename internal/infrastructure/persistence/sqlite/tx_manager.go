package sqlite

import (
	"context"
	"database/sql"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// dbtx *sql.DB与*sql.Tx的公共方法
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// TxManager 事务管理器
// 通过context传递*sql.Tx,Repository的conn方法会优先使用事务
// 注意:连接池只有1个连接,fn内不能绕过ctx直接访问db,否则会一直等待连接
type TxManager struct {
	db *sql.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务,fn返回error时回滚
// 已处于事务中时直接复用外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "开启事务失败")
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, "提交事务失败")
	}
	return nil
}
