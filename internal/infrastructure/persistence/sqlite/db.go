package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 打开内嵌SQLite并建表
// 设计说明：
// 1. 默认使用:memory:,进程退出数据即丢失(启动时由灌数重新写入)
// 2. 连接池固定为1个连接:内存库每个连接是独立的数据库,同时也串行化了所有读写
// 3. 文件库开启WAL
func NewDB(cfg *config.Config, log *logrus.Logger) (*sql.DB, error) {
	path := cfg.SQLite.Path
	if cfg.SQLite.InMemory() {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开SQLite失败: %w", err)
	}
	db.SetMaxOpenConns(1)
	// 内存库在最后一个连接关闭时被释放,空闲连接不能过期
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if !cfg.SQLite.InMemory() {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("开启WAL失败: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}

	log.WithField("path", path).Info("✓ SQLite存储已就绪")
	return db, nil
}

// migrate 建表
// books_fts是外部内容表(external content),只保存倒排索引,原文仍在books表
// 三个触发器保证books的增删改同步到全文索引
func migrate(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS books (
		id           INTEGER PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		author       TEXT NOT NULL DEFAULT '',
		body         TEXT NOT NULL DEFAULT '',
		release_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_books_author ON books(author);
	CREATE INDEX IF NOT EXISTS idx_books_release_date ON books(release_date);

	CREATE VIRTUAL TABLE IF NOT EXISTS books_fts USING fts5(
		title,
		body,
		content=books,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS books_ai AFTER INSERT ON books BEGIN
		INSERT INTO books_fts(rowid, title, body)
		VALUES (new.id, new.title, new.body);
	END;

	CREATE TRIGGER IF NOT EXISTS books_ad AFTER DELETE ON books BEGIN
		INSERT INTO books_fts(books_fts, rowid, title, body)
		VALUES ('delete', old.id, old.title, old.body);
	END;

	CREATE TRIGGER IF NOT EXISTS books_au AFTER UPDATE ON books BEGIN
		INSERT INTO books_fts(books_fts, rowid, title, body)
		VALUES ('delete', old.id, old.title, old.body);
		INSERT INTO books_fts(rowid, title, body)
		VALUES (new.id, new.title, new.body);
	END;
	`

	_, err := db.Exec(schema)
	return err
}
