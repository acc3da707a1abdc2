package mysql

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// slowQueryThreshold 超过该耗时的SQL记为慢查询
const slowQueryThreshold = 200 * time.Millisecond

// NewDB 打开MySQL并迁移books表(storage.driver=mysql时使用)
// 设计说明：
// 1. GORM日志写入logrus,debug模式输出全部SQL,其余模式只输出慢查询和错误
// 2. 启动时Ping失败直接返回错误,不带着坏连接启动
// 3. AutoMigrate只负责books表,迁移工具不在本服务范围内
func NewDB(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: newGormLogger(cfg.Server.Mode, log),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := db.AutoMigrate(&BookModel{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("books表迁移失败: %w", err)
	}

	log.WithFields(logrus.Fields{
		"host":   cfg.Database.Host,
		"dbname": cfg.Database.DBName,
	}).Info("✓ MySQL存储已就绪")
	return db, nil
}

// newGormLogger GORM日志适配到logrus(*logrus.Logger实现了Printf)
func newGormLogger(mode string, log *logrus.Logger) logger.Interface {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// BookModel GORM图书模型
// 设计说明:
// 1. ID由领域服务分配,不使用自增
// 2. 出版日期存YYYY-MM-DD字符串:DATE列经过驱动的时区换算后可能差一天
// 3. 物理删除,删除后ID可以被"最大ID+1"重新分配
type BookModel struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false"`
	Title       string    `gorm:"size:255;not null;default:'';comment:书名"`
	Author      string    `gorm:"index;size:255;not null;default:'';comment:作者"`
	Content     string    `gorm:"type:text;comment:内容摘要"`
	ReleaseDate string    `gorm:"index;size:10;not null;default:'';comment:出版日期(YYYY-MM-DD)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
