// Package rdb 关系型数据库存储(MySQL / PostgreSQL),基于GORM
package rdb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按database.driver选择MySQL或PostgreSQL方言
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 表结构默认由cmd/migrate(goose)管理，database.auto_migrate=true时才AutoMigrate
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := Open(dialector, logLevel)
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
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("AutoMigrate完成")
	}
	return db, nil
}

// Dialector 根据驱动名创建GORM方言
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("rdb不支持的数据库驱动: %q", cfg.Driver)
	}
}

// Open 使用给定方言打开连接(测试中传入sqlmock连接)
// TranslateError开启后，两种方言的唯一索引冲突都会转换为gorm.ErrDuplicatedKey
func Open(dialector gorm.Dialector, logLevel logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		TranslateError:         true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
}

// mysqlTitleCollationSQL 书名列改为二进制排序，与迁移脚本一致（"dune"和"Dune"是两本书）
const mysqlTitleCollationSQL = "ALTER TABLE `books` MODIFY `title` VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// AutoMigrate 自动迁移表结构(开发环境)
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserModel{}, &BookModel{}); err != nil {
		return err
	}
	return alignTitleCollation(db)
}

// alignTitleCollation MySQL默认排序规则不区分大小写，唯一索引需要二进制排序
// PostgreSQL默认区分大小写，不需要处理
func alignTitleCollation(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	if err := db.Exec(mysqlTitleCollationSQL).Error; err != nil {
		return fmt.Errorf("设置书名排序规则失败: %w", err)
	}
	return nil
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null"`
	Password  string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:20;not null;default:USER"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用decimal(10,2)存储,shopspring/decimal实现了Scanner/Valuer
// 2. 书名有唯一索引且区分大小写:迁移脚本和AutoMigrate在MySQL上都使用utf8mb4_bin
// 3. 物理删除,不使用软删除(删除后同名图书可以重新创建)
type BookModel struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"uniqueIndex;size:255;not null"`
	Author    string          `gorm:"index;size:255;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
