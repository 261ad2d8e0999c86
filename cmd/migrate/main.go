// migrate 数据库迁移工具（goose，脚本内嵌在二进制中）
//
// 用法：
//
//	go run ./cmd/migrate -command up
//	go run ./cmd/migrate -command down
//	go run ./cmd/migrate -command status
//	go run ./cmd/migrate -command version
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/db/migrations"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

func main() {
	var (
		command    = flag.String("command", "up", "迁移命令：up, down, status, version")
		configPath = flag.String("config", "", "配置文件路径（默认查找config/config.yaml）")
	)
	flag.Parse()

	if err := run(*command, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}
}

func run(command, configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("内存存储不需要迁移")
	}

	log := logger.MustNew(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = log.Sync() }()

	// 表结构完全由迁移脚本管理
	cfg.Database.AutoMigrate = false
	db, err := rdb.NewDB(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrate(sqlDB, cfg.Database.Driver, command); err != nil {
		return err
	}
	log.Info("迁移完成", zap.String("command", command), zap.String("driver", cfg.Database.Driver))
	return nil
}

// migrate 执行goose命令，迁移目录名即方言名
func migrate(db *sql.DB, dialect, command string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, dialect)
	case "down":
		return goose.Down(db, dialect)
	case "status":
		return goose.Status(db, dialect)
	case "version":
		return goose.Version(db, dialect)
	default:
		return fmt.Errorf("未知命令: %s（可选：up, down, status, version）", command)
	}
}
