// Package bootstrap 组装存储与考勤状态，供 HTTP 服务与命令行工具共用。
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/config"
	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/repository"
	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/database"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// OpenRepository 按 storage.driver 打开文档存储。
// 返回的 closeFn 释放数据库连接（file 驱动为空操作）。
func OpenRepository(cfg *config.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewDB(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return repository.NewRepository(db), func() { sqlDB.Close() }, nil
	default:
		logger.Info("使用本地文件存储", zap.String("path", cfg.Storage.Path))
		return repository.NewFileRepository(cfg.Storage.Path), func() {}, nil
	}
}

// OpenStore 加载考勤文档并创建 Store
func OpenStore(
	ctx context.Context,
	cfg *config.Config,
	repo *repository.Repository,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*service.Store, error) {
	hasher := service.NewHasher(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	return service.NewStore(ctx, repo.Document, attendance.DefaultCatalog(), hasher, m, logger)
}
