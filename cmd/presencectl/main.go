// presencectl 考勤数据的离线管理工具：查看统计、导出文件、补齐名单、重置管理密码。
// 与 HTTP 服务共用配置与存储；请勿在服务运行期间对同一文件存储执行写命令。
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/config"
	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/bootstrap"
	"github.com/hach2pro/app-letp/internal/service"
	applogger "github.com/hach2pro/app-letp/pkg/logger"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

const appName = "presencectl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env 一次命令执行所需的依赖
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *service.Store
	svc    *service.Service
	close  func()
}

type options struct {
	configPath string
	week       string
	now        func() time.Time
}

func rootCmd() *cobra.Command {
	opts := &options{now: time.Now}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "考勤数据管理工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "配置文件路径")
	cmd.PersistentFlags().StringVarP(&opts.week, "week", "w", "", "周标识 YYYY-MM-DD（周一），默认本周")

	cmd.AddCommand(
		statsCmd(opts),
		exportCmd(opts),
		syncWeekCmd(opts),
		resetPasswordCmd(opts),
	)
	return cmd
}

// resolveWeek 解析 --week，缺省为当前周
func (o *options) resolveWeek() (string, error) {
	if o.week == "" {
		return attendance.WeekKey(o.now()), nil
	}
	return attendance.ParseWeekKey(o.week)
}

// open 加载配置、日志与考勤文档
func (o *options) open(ctx context.Context) (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	logger = logger.With(zap.String("cmd", appName))

	repo, closeRepo, err := bootstrap.OpenRepository(cfg, logger)
	if err != nil {
		return nil, err
	}
	store, err := bootstrap.OpenStore(ctx, cfg, repo, metrics.New(), logger)
	if err != nil {
		closeRepo()
		return nil, err
	}

	// 命令行不签发令牌，不需要 JWT 与黑名单
	return &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		svc:    service.NewService(store, nil, nil, nil, logger),
		close: func() {
			closeRepo()
			_ = logger.Sync()
		},
	}, nil
}
