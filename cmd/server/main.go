package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/config"
	"github.com/hach2pro/app-letp/internal/api/handler"
	"github.com/hach2pro/app-letp/internal/api/router"
	"github.com/hach2pro/app-letp/internal/bootstrap"
	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/jwt"
	applogger "github.com/hach2pro/app-letp/pkg/logger"
	"github.com/hach2pro/app-letp/pkg/metrics"
	"github.com/hach2pro/app-letp/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 打开文档存储（file 或 postgres + 迁移）
	repo, closeRepo, err := bootstrap.OpenRepository(cfg, logger)
	if err != nil {
		logger.Fatal("打开存储失败", zap.Error(err))
	}
	defer closeRepo()

	// 4. 连接 Redis（可选：未配置或连接失败时降级运行）
	var (
		rdb       *redis.Client
		blacklist service.TokenBlacklist
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，会话注销与登录限流将不可用", zap.Error(err))
			rdb = nil
		} else {
			blacklist = rdb
		}
	}

	// 5. 初始化 JWT 管理器与指标
	jwtMgr := jwt.NewManager(&cfg.Auth)
	m := metrics.New()

	// 6. 加载考勤文档
	store, err := bootstrap.OpenStore(context.Background(), cfg, repo, m, logger)
	if err != nil {
		logger.Fatal("加载考勤数据失败", zap.Error(err))
	}

	// 7. 依赖注入: Store → Service → Handler
	svc := service.NewService(store, jwtMgr, blacklist, m, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, m, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
