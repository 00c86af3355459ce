package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/config"
	"github.com/hach2pro/app-letp/internal/api/handler"
	"github.com/hach2pro/app-letp/internal/api/middleware"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/metrics"
	"github.com/hach2pro/app-letp/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎。rdb 为 nil 时不启用会话黑名单与登录限流。
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	var (
		revoked middleware.RevocationChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		revoked, limiter = rdb, rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(m.Middleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": cfg.Storage.Driver})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 登录（无需认证，按 IP 限流）
		v1.POST("/auth/login",
			middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
			h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, revoked))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password",
				middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
				h.Auth.ChangePassword)

			authorized.GET("/overview", h.Stats.Overview)

			// 课表
			authorized.GET("/schedule", h.Schedule.ByDay)
			authorized.GET("/schedule/teachers", h.Schedule.ByTeacher)

			// 名单与教师（修改需再次输入密码）
			authorized.GET("/students", h.Roster.List)
			authorized.PUT("/students", h.Roster.Replace)
			authorized.GET("/teachers", h.Teacher.List)
			authorized.PUT("/teachers/:subject", h.Teacher.Update)

			// 考勤
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/students/:student", h.Attendance.StudentSheet)
				attendance.POST("/reset", h.Attendance.ResetWeek)
				attendance.POST("/sync", h.Attendance.SyncWeek)
				attendance.GET("/:day/:subject", h.Attendance.GetSession)
				attendance.PUT("/:day/:subject", h.Attendance.RecordSession)
				attendance.PUT("/:day/:subject/:student", h.Attendance.SetMark)
			}

			// 统计
			stats := authorized.Group("/stats")
			{
				stats.GET("/students", h.Stats.Students)
				stats.GET("/subjects", h.Stats.Subjects)
				stats.GET("/teachers", h.Stats.Teachers)
			}

			// 导出
			export := authorized.Group("/export")
			{
				export.GET("/stats", h.Export.ExportStats)
				export.GET("/schedule.ics", h.Export.ExportSchedule)
			}
		}
	}

	return r
}
