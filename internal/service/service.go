package service

import (
	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Attendance AttendanceService
	Roster     RosterService
	Teacher    TeacherService
	Stats      StatsService
	Schedule   ScheduleService
	Export     ExportService
}

// NewService 创建 Service 聚合；所有子服务共享同一个 Store
func NewService(
	store *Store,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(store, jwtMgr, blacklist, m, logger),
		Attendance: NewAttendanceService(store, m, logger),
		Roster:     NewRosterService(store, logger),
		Teacher:    NewTeacherService(store, logger),
		Stats:      NewStatsService(store),
		Schedule:   NewScheduleService(store),
		Export:     NewExportService(store, logger),
	}
}
