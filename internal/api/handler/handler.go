package handler

import "github.com/hach2pro/app-letp/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Attendance *AttendanceHandler
	Roster     *RosterHandler
	Teacher    *TeacherHandler
	Stats      *StatsHandler
	Schedule   *ScheduleHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Roster:     NewRosterHandler(svc.Roster),
		Teacher:    NewTeacherHandler(svc.Teacher),
		Stats:      NewStatsHandler(svc.Stats),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Export:     NewExportHandler(svc.Export, svc.Schedule),
	}
}
