package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/response"
)

// AttendanceHandler 考勤记录 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetSession 某节课的考勤表
// GET /api/v1/attendance/:day/:subject?week=
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.GetSession(c.Request.Context(), week, c.Param("day"), c.Param("subject"))
	if err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, result)
}

// RecordSession 记录一整节课
// PUT /api/v1/attendance/:day/:subject
func (h *AttendanceHandler) RecordSession(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	var req dto.RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.RecordSession(c.Request.Context(), week, c.Param("day"), c.Param("subject"), req.Present)
	if err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, result)
}

// SetMark 修改单个学生的标记
// PUT /api/v1/attendance/:day/:subject/:student
func (h *AttendanceHandler) SetMark(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	var req dto.SetMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.attendanceSvc.SetMark(c.Request.Context(), week, c.Param("day"), c.Param("subject"), c.Param("student"), req.Mark)
	if err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, nil)
}

// StudentSheet 某学生本周全部课程的标记
// GET /api/v1/attendance/students/:student?week=
func (h *AttendanceHandler) StudentSheet(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.StudentSheet(c.Request.Context(), week, c.Param("student"))
	if err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, result)
}

// ResetWeek 清空并重新初始化本周
// POST /api/v1/attendance/reset
func (h *AttendanceHandler) ResetWeek(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	var req dto.ResetWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if err := h.attendanceSvc.ResetWeek(c.Request.Context(), week, req.Confirmation); err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, nil)
}

// SyncWeek 把名单新增学生补进本周
// POST /api/v1/attendance/sync
func (h *AttendanceHandler) SyncWeek(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.SyncWeek(c.Request.Context(), week)
	if err != nil {
		writeError(c, 12000, err)
		return
	}
	response.OK(c, result)
}
