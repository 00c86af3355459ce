package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/response"
)

// ScheduleHandler 课表 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ByDay 按工作日的课表
// GET /api/v1/schedule
func (h *ScheduleHandler) ByDay(c *gin.Context) {
	response.OK(c, h.scheduleSvc.ByDay(c.Request.Context()))
}

// ByTeacher 按教师归并的课表
// GET /api/v1/schedule/teachers
func (h *ScheduleHandler) ByTeacher(c *gin.Context) {
	response.OK(c, h.scheduleSvc.ByTeacher(c.Request.Context()))
}
