package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/response"
)

// StatsHandler 统计 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Overview GET /api/v1/overview
func (h *StatsHandler) Overview(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	response.OK(c, h.statsSvc.Overview(c.Request.Context(), week))
}

// Students GET /api/v1/stats/students
func (h *StatsHandler) Students(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.statsSvc.Students(c.Request.Context(), week)
	if err != nil {
		writeError(c, 15000, err)
		return
	}
	response.OK(c, result)
}

// Subjects GET /api/v1/stats/subjects
func (h *StatsHandler) Subjects(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.statsSvc.Subjects(c.Request.Context(), week)
	if err != nil {
		writeError(c, 15000, err)
		return
	}
	response.OK(c, result)
}

// Teachers GET /api/v1/stats/teachers
func (h *StatsHandler) Teachers(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	result, err := h.statsSvc.Teachers(c.Request.Context(), week)
	if err != nil {
		writeError(c, 15000, err)
		return
	}
	response.OK(c, result)
}
