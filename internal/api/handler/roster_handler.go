package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/response"
)

// RosterHandler 学生名单 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// List GET /api/v1/students
func (h *RosterHandler) List(c *gin.Context) {
	response.OK(c, h.rosterSvc.List(c.Request.Context()))
}

// Replace PUT /api/v1/students
func (h *RosterHandler) Replace(c *gin.Context) {
	var req dto.ReplaceRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	names, err := h.rosterSvc.Replace(c.Request.Context(), &req)
	if err != nil {
		writeError(c, 13000, err)
		return
	}
	response.OK(c, names)
}
