package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/internal/service"
	"github.com/hach2pro/app-letp/pkg/response"
)

// TeacherHandler 教师目录 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// List GET /api/v1/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	response.OK(c, h.teacherSvc.List(c.Request.Context()))
}

// Update PUT /api/v1/teachers/:subject
func (h *TeacherHandler) Update(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	result, err := h.teacherSvc.Update(c.Request.Context(), c.Param("subject"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}
	response.OK(c, result)
}
