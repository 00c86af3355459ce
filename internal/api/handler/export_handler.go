package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	scheduleSvc service.ScheduleService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, scheduleSvc service.ScheduleService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, scheduleSvc: scheduleSvc}
}

// ExportStats 导出本周统计
// GET /api/v1/export/stats?week=
func (h *ExportHandler) ExportStats(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ExportStats(c.Request.Context(), week)
	if err != nil {
		writeError(c, 16000, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportSchedule 导出本周课表日历
// GET /api/v1/export/schedule.ics?week=
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	week, ok := MustGetWeek(c)
	if !ok {
		return
	}
	data, filename, err := h.scheduleSvc.ExportICS(c.Request.Context(), week)
	if err != nil {
		writeError(c, 16000, err)
		return
	}
	attachment(c, filename, contentTypeICS, data)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}
