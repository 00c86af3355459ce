package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/internal/service"
	pkgerrors "github.com/hach2pro/app-letp/pkg/errors"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/response"
)

// 上下文键，由 middleware.JWTAuth 注入
const (
	CtxClaims  = "claims"
	CtxWeekKey = "week_key"
)

// MustGetClaims 从 Gin 上下文中提取会话声明。
// 中间件未注入时写入 401，调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// MustGetWeek 解析本次请求的考勤周：?week= 优先，否则使用会话周
func MustGetWeek(c *gin.Context) (string, bool) {
	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数错误: "+err.Error())
		return "", false
	}
	if q.Week != "" {
		week, err := attendance.ParseWeekKey(q.Week)
		if err != nil {
			response.BadRequest(c, 10001, "week 参数格式应为 YYYY-MM-DD")
			return "", false
		}
		return week, true
	}
	v, exists := c.Get(CtxWeekKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	week, ok := v.(string)
	if !ok || week == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return week, true
}

// writeError 将领域错误映射为统一响应。
// base 为模块业务码前缀，如 12000：校验 +1，密码 +2，未初始化 +3，保存失败 +4。
func writeError(c *gin.Context, base int, err error) {
	var verr *attendance.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, base+1, "参数校验失败", verr)
	case errors.Is(err, attendance.ErrValidation):
		response.BadRequest(c, base+1, "参数校验失败")
	case errors.Is(err, attendance.ErrAuth):
		response.Unauthorized(c, base+2, "密码错误")
	case errors.Is(err, attendance.ErrNotInitialized):
		response.NotFound(c, base+3, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, base+4, pkgerrors.ErrOptimisticLock.Error())
	case errors.Is(err, service.ErrPersist):
		response.Error(c, http.StatusInternalServerError, base+4, "保存考勤数据失败")
	default:
		response.InternalError(c)
	}
}
