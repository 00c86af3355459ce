package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/internal/api/handler"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/response"
)

// RevocationChecker 查询会话是否已登出
type RevocationChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth 会话认证中间件。
// 从 Authorization: Bearer <token> 中提取令牌，校验后把声明与会话周注入上下文。
// revoked 为 nil 时不检查黑名单。
func JWTAuth(jwtMgr *jwt.Manager, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "会话无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "令牌类型无效")
			c.Abort()
			return
		}

		if revoked != nil {
			// Redis 出错时放行，与限流降级策略一致
			if hit, err := revoked.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && hit {
				response.Unauthorized(c, 10002, "会话已登出")
				c.Abort()
				return
			}
		}

		c.Set(handler.CtxClaims, claims)
		c.Set(handler.CtxWeekKey, claims.WeekKey)

		c.Next()
	}
}
