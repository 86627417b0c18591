package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/core/auth"
	resp "car-lease-service/internal/transport/http/response"
)

// AuthJWT 校验 Bearer 令牌，requireRole 非空时额外要求角色匹配。
// 校验通过后把 uid/role 写入 gin 上下文。
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Failure("missing token", nil))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Failure("invalid token", nil))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Failure("forbidden", nil))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
