package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/response"
)

// RequireUser 拒绝匿名和被禁用的账号
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.Enabled {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}
		c.Next()
	}
}

// RequireRole 在 RequireUser 的基础上限定角色
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.Enabled {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Next()
	}
}
