package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
)

const keyIdentity = "identity"

// Identity 解析 Authorization: Bearer <token> 并把身份放进上下文。
// 这里绝不 Abort：没带 token、token 坏了、用户没了，统统匿名放行，
// 是否拒绝匿名由路由层的 RequireUser / RequireRole 决定。
func Identity(resolver *service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if strings.HasPrefix(ah, "Bearer ") {
			if id := resolver.Resolve(c.Request.Context(), strings.TrimPrefix(ah, "Bearer ")); id != nil {
				c.Set(keyIdentity, id)
			}
		}
		c.Next()
	}
}

// IdentityFrom 取当前请求身份；匿名返回 (nil, false)
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*domain.Identity)
	return id, ok && id != nil
}
