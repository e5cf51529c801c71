package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	"github.com/JuanAndresGH-hub/marketplace/internal/transport/http/handler"
	mdw "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/middleware"
)

// NewAPIEngine 用户端引擎：/auth 公开、商品公开只读、/cart 要登录
func NewAPIEngine(
	l *zap.Logger,
	resolver *service.IdentityResolver,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(20, 40),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 身份解析对整个 /api/v1 生效；解析失败只会降级为匿名，不拦截
	api.Use(mdw.Identity(resolver))

	// 注册表里的模块（商品目录等）
	MountAllAPI(api)

	// 认证接口（公开）
	authH.Mount(api)

	// 购物车（拒绝匿名）
	authed := api.Group("")
	authed.Use(mdw.RequireUser())
	cartH.Mount(authed)

	return r
}
