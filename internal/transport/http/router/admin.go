package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JuanAndresGH-hub/marketplace/internal/core/server"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	mdw "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎：统一要求 ADMIN 角色
func NewAdminEngine(
	l *zap.Logger,
	db *gorm.DB,
	resolver *service.IdentityResolver,
	products *service.ProductService,
) *gin.Engine {
	r := server.NewRouter(l)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 分组只做身份解析，ADMIN 角色由每个 Action 自己声明（Auth + Roles）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.Identity(resolver))

	// ① 自动发现（如有）
	MountAllAdmin(admin)

	// ② Action 挂载的管理接口（用户列表/禁用、商品维护）
	MountAdminActions(admin, db, products)

	return r
}
