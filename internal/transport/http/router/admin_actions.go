package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	httpez "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/ez"
)

// MountAdminActions 管理端接口集中在这里注册。
// 分组只挂了 Identity，ADMIN 鉴权由每个 Action 的 Auth+Roles 声明。
func MountAdminActions(admin *gin.RouterGroup, db *gorm.DB, products *service.ProductService) {
	ez := httpez.New(admin)
	adminOnly := []string{domain.RoleAdmin}

	// --- GET /admin/v1/users 用户列表 ---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 按 username 模糊搜
	}
	type row struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Enabled  bool   `json:"enabled"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.RegisterAction[listQ, listOut](ez, db, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Auth:   true,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&domain.User{})
			if s := strings.TrimSpace(in.Q); s != "" {
				q = q.Where("username LIKE ?", "%"+s+"%")
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, httpez.Internal("count users failed", err)
			}

			var us []domain.User
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}

			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{ID: u.ID, Username: u.Username, Role: u.Role, Enabled: u.Enabled})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users/:id/disable 禁用账号 ---
	// 已签发的 token 不会失效（无吊销），但身份解析每次都查库，
	// enabled=false 之后这些 token 立刻过不了 RequireUser。
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/disable",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  adminOnly,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return nil, httpez.BadRequest("invalid id")
			}
			res := tx.Model(&domain.User{}).Where("id = ?", id).Update("enabled", false)
			if res.Error != nil {
				return nil, httpez.Internal("disable user failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			return gin.H{"id": id}, nil
		},
	})

	// --- POST /admin/v1/users/:id/enable 恢复账号 ---
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/enable",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  adminOnly,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return nil, httpez.BadRequest("invalid id")
			}
			res := tx.Model(&domain.User{}).Where("id = ?", id).Update("enabled", true)
			if res.Error != nil {
				return nil, httpez.Internal("enable user failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			return gin.H{"id": id}, nil
		},
	})

	// --- POST /admin/v1/products 新增商品 ---
	type productIn struct {
		Name          string `json:"name"          binding:"required,max=128"`
		Type          string `json:"type"          binding:"omitempty,max=64"`
		OriginCountry string `json:"originCountry" binding:"omitempty,max=64"`
		Price         int    `json:"price"         binding:"required,min=0"`
		Stock         int    `json:"stock"         binding:"omitempty,min=0"`
	}
	httpez.RegisterAction[productIn, *domain.Product](ez, db, httpez.Action[productIn, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *gorm.DB, in *productIn) (*domain.Product, error) {
			p := &domain.Product{
				Name:          in.Name,
				Type:          in.Type,
				OriginCountry: in.OriginCountry,
				Price:         in.Price,
				Stock:         in.Stock,
			}
			if err := products.Create(c.Request.Context(), p); err != nil {
				return nil, httpez.Internal("create product failed", err)
			}
			return p, nil
		},
	})

	// --- PUT /admin/v1/products/:id 修改商品 ---
	httpez.RegisterAction[productIn, *domain.Product](ez, db, httpez.Action[productIn, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ *gorm.DB, in *productIn) (*domain.Product, error) {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return nil, httpez.BadRequest("invalid id")
			}
			p := &domain.Product{
				ID:            id,
				Name:          in.Name,
				Type:          in.Type,
				OriginCountry: in.OriginCountry,
				Price:         in.Price,
				Stock:         in.Stock,
			}
			if err := products.Update(c.Request.Context(), p); err != nil {
				if err == domain.ErrProductNotFound {
					return nil, httpez.NotFound("product not found")
				}
				return nil, httpez.Internal("update product failed", err)
			}
			return p, nil
		},
	})
}
