package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	resp "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/response"
)

// CatalogModule 商品目录，走 router 注册表挂载（实现 router.APIModule）
type CatalogModule struct {
	products *service.ProductService
}

func NewCatalogModule(products *service.ProductService) *CatalogModule {
	return &CatalogModule{products: products}
}

func (m *CatalogModule) Priority() int { return 10 }

func (m *CatalogModule) MountAPI(g *gin.RouterGroup) {
	g.GET("/products", m.List)
	g.GET("/products/search", m.Search)
}

func (m *CatalogModule) List(c *gin.Context) {
	ps, err := m.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "list products failed"))
		return
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	c.JSON(http.StatusOK, resp.OK(ps))
}

// Search ?country= 或 ?type=，都没带就等于全量列表
func (m *CatalogModule) Search(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		ps  []domain.Product
		err error
	)
	switch {
	case c.Query("country") != "":
		ps, err = m.products.SearchByCountry(ctx, c.Query("country"))
	case c.Query("type") != "":
		ps, err = m.products.SearchByType(ctx, c.Query("type"))
	default:
		ps, err = m.products.List(ctx)
	}
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "search products failed"))
		return
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	c.JSON(http.StatusOK, resp.OK(ps))
}
