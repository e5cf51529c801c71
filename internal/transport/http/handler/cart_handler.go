package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	mdw "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/middleware"
	resp "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/response"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Mount 挂到已经套了 RequireUser 的分组上
func (h *CartHandler) Mount(g *gin.RouterGroup) {
	g.POST("/cart/items", h.AddItem)
	g.GET("/cart", h.List)
	g.DELETE("/cart/items/:id", h.Remove)
}

type addItemIn struct {
	ProductID *uint64 `json:"productId" form:"productId"`
	Quantity  *int    `json:"quantity"  form:"quantity"` // 缺省/≤0 都按 1
}

// AddItem 同时接受 query（?productId=1&quantity=2）和 JSON body 两种写法
func (h *CartHandler) AddItem(c *gin.Context) {
	id, _ := mdw.IdentityFrom(c)

	var in addItemIn
	var err error
	if strings.Contains(c.ContentType(), "json") {
		err = c.ShouldBindJSON(&in)
	} else {
		err = c.ShouldBindQuery(&in)
	}
	if err != nil {
		c.JSON(http.StatusOK, resp.Invalid(fieldErrors(err)))
		return
	}
	if in.ProductID == nil {
		c.JSON(http.StatusOK, resp.Invalid([]gin.H{{"field": "productId", "message": "is required"}}))
		return
	}
	qty := 0
	if in.Quantity != nil {
		qty = *in.Quantity
	}

	line, err := h.cart.AddItem(c.Request.Context(), id.Username, *in.ProductID, qty)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, "user not found"))
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, "product not found"))
	case errors.Is(err, domain.ErrIntegrity) || domain.IsDuplicateKey(err):
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, domain.ErrIntegrity.Error()))
	case err != nil:
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "add item failed"))
	default:
		c.JSON(http.StatusOK, resp.OK(line))
	}
}

func (h *CartHandler) List(c *gin.Context) {
	id, _ := mdw.IdentityFrom(c)
	lines, err := h.cart.ListItems(c.Request.Context(), id.Username)
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "list cart failed"))
		return
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, resp.OK(lines))
}

// Remove 幂等：不存在的行照样返回成功
func (h *CartHandler) Remove(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, resp.Invalid([]gin.H{{"field": "id", "message": "must be a number"}}))
		return
	}
	if err := h.cart.RemoveItem(c.Request.Context(), lineID); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "remove item failed"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": lineID}))
}
