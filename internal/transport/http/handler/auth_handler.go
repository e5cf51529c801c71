package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	resp "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

type registerIn struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"     binding:"omitempty,max=16"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if !bindJSON(c, &in) {
		return
	}
	err := h.auth.Register(c.Request.Context(), in.Username, in.Password, in.Role)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		// 注册阶段允许暴露“用户名已占用”，登录阶段绝不允许
		c.JSON(http.StatusOK, resp.Error(resp.CodeConflict, "user already exists"))
	case domain.IsDuplicateKey(err):
		c.JSON(http.StatusOK, resp.Error(resp.CodeConflict, domain.ErrIntegrity.Error()))
	case err != nil:
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "register failed"))
	default:
		c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok"}))
	}
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if !bindJSON(c, &in) {
		return
	}
	token, err := h.auth.Login(c.Request.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid credentials"))
	case errors.Is(err, domain.ErrAccountDisabled):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "account disabled"))
	case err != nil:
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "login failed"))
	default:
		c.JSON(http.StatusOK, resp.OK(gin.H{"token": token}))
	}
}
