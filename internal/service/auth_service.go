package service

import (
	"context"
	"strings"

	"github.com/JuanAndresGH-hub/marketplace/internal/core/auth"
	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 用户名已存在 → ErrUserExists（注册阶段可以暴露存在性，登录阶段不行）。
// 角色留空默认 USER，未知角色也归 USER。
func (s *AuthService) Register(ctx context.Context, username, password, role string) error {
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return err
	} else if existing != nil {
		return domain.ErrUserExists
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: utils.HashPassword(password),
		Role:         normalizeRole(role),
		Enabled:      true,
	}
	err := s.users.Create(ctx, u)
	if domain.IsDuplicateKey(err) {
		// 预检查和写入之间被别的请求抢先，唯一索引兜住
		return domain.ErrUserExists
	}
	return err
}

// Login 成功返回 token。用户不存在和密码错误必须返回同一个错误值，
// 防止用户名枚举；禁用账号单独报 ErrAccountDisabled。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", domain.ErrInvalidCredentials
	}
	if !u.Enabled {
		return "", domain.ErrAccountDisabled
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.jwter.Issue(u.Username, u.Role)
}

func normalizeRole(role string) string {
	if strings.ToUpper(strings.TrimSpace(role)) == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}
