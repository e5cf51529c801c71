package service

import (
	"context"

	"github.com/JuanAndresGH-hub/marketplace/internal/core/auth"
	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

// IdentityResolver 把可选的 bearer token 变成可选身份，绝不打断请求：
// token 缺失、解析失败、过期、subject 已被删除，一律降级为匿名（返回 nil）。
// Role/Enabled 每次都从用户表重查，token 里嵌的旧角色不可信（提权残留风险）。
// 每次最多一次读，无锁，可在全并发请求上调用。
type IdentityResolver struct {
	jwter *auth.JWTer
	users domain.UserRepository
}

func NewIdentityResolver(jwter *auth.JWTer, users domain.UserRepository) *IdentityResolver {
	return &IdentityResolver{jwter: jwter, users: users}
}

func (r *IdentityResolver) Resolve(ctx context.Context, token string) *domain.Identity {
	if token == "" {
		return nil
	}
	claims, err := r.jwter.Verify(token)
	if err != nil {
		return nil
	}
	u, err := r.users.FindByUsername(ctx, claims.Subject)
	if err != nil || u == nil {
		return nil
	}
	return &domain.Identity{Username: u.Username, Role: u.Role, Enabled: u.Enabled}
}
