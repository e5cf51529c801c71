package domain

import (
	"errors"
	"strings"
)

var (
	// 登录失败统一返回同一个错误：不能让调用方区分“用户不存在”和“密码错误”
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")

	// ErrIntegrity 对外统一的约束冲突文案，不透出底层存储错误
	ErrIntegrity = errors.New("integrity violation (FK/UNIQUE), check user or product")
)

// IsDuplicateKey 不依赖 gorm.ErrDuplicatedKey，按文案嗅探，mysql/postgres 通用
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
