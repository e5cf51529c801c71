package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"role"` // "USER"/"ADMIN"
	Enabled      bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Identity 每个请求从 token 解析出来的身份，永不落库。
// Role/Enabled 以用户表当前值为准，token 只证明身份不证明权限。
type Identity struct {
	Username string
	Role     string
	Enabled  bool
}

func (id *Identity) IsAdmin() bool { return id != nil && id.Role == RoleAdmin }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// FindByUsername 未找到时返回 (nil, nil)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	SetEnabled(ctx context.Context, id uint64, enabled bool) error
}
