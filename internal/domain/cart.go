package domain

import "context"

// CartLine 每个 (username, productId) 至多一行，复合唯一索引兜底。
type CartLine struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:64;not null;uniqueIndex:uq_cart_user_product;index" json:"username"`
	ProductID uint64 `gorm:"not null;uniqueIndex:uq_cart_user_product" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}

func (CartLine) TableName() string { return "cart_lines" }

type CartRepository interface {
	Create(ctx context.Context, line *CartLine) error
	Save(ctx context.Context, line *CartLine) error
	// FindByUserAndProduct 未找到时返回 (nil, nil)
	FindByUserAndProduct(ctx context.Context, username string, productID uint64) (*CartLine, error)
	ListByUsername(ctx context.Context, username string) ([]CartLine, error)
	// Delete 不存在的 id 不算错误
	Delete(ctx context.Context, id uint64) error
}
