package domain

import "context"

type Product struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:128;not null" json:"name"`
	Type          string `gorm:"size:64;index" json:"type"`
	OriginCountry string `gorm:"size:64;index" json:"originCountry"`
	Price         int    `gorm:"not null" json:"price"`
	Stock         int    `gorm:"not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	// FindByID 未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id uint64) (*Product, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	List(ctx context.Context) ([]Product, error)
	FindByCountry(ctx context.Context, country string) ([]Product, error)
	FindByType(ctx context.Context, typ string) ([]Product, error)
}
