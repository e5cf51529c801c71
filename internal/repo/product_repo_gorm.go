package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) FindByCountry(ctx context.Context, country string) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Where("origin_country = ?", country).Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) FindByType(ctx context.Context, typ string) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Where("type = ?", typ).Find(&ps).Error
	return ps, err
}
