package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Create(ctx context.Context, line *domain.CartLine) error {
	// 唯一索引冲突原样返回，由聚合层按重复键重试合并
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *CartRepo) Save(ctx context.Context, line *domain.CartLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *CartRepo) FindByUserAndProduct(ctx context.Context, username string, productID uint64) (*domain.CartLine, error) {
	var line domain.CartLine
	err := r.db.WithContext(ctx).
		First(&line, "username = ? AND product_id = ?", username, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepo) ListByUsername(ctx context.Context, username string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := r.db.WithContext(ctx).Where("username = ?", username).Find(&lines).Error
	return lines, err
}

func (r *CartRepo) Delete(ctx context.Context, id uint64) error {
	// 幂等：RowsAffected == 0 不是错误
	return r.db.WithContext(ctx).Delete(&domain.CartLine{}, "id = ?", id).Error
}
