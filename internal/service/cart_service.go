package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

// CartService 购物车聚合。
// 合并写入（读行 → 加量 → 写回）必须按 (username, productId) 串行化，
// 否则两个并发 addItem 都读到旧数量，丢一次增量。这里用进程内按键互斥锁串行，
// 跨进程场景由复合唯一索引 + 重复键重试兜底。
// 锁表不回收：每个出现过的 (username, productId) 常驻一把 mutex，
// 上界是活跃 用户×商品 组合数（每条 ~100B），进程生命周期内可接受。
type CartService struct {
	carts    domain.CartRepository
	users    domain.UserRepository
	products domain.ProductRepository

	locks sync.Map // "username\x00productId" -> *sync.Mutex
}

func NewCartService(carts domain.CartRepository, users domain.UserRepository, products domain.ProductRepository) *CartService {
	return &CartService{carts: carts, users: users, products: products}
}

func (s *CartService) lineLock(username string, productID uint64) *sync.Mutex {
	key := fmt.Sprintf("%s\x00%d", username, productID)
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AddItem 数量缺省或 ≤0 一律按 1 处理（宽松默认，不报错）。
// 返回合并后的行。
func (s *CartService) AddItem(ctx context.Context, username string, productID uint64, qty int) (*domain.CartLine, error) {
	if qty <= 0 {
		qty = 1
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	mu := s.lineLock(username, productID)
	mu.Lock()
	defer mu.Unlock()

	line, err := s.carts.FindByUserAndProduct(ctx, username, productID)
	if err != nil {
		return nil, err
	}
	if line != nil {
		line.Quantity += qty
		if err := s.carts.Save(ctx, line); err != nil {
			return nil, err
		}
		return line, nil
	}

	line = &domain.CartLine{Username: username, ProductID: productID, Quantity: qty}
	if err := s.carts.Create(ctx, line); err != nil {
		if domain.IsDuplicateKey(err) {
			// 别的进程抢先插入了同一行：重查并合并
			return s.mergeExisting(ctx, username, productID, qty)
		}
		return nil, err
	}
	return line, nil
}

func (s *CartService) mergeExisting(ctx context.Context, username string, productID uint64, qty int) (*domain.CartLine, error) {
	line, err := s.carts.FindByUserAndProduct(ctx, username, productID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrIntegrity
	}
	line.Quantity += qty
	if err := s.carts.Save(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// ListItems 每次调用返回新切片，顺序不做保证
func (s *CartService) ListItems(ctx context.Context, username string) ([]domain.CartLine, error) {
	return s.carts.ListByUsername(ctx, username)
}

// RemoveItem 幂等删除，行不存在不算错误
func (s *CartService) RemoveItem(ctx context.Context, id uint64) error {
	return s.carts.Delete(ctx, id)
}
