package service

import (
	"context"
	"time"

	"github.com/JuanAndresGH-hub/marketplace/internal/core/cache"
	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

const productCacheTTL = 30 * time.Second

const (
	keyProductsAll     = "products:all"
	keyProductsCountry = "products:country:"
	keyProductsType    = "products:type:"
)

// ProductService 商品目录。读路径走 redis + singleflight，cache 传 nil 则直连库。
type ProductService struct {
	products domain.ProductRepository
	cache    *cache.Cache
}

func NewProductService(products domain.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{products: products, cache: c}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.cached(ctx, keyProductsAll, s.products.List)
}

func (s *ProductService) SearchByCountry(ctx context.Context, country string) ([]domain.Product, error) {
	return s.cached(ctx, keyProductsCountry+country, func(ctx context.Context) ([]domain.Product, error) {
		return s.products.FindByCountry(ctx, country)
	})
}

func (s *ProductService) SearchByType(ctx context.Context, typ string) ([]domain.Product, error) {
	return s.cached(ctx, keyProductsType+typ, func(ctx context.Context) ([]domain.Product, error) {
		return s.products.FindByType(ctx, typ)
	})
}

func (s *ProductService) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, p)
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if existing, err := s.products.FindByID(ctx, p.ID); err != nil {
		return err
	} else if existing == nil {
		return domain.ErrProductNotFound
	}
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, p)
	return nil
}

func (s *ProductService) cached(ctx context.Context, key string, load func(context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	if s.cache == nil {
		return load(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Product](s.cache, ctx, key, productCacheTTL, func(ctx context.Context) (*[]domain.Product, error) {
		ps, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return &ps, nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (s *ProductService) invalidate(ctx context.Context, p *domain.Product) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx,
		keyProductsAll,
		keyProductsCountry+p.OriginCountry,
		keyProductsType+p.Type,
	)
}
