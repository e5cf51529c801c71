package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

// In-memory fakes. Each individual operation is atomic, like a real database;
// nothing serializes a find-then-save sequence, so the services have to.

type stubUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint %q", "users_username_key")
	}
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.users[u.Username] = &clone
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if q == "" || strings.Contains(u.Username, q) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) SetEnabled(_ context.Context, id uint64, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Enabled = enabled
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubProductRepo struct {
	mu       sync.Mutex
	nextID   uint64
	products map[uint64]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint64]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Exists(_ context.Context, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByCountry(_ context.Context, country string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.OriginCountry == country {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByType(_ context.Context, typ string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.Type == typ {
			out = append(out, *p)
		}
	}
	return out, nil
}

type stubCartRepo struct {
	mu     sync.Mutex
	nextID uint64
	lines  map[uint64]*domain.CartLine
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{lines: make(map[uint64]*domain.CartLine)}
}

func (r *stubCartRepo) Create(_ context.Context, line *domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.Username == line.Username && l.ProductID == line.ProductID {
			return fmt.Errorf("duplicate key value violates unique constraint %q", "uq_cart_user_product")
		}
	}
	r.nextID++
	line.ID = r.nextID
	clone := *line
	r.lines[line.ID] = &clone
	return nil
}

func (r *stubCartRepo) Save(_ context.Context, line *domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *line
	r.lines[line.ID] = &clone
	return nil
}

func (r *stubCartRepo) FindByUserAndProduct(_ context.Context, username string, productID uint64) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.Username == username && l.ProductID == productID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubCartRepo) ListByUsername(_ context.Context, username string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CartLine
	for _, l := range r.lines {
		if l.Username == username {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, id)
	return nil
}
