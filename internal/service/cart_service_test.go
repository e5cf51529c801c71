package service

import (
	"context"
	"sync"
	"testing"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

func newTestCart(t *testing.T) (*CartService, *stubCartRepo) {
	t.Helper()
	users := newStubUserRepo()
	products := newStubProductRepo()
	carts := newStubCartRepo()
	ctx := context.Background()
	if err := users.Create(ctx, &domain.User{Username: "alice", Role: domain.RoleUser, Enabled: true}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := products.Create(ctx, &domain.Product{ID: 5, Name: "alfajor", Type: "cookie", OriginCountry: "AR", Price: 300, Stock: 10}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return NewCartService(carts, users, products), carts
}

func TestCartService_AddItem_MergeNotDuplicate(t *testing.T) {
	svc, carts := newTestCart(t)
	ctx := context.Background()

	line, err := svc.AddItem(ctx, "alice", 5, 2)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if line.ProductID != 5 || line.Quantity != 2 {
		t.Fatalf("unexpected line: %+v", line)
	}

	line2, err := svc.AddItem(ctx, "alice", 5, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if line2.ID != line.ID {
		t.Fatalf("second add created a new line: %d vs %d", line2.ID, line.ID)
	}
	if line2.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", line2.Quantity)
	}

	all, _ := carts.ListByUsername(ctx, "alice")
	if len(all) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(all))
	}
}

func TestCartService_AddItem_PermissiveQuantityDefault(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	// 0 and negative both behave as 1 (absent quantity binds to 0 upstream)
	for i, qty := range []int{0, -3} {
		line, err := svc.AddItem(ctx, "alice", 5, qty)
		if err != nil {
			t.Fatalf("add with qty %d: %v", qty, err)
		}
		if want := i + 1; line.Quantity != want {
			t.Fatalf("after add with qty %d: quantity = %d, want %d", qty, line.Quantity, want)
		}
	}
}

func TestCartService_AddItem_UserNotFound(t *testing.T) {
	svc, carts := newTestCart(t)
	if _, err := svc.AddItem(context.Background(), "ghost", 5, 1); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if all, _ := carts.ListByUsername(context.Background(), "ghost"); len(all) != 0 {
		t.Fatalf("cart changed on failed add")
	}
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, carts := newTestCart(t)
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "alice", 999, 1); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if all, _ := carts.ListByUsername(ctx, "alice"); len(all) != 0 {
		t.Fatalf("cart changed on failed add")
	}
}

func TestCartService_AddItem_ConcurrentNoLostUpdate(t *testing.T) {
	svc, carts := newTestCart(t)
	ctx := context.Background()

	const adders = 50
	var wg sync.WaitGroup
	wg.Add(adders)
	for i := 0; i < adders; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, "alice", 5, 1); err != nil {
				t.Errorf("concurrent add: %v", err)
			}
		}()
	}
	wg.Wait()

	all, _ := carts.ListByUsername(ctx, "alice")
	if len(all) != 1 {
		t.Fatalf("expected one merged line, got %d", len(all))
	}
	if all[0].Quantity != adders {
		t.Fatalf("lost update: quantity = %d, want %d", all[0].Quantity, adders)
	}
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	line, err := svc.AddItem(ctx, "alice", 5, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveItem(ctx, line.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := svc.RemoveItem(ctx, line.ID); err != nil {
		t.Fatalf("second remove must be a no-op, got %v", err)
	}
	if err := svc.RemoveItem(ctx, 424242); err != nil {
		t.Fatalf("removing an unknown id must not error, got %v", err)
	}
}

func TestCartService_ListItems(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	if lines, err := svc.ListItems(ctx, "alice"); err != nil || len(lines) != 0 {
		t.Fatalf("empty cart: lines=%v err=%v", lines, err)
	}
	_, _ = svc.AddItem(ctx, "alice", 5, 2)
	lines, err := svc.ListItems(ctx, "alice")
	if err != nil || len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected listing: %+v err=%v", lines, err)
	}
}
