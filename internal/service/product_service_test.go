package service

import (
	"context"
	"testing"

	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
)

func TestProductService_SearchAndLookup(t *testing.T) {
	products := newStubProductRepo()
	ctx := context.Background()
	_ = products.Create(ctx, &domain.Product{Name: "turron", Type: "nougat", OriginCountry: "ES", Price: 450})
	_ = products.Create(ctx, &domain.Product{Name: "mochi", Type: "rice", OriginCountry: "JP", Price: 520})

	svc := NewProductService(products, nil) // no redis, direct reads

	all, err := svc.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v, %d items", err, len(all))
	}
	es, err := svc.SearchByCountry(ctx, "ES")
	if err != nil || len(es) != 1 || es[0].Name != "turron" {
		t.Fatalf("by country: %+v err=%v", es, err)
	}
	rice, err := svc.SearchByType(ctx, "rice")
	if err != nil || len(rice) != 1 || rice[0].Name != "mochi" {
		t.Fatalf("by type: %+v err=%v", rice, err)
	}
	if _, err := svc.FindByID(ctx, 999); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_UpdateUnknown(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil)
	err := svc.Update(context.Background(), &domain.Product{ID: 7, Name: "x"})
	if err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
