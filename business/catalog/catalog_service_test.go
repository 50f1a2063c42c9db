//go:build !integration

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"myFitLane/domain"
	"reflect"
	"testing"
)

func TestProductLookupByID(t *testing.T) {
	s := newLoadedService([]domain.EnrichedProduct{
		enriched(1, "Shirt", "men's clothing", 25, 4.5, false),
		enriched(2, "Jacket", "men's clothing", 60, 4.8, true),
	})

	got, err := s.Product(context.Background(), 2)
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if got.ID != 2 || !got.OnSale {
		t.Errorf("product = %+v, want the enriched jacket", got)
	}

	if _, err := s.Product(context.Background(), 99); err == nil {
		t.Fatal("expected error for unknown product id")
	}
}

func TestProductLookupLoadsCatalogOnDemand(t *testing.T) {
	store := newMemStore()
	src := &fakeSource{products: []domain.Product{rawProduct(5, "Cap", 9.50, 4.0)}}
	s := newTestService(src, store, &fakeRand{floats: []float64{0.9, 0.9}})

	got, err := s.Product(context.Background(), 5)
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if got.ID != 5 {
		t.Errorf("product id = %d, want 5", got.ID)
	}
	if src.calls != 1 {
		t.Errorf("upstream fetched %d times, want 1", src.calls)
	}
}

func TestCategoriesCachedAfterFirstFetch(t *testing.T) {
	store := newMemStore()
	src := &fakeSource{categories: []string{"electronics", "jewelery"}}
	s := newTestService(src, store, &fakeRand{})

	first, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	second, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	if src.catCalls != 1 {
		t.Errorf("upstream fetched %d times, want 1 (second read from cache)", src.catCalls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("category lists differ: %v vs %v", first, second)
	}
}

func TestCategoriesFallBackOnUpstreamFailure(t *testing.T) {
	store := newMemStore()
	src := &fakeSource{catErr: errors.New("upstream down")}
	s := newTestService(src, store, &fakeRand{})

	got, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if !reflect.DeepEqual(got, fallbackCategories()) {
		t.Errorf("categories = %v, want the fixed fallback list", got)
	}

	// the fallback is not cached, a later call retries the upstream
	if _, ok := store.data[storeKeyCategories]; ok {
		t.Error("fallback list was persisted, want cache left empty")
	}
}

func TestCategoriesCorruptCacheRefetches(t *testing.T) {
	store := newMemStore()
	store.data[storeKeyCategories] = []byte("{not json")
	src := &fakeSource{categories: []string{"electronics"}}
	s := newTestService(src, store, &fakeRand{})

	got, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if src.catCalls != 1 {
		t.Errorf("upstream fetched %d times, want 1 after corrupt cache", src.catCalls)
	}
	if !reflect.DeepEqual(got, []string{"electronics"}) {
		t.Errorf("categories = %v, want the refetched list", got)
	}

	var cached []string
	if err := json.Unmarshal(store.data[storeKeyCategories], &cached); err != nil {
		t.Fatalf("cache was not rewritten with valid JSON: %v", err)
	}
}
