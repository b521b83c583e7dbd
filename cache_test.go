package neuron

import (
	"errors"
	"testing"
	"time"
)

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	store := setupTestStore(t)
	cache := NewContentCache(store, time.Hour)

	if err := store.SaveContent(testItem("a", "2024-01-01T00:00:00Z", true)); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}
	items, err := cache.ListContent()
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if err := store.SaveContent(testItem("b", "2024-01-02T00:00:00Z", true)); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}
	items, err = cache.ListContent()
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected stale listing before invalidation, got %d items", len(items))
	}

	cache.Invalidate()
	items, err = cache.ListContent()
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected fresh listing after invalidation, got %d items", len(items))
	}
}

func TestCacheListPublicFiltersGatedItems(t *testing.T) {
	store := setupTestStore(t)
	cache := NewContentCache(store, time.Hour)

	if err := store.SaveContent(testItem("pub", "2024-01-01T00:00:00Z", true)); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}
	if err := store.SaveContent(testItem("gated", "2024-01-02T00:00:00Z", false)); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}

	public, err := cache.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if len(public) != 1 || public[0].ID != "pub" {
		t.Fatalf("expected only the public item, got %+v", public)
	}
}

func TestCacheGetContent(t *testing.T) {
	store := setupTestStore(t)
	cache := NewContentCache(store, time.Hour)

	if err := store.SaveContent(testItem("a", "2024-01-01T00:00:00Z", true)); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}

	item, err := cache.GetContent("a")
	if err != nil {
		t.Fatalf("GetContent failed: %v", err)
	}
	if item.ID != "a" {
		t.Fatalf("got item %q", item.ID)
	}
	if _, err := cache.GetContent("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheEmptyStoreReturnsEmptySlice(t *testing.T) {
	store := setupTestStore(t)
	cache := NewContentCache(store, time.Hour)

	items, err := cache.ListContent()
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if items == nil {
		t.Fatal("expected non-nil slice for empty store")
	}
}
