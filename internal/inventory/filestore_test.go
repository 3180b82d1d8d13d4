package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir, SeedData{}, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	item := StockItem{
		ID:        "abc-123",
		SKU:       "101001",
		Quantity:  20,
		BoxNumber: "XPTN-BOX-001",
		Timestamp: "2026-01-15T10:00:00Z",
		StoreName: "XPTN Store",
	}
	if err := fs.AppendStockItem(ctx, item); err != nil {
		t.Fatalf("AppendStockItem: %v", err)
	}

	reopened, err := NewFileStore(dir, SeedData{}, nil)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	items, err := reopened.StockItems(ctx)
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(items) != 1 || items[0] != item {
		t.Fatalf("round trip lost data: %+v", items)
	}
}

func TestFileStoreSeedsWhenFilesMissing(t *testing.T) {
	seed := SeedData{
		StockItems:  []StockItem{{ID: "s1", SKU: "101001", Quantity: 5, BoxNumber: "XPTN-BOX-001", StoreName: "XPTN Store"}},
		RefillItems: []RefillItem{{ID: "r1", BoxNumber: "XPTN-BOX-001", Quantity: 3, StoreName: "XPTN Store"}},
	}

	fs, err := NewFileStore(t.TempDir(), seed, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	stock, err := fs.StockItems(context.Background())
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(stock) != 1 || stock[0].ID != "s1" {
		t.Fatalf("seed stock not loaded: %+v", stock)
	}
	refills, err := fs.RefillItems(context.Background())
	if err != nil {
		t.Fatalf("RefillItems: %v", err)
	}
	if len(refills) != 1 || refills[0].ID != "r1" {
		t.Fatalf("seed refills not loaded: %+v", refills)
	}
}

func TestFileStoreSeedsWhenFileCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stockItemsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	seed := SeedData{
		StockItems: []StockItem{{ID: "s1", SKU: "101001", Quantity: 5, BoxNumber: "XPTN-BOX-001", StoreName: "XPTN Store"}},
	}
	fs, err := NewFileStore(dir, seed, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	stock, err := fs.StockItems(context.Background())
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(stock) != 1 || stock[0].ID != "s1" {
		t.Fatalf("corrupt file must fall back to seed data, got %+v", stock)
	}
}

func TestFileStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir(), SeedData{}, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := fs.AppendStockItem(ctx, StockItem{ID: "a", SKU: "101001", Quantity: 1, BoxNumber: "XPTN-BOX-001", StoreName: "XPTN Store"}); err != nil {
		t.Fatalf("AppendStockItem: %v", err)
	}
	if err := fs.AppendStockItem(ctx, StockItem{ID: "b", SKU: "102001", Quantity: 2, BoxNumber: "XPTN-BOX-002", StoreName: "XPTN Store"}); err != nil {
		t.Fatalf("AppendStockItem: %v", err)
	}

	quantity := 9
	ok, err := fs.UpdateStockItem(ctx, "a", StockPatch{Quantity: &quantity})
	if err != nil || !ok {
		t.Fatalf("UpdateStockItem = (%v, %v)", ok, err)
	}
	ok, err = fs.UpdateStockItem(ctx, "missing", StockPatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateStockItem: %v", err)
	}
	if ok {
		t.Fatal("UpdateStockItem matched a missing id")
	}

	ok, err = fs.DeleteStockItem(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("DeleteStockItem = (%v, %v)", ok, err)
	}
	ok, err = fs.DeleteStockItem(ctx, "b")
	if err != nil {
		t.Fatalf("DeleteStockItem: %v", err)
	}
	if ok {
		t.Fatal("DeleteStockItem matched an already removed id")
	}

	items, err := fs.StockItems(ctx)
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" || items[0].Quantity != 9 {
		t.Fatalf("unexpected final state %+v", items)
	}
}

func TestFileStoreProductLookup(t *testing.T) {
	seed := SeedData{
		Products: []Product{{SKU: "101001", Name: "Basic Crew Tee", Price: 499, Rack: "A1", Department: "T-Shirts"}},
	}
	fs, err := NewFileStore(t.TempDir(), seed, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	product, err := fs.ProductBySKU(context.Background(), "101001")
	if err != nil {
		t.Fatalf("ProductBySKU: %v", err)
	}
	if product == nil || product.Name != "Basic Crew Tee" {
		t.Fatalf("unexpected product %+v", product)
	}

	product, err = fs.ProductBySKU(context.Background(), "404404")
	if err != nil {
		t.Fatalf("ProductBySKU: %v", err)
	}
	if product != nil {
		t.Fatalf("missing sku must return nil, got %+v", product)
	}
}
