package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/keepstockhq/keepstock-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.Store{}, &models.StockItem{}, &models.RefillItem{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	store, err := NewGormStore(conn)
	if err != nil {
		t.Fatalf("NewGormStore: %v", err)
	}
	return store
}

func TestGormStoreSeedIfEmpty(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	seed := SeedData{
		Products: []Product{{SKU: "101001", Name: "Basic Crew Tee", Price: 499, Rack: "A1", Department: "T-Shirts"}},
		Stores:   []Store{{Code: "XPTN", Name: "XPTN Store"}},
		StockItems: []StockItem{
			{ID: "s1", SKU: "101001", Quantity: 20, BoxNumber: "XPTN-BOX-001", Timestamp: "2026-01-10T09:00:00Z", StoreName: "XPTN Store"},
		},
	}
	if err := store.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	// A second pass must not duplicate rows.
	if err := store.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("repeated SeedIfEmpty: %v", err)
	}

	products, err := store.Products(ctx)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	items, err := store.StockItems(ctx)
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "s1" {
		t.Fatalf("unexpected stock items %+v", items)
	}
}

func TestGormStoreStockLifecycle(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	first := StockItem{ID: "a", SKU: "101001", Quantity: 20, BoxNumber: "XPTN-BOX-001", Timestamp: "2026-01-10T09:00:00Z", StoreName: "XPTN Store"}
	second := StockItem{ID: "b", SKU: "102001", Quantity: 5, BoxNumber: "XPTN-BOX-002", Timestamp: "2026-01-09T09:00:00Z", StoreName: "XPTN Store"}
	if err := store.AppendStockItem(ctx, first); err != nil {
		t.Fatalf("AppendStockItem: %v", err)
	}
	if err := store.AppendStockItem(ctx, second); err != nil {
		t.Fatalf("AppendStockItem: %v", err)
	}

	items, err := store.StockItems(ctx)
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("items must come back in timestamp order, got %+v", items)
	}

	quantity := 9
	box := "XPTN-BOX-009"
	ok, err := store.UpdateStockItem(ctx, "a", StockPatch{Quantity: &quantity, BoxNumber: &box})
	if err != nil || !ok {
		t.Fatalf("UpdateStockItem = (%v, %v)", ok, err)
	}
	ok, err = store.UpdateStockItem(ctx, "missing", StockPatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateStockItem: %v", err)
	}
	if ok {
		t.Fatal("UpdateStockItem matched a missing id")
	}

	// An empty patch reports whether the record exists.
	ok, err = store.UpdateStockItem(ctx, "a", StockPatch{})
	if err != nil || !ok {
		t.Fatalf("empty patch on existing id = (%v, %v)", ok, err)
	}
	ok, err = store.UpdateStockItem(ctx, "missing", StockPatch{})
	if err != nil {
		t.Fatalf("UpdateStockItem: %v", err)
	}
	if ok {
		t.Fatal("empty patch matched a missing id")
	}

	ok, err = store.DeleteStockItem(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("DeleteStockItem = (%v, %v)", ok, err)
	}
	ok, err = store.DeleteStockItem(ctx, "b")
	if err != nil {
		t.Fatalf("DeleteStockItem: %v", err)
	}
	if ok {
		t.Fatal("DeleteStockItem matched an already removed id")
	}

	items, err = store.StockItems(ctx)
	if err != nil {
		t.Fatalf("StockItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 9 || items[0].BoxNumber != "XPTN-BOX-009" {
		t.Fatalf("unexpected final state %+v", items)
	}
}

func TestGormStoreProductLookup(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	if err := store.SeedIfEmpty(ctx, SeedData{
		Products: []Product{{SKU: "101001", Name: "Basic Crew Tee", Price: 499, Rack: "A1", Department: "T-Shirts"}},
	}); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	product, err := store.ProductBySKU(ctx, "101001")
	if err != nil {
		t.Fatalf("ProductBySKU: %v", err)
	}
	if product == nil || product.Name != "Basic Crew Tee" {
		t.Fatalf("unexpected product %+v", product)
	}

	product, err = store.ProductBySKU(ctx, "404404")
	if err != nil {
		t.Fatalf("ProductBySKU: %v", err)
	}
	if product != nil {
		t.Fatalf("missing sku must return nil, got %+v", product)
	}
}

func TestGormStoreRefillLifecycle(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	item := RefillItem{ID: "r1", BoxNumber: "XPTN-BOX-001", Quantity: 10, Timestamp: "2026-01-20T09:00:00Z", StoreName: "XPTN Store"}
	if err := store.AppendRefillItem(ctx, item); err != nil {
		t.Fatalf("AppendRefillItem: %v", err)
	}

	quantity := 25
	ok, err := store.UpdateRefillItem(ctx, "r1", RefillPatch{Quantity: &quantity})
	if err != nil || !ok {
		t.Fatalf("UpdateRefillItem = (%v, %v)", ok, err)
	}

	items, err := store.RefillItems(ctx)
	if err != nil {
		t.Fatalf("RefillItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 25 {
		t.Fatalf("unexpected refill state %+v", items)
	}

	ok, err = store.DeleteRefillItem(ctx, "r1")
	if err != nil || !ok {
		t.Fatalf("DeleteRefillItem = (%v, %v)", ok, err)
	}
}
