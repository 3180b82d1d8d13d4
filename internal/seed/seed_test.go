package seed

import (
	"testing"

	"github.com/keepstockhq/keepstock-backend/internal/inventory"
)

func TestProductsMatchDepartmentPrefixes(t *testing.T) {
	products := Products()
	if len(products) == 0 {
		t.Fatal("expected embedded products")
	}

	seen := map[string]bool{}
	for _, p := range products {
		if p.SKU == "" || p.Name == "" || p.Price <= 0 {
			t.Fatalf("incomplete product %+v", p)
		}
		if seen[p.SKU] {
			t.Fatalf("duplicate sku %q", p.SKU)
		}
		seen[p.SKU] = true
		if want := inventory.DepartmentForSKU(p.SKU); p.Department != want {
			t.Fatalf("product %s department = %q, want %q", p.SKU, p.Department, want)
		}
	}
}

func TestUsersMapToStores(t *testing.T) {
	users := Users()
	if len(users) == 0 {
		t.Fatal("expected embedded users")
	}

	storesByName := map[string]bool{}
	for _, s := range Stores() {
		storesByName[s.Name] = true
	}
	for _, u := range users {
		if u.Username == "" || u.Password == "" {
			t.Fatalf("incomplete user %+v", u)
		}
		if !storesByName[u.Store] {
			t.Fatalf("user %s names unknown store %q", u.Username, u.Store)
		}
	}
}

func TestStockItemsReferenceCatalogAndStores(t *testing.T) {
	skus := map[string]bool{}
	for _, p := range Products() {
		skus[p.SKU] = true
	}
	storesByName := map[string]bool{}
	for _, s := range Stores() {
		storesByName[s.Name] = true
	}

	for _, item := range StockItems() {
		if !skus[item.SKU] {
			t.Fatalf("stock item %s references unknown sku %q", item.ID, item.SKU)
		}
		if !storesByName[item.StoreName] {
			t.Fatalf("stock item %s references unknown store %q", item.ID, item.StoreName)
		}
		if item.BoxNumber == "" || item.Timestamp == "" {
			t.Fatalf("incomplete stock item %+v", item)
		}
	}

	for _, item := range RefillItems() {
		if !storesByName[item.StoreName] {
			t.Fatalf("refill item %s references unknown store %q", item.ID, item.StoreName)
		}
	}
}
