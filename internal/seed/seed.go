// Package seed carries the reference data the application falls back to
// when the persistent layer is empty or unreadable: the read-only
// product catalog, the store list, the credential list, and a starter
// set of stock and refill items.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/keepstockhq/keepstock-backend/internal/inventory"
)

//go:embed data/*.json
var dataFS embed.FS

// User is a seeded store credential. The password is plaintext in the
// embedded file and hashed by the auth layer at load time.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Store    string `json:"store"`
}

// Products returns the embedded product catalog. An entry whose
// department disagrees with its sku prefix is a build mistake, so the
// whole catalog is rejected.
func Products() []inventory.Product {
	products := mustLoad[inventory.Product]("data/products.json")
	for _, p := range products {
		if want := inventory.DepartmentForSKU(p.SKU); p.Department != want {
			panic(fmt.Sprintf("seed: product %s carries department %q, sku prefix says %q", p.SKU, p.Department, want))
		}
	}
	return products
}

// Stores returns the embedded store list.
func Stores() []inventory.Store {
	return mustLoad[inventory.Store]("data/stores.json")
}

// Users returns the embedded credential list.
func Users() []User {
	return mustLoad[User]("data/users.json")
}

// StockItems returns the starter stock item set.
func StockItems() []inventory.StockItem {
	return mustLoad[inventory.StockItem]("data/stock_items.json")
}

// RefillItems returns the starter refill item set.
func RefillItems() []inventory.RefillItem {
	return mustLoad[inventory.RefillItem]("data/refill_items.json")
}

func mustLoad[T any](name string) []T {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("seed: reading %s: %v", name, err))
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("seed: parsing %s: %v", name, err))
	}
	return out
}
