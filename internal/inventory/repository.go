package inventory

import "context"

// Repository is the record store contract shared by the JSON snapshot
// backend and the database backend. Collections are small and read
// whole; callers filter in memory.
//
// Mutations persist the updated collection before returning. The
// deleted/updated booleans report whether a record matched; they are
// never errors.
type Repository interface {
	Products(ctx context.Context) ([]Product, error)
	ProductBySKU(ctx context.Context, sku string) (*Product, error)
	Stores(ctx context.Context) ([]Store, error)

	StockItems(ctx context.Context) ([]StockItem, error)
	AppendStockItem(ctx context.Context, item StockItem) error
	UpdateStockItem(ctx context.Context, id string, patch StockPatch) (bool, error)
	DeleteStockItem(ctx context.Context, id string) (bool, error)

	RefillItems(ctx context.Context) ([]RefillItem, error)
	AppendRefillItem(ctx context.Context, item RefillItem) error
	UpdateRefillItem(ctx context.Context, id string, patch RefillPatch) (bool, error)
	DeleteRefillItem(ctx context.Context, id string) (bool, error)
}
