package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/keepstockhq/keepstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

// GormStore is the database-backed record store. It satisfies the same
// Repository contract as FileStore so the rest of the application does
// not care which backend is configured.
type GormStore struct {
	db *gorm.DB
}

var _ Repository = (*GormStore)(nil)

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	return &GormStore{db: db}, nil
}

// SeedIfEmpty inserts the reference data into empty tables. Products
// and stores are reloaded from seed on every boot when their tables are
// empty; stock and refill items seed only the first time.
func (g *GormStore) SeedIfEmpty(ctx context.Context, seed SeedData) error {
	if err := seedTable(ctx, g.db, productModels(seed.Products)); err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}
	if err := seedTable(ctx, g.db, storeModels(seed.Stores)); err != nil {
		return fmt.Errorf("seeding stores: %w", err)
	}
	if err := seedTable(ctx, g.db, stockModels(seed.StockItems)); err != nil {
		return fmt.Errorf("seeding stock items: %w", err)
	}
	if err := seedTable(ctx, g.db, refillModels(seed.RefillItems)); err != nil {
		return fmt.Errorf("seeding refill items: %w", err)
	}
	return nil
}

func seedTable[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	var count int64
	var zero T
	if err := db.WithContext(ctx).Model(&zero).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (g *GormStore) Products(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

func (g *GormStore) ProductBySKU(ctx context.Context, sku string) (*Product, error) {
	var row models.Product
	err := g.db.WithContext(ctx).First(&row, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := productFromModel(row)
	return &p, nil
}

func (g *GormStore) Stores(ctx context.Context) ([]Store, error) {
	var rows []models.Store
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Store, 0, len(rows))
	for _, row := range rows {
		out = append(out, Store{Code: row.Code, Name: row.Name})
	}
	return out, nil
}

func (g *GormStore) StockItems(ctx context.Context) ([]StockItem, error) {
	var rows []models.StockItem
	if err := g.db.WithContext(ctx).Order("timestamp asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]StockItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, stockFromModel(row))
	}
	return out, nil
}

func (g *GormStore) AppendStockItem(ctx context.Context, item StockItem) error {
	row := stockToModel(item)
	return g.db.WithContext(ctx).Create(&row).Error
}

func (g *GormStore) UpdateStockItem(ctx context.Context, id string, patch StockPatch) (bool, error) {
	fields := map[string]any{}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}
	if patch.BoxNumber != nil {
		fields["box_number"] = *patch.BoxNumber
	}
	if len(fields) == 0 {
		var count int64
		if err := g.db.WithContext(ctx).Model(&models.StockItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
	res := g.db.WithContext(ctx).Model(&models.StockItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *GormStore) DeleteStockItem(ctx context.Context, id string) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&models.StockItem{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *GormStore) RefillItems(ctx context.Context) ([]RefillItem, error) {
	var rows []models.RefillItem
	if err := g.db.WithContext(ctx).Order("timestamp asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]RefillItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, refillFromModel(row))
	}
	return out, nil
}

func (g *GormStore) AppendRefillItem(ctx context.Context, item RefillItem) error {
	row := refillToModel(item)
	return g.db.WithContext(ctx).Create(&row).Error
}

func (g *GormStore) UpdateRefillItem(ctx context.Context, id string, patch RefillPatch) (bool, error) {
	fields := map[string]any{}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}
	if patch.BoxNumber != nil {
		fields["box_number"] = *patch.BoxNumber
	}
	if len(fields) == 0 {
		var count int64
		if err := g.db.WithContext(ctx).Model(&models.RefillItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
	res := g.db.WithContext(ctx).Model(&models.RefillItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *GormStore) DeleteRefillItem(ctx context.Context, id string) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&models.RefillItem{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func productFromModel(m models.Product) Product {
	return Product{SKU: m.SKU, Name: m.Name, Price: m.Price, Rack: m.Rack, Department: m.Department}
}

func stockFromModel(m models.StockItem) StockItem {
	return StockItem{ID: m.ID, SKU: m.SKU, Quantity: m.Quantity, BoxNumber: m.BoxNumber, Timestamp: m.Timestamp, StoreName: m.StoreName}
}

func stockToModel(item StockItem) models.StockItem {
	return models.StockItem{ID: item.ID, SKU: item.SKU, Quantity: item.Quantity, BoxNumber: item.BoxNumber, Timestamp: item.Timestamp, StoreName: item.StoreName}
}

func refillFromModel(m models.RefillItem) RefillItem {
	return RefillItem{ID: m.ID, BoxNumber: m.BoxNumber, Quantity: m.Quantity, Timestamp: m.Timestamp, StoreName: m.StoreName}
}

func refillToModel(item RefillItem) models.RefillItem {
	return models.RefillItem{ID: item.ID, BoxNumber: item.BoxNumber, Quantity: item.Quantity, Timestamp: item.Timestamp, StoreName: item.StoreName}
}

func productModels(items []Product) []models.Product {
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		out = append(out, models.Product{SKU: p.SKU, Name: p.Name, Price: p.Price, Rack: p.Rack, Department: p.Department})
	}
	return out
}

func storeModels(items []Store) []models.Store {
	out := make([]models.Store, 0, len(items))
	for _, s := range items {
		out = append(out, models.Store{Code: s.Code, Name: s.Name})
	}
	return out
}

func stockModels(items []StockItem) []models.StockItem {
	out := make([]models.StockItem, 0, len(items))
	for _, item := range items {
		out = append(out, stockToModel(item))
	}
	return out
}

func refillModels(items []RefillItem) []models.RefillItem {
	out := make([]models.RefillItem, 0, len(items))
	for _, item := range items {
		out = append(out, refillToModel(item))
	}
	return out
}
