package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

const (
	stockItemsFile  = "stock_items.json"
	refillItemsFile = "refill_items.json"
)

// SeedData is the reference data a store falls back to when its
// persistent layer is empty or unreadable.
type SeedData struct {
	Products    []Product
	Stores      []Store
	StockItems  []StockItem
	RefillItems []RefillItem
}

// FileStore keeps the canonical collections in memory and mirrors the
// mutable ones to JSON snapshot files, one file per collection. Every
// successful mutation rewrites the full collection before returning.
//
// Products and stores are read-only and live only in memory; stock and
// refill items load from disk, falling back to the seed set when the
// file is missing or unparseable.
type FileStore struct {
	mu   sync.RWMutex
	dir  string
	logg *logger.Logger

	products []Product
	stores   []Store
	stock    []StockItem
	refills  []RefillItem
}

var _ Repository = (*FileStore)(nil)

// NewFileStore loads the snapshot files under dir, seeding the
// collections that are absent or corrupt.
func NewFileStore(dir string, seed SeedData, logg *logger.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	fs := &FileStore{
		dir:      dir,
		logg:     logg,
		products: append([]Product(nil), seed.Products...),
		stores:   append([]Store(nil), seed.Stores...),
	}

	fs.stock = loadCollection(fs, stockItemsFile, seed.StockItems)
	fs.refills = loadCollection(fs, refillItemsFile, seed.RefillItems)

	return fs, nil
}

func loadCollection[T any](fs *FileStore, name string, fallback []T) []T {
	raw, err := os.ReadFile(filepath.Join(fs.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return append([]T(nil), fallback...)
	}
	if err != nil {
		if fs.logg != nil {
			fs.logg.Warn(context.Background(), fmt.Sprintf("reading %s failed, using seed data: %v", name, err))
		}
		return append([]T(nil), fallback...)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if fs.logg != nil {
			fs.logg.Warn(context.Background(), fmt.Sprintf("parsing %s failed, using seed data: %v", name, err))
		}
		return append([]T(nil), fallback...)
	}
	return items
}

func (fs *FileStore) Products(_ context.Context) ([]Product, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]Product(nil), fs.products...), nil
}

func (fs *FileStore) ProductBySKU(_ context.Context, sku string) (*Product, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	for i := range fs.products {
		if fs.products[i].SKU == sku {
			p := fs.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (fs *FileStore) Stores(_ context.Context) ([]Store, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]Store(nil), fs.stores...), nil
}

func (fs *FileStore) StockItems(_ context.Context) ([]StockItem, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]StockItem(nil), fs.stock...), nil
}

func (fs *FileStore) AppendStockItem(_ context.Context, item StockItem) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.stock = append(fs.stock, item)
	if err := fs.persist(stockItemsFile, fs.stock); err != nil {
		fs.stock = fs.stock[:len(fs.stock)-1]
		return err
	}
	return nil
}

func (fs *FileStore) UpdateStockItem(_ context.Context, id string, patch StockPatch) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.stock {
		if fs.stock[i].ID != id {
			continue
		}
		prev := fs.stock[i]
		if patch.Quantity != nil {
			fs.stock[i].Quantity = *patch.Quantity
		}
		if patch.BoxNumber != nil {
			fs.stock[i].BoxNumber = *patch.BoxNumber
		}
		if err := fs.persist(stockItemsFile, fs.stock); err != nil {
			fs.stock[i] = prev
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (fs *FileStore) DeleteStockItem(_ context.Context, id string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.stock {
		if fs.stock[i].ID != id {
			continue
		}
		next := append(append([]StockItem(nil), fs.stock[:i]...), fs.stock[i+1:]...)
		if err := fs.persist(stockItemsFile, next); err != nil {
			return false, err
		}
		fs.stock = next
		return true, nil
	}
	return false, nil
}

func (fs *FileStore) RefillItems(_ context.Context) ([]RefillItem, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]RefillItem(nil), fs.refills...), nil
}

func (fs *FileStore) AppendRefillItem(_ context.Context, item RefillItem) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.refills = append(fs.refills, item)
	if err := fs.persist(refillItemsFile, fs.refills); err != nil {
		fs.refills = fs.refills[:len(fs.refills)-1]
		return err
	}
	return nil
}

func (fs *FileStore) UpdateRefillItem(_ context.Context, id string, patch RefillPatch) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.refills {
		if fs.refills[i].ID != id {
			continue
		}
		prev := fs.refills[i]
		if patch.Quantity != nil {
			fs.refills[i].Quantity = *patch.Quantity
		}
		if patch.BoxNumber != nil {
			fs.refills[i].BoxNumber = *patch.BoxNumber
		}
		if err := fs.persist(refillItemsFile, fs.refills); err != nil {
			fs.refills[i] = prev
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (fs *FileStore) DeleteRefillItem(_ context.Context, id string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.refills {
		if fs.refills[i].ID != id {
			continue
		}
		next := append(append([]RefillItem(nil), fs.refills[:i]...), fs.refills[i+1:]...)
		if err := fs.persist(refillItemsFile, next); err != nil {
			return false, err
		}
		fs.refills = next
		return true, nil
	}
	return false, nil
}

// persist writes the full collection to a temp file and renames it into
// place so readers never observe a partial snapshot.
func (fs *FileStore) persist(name string, collection any) error {
	raw, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	target := filepath.Join(fs.dir, name)
	tmp, err := os.CreateTemp(fs.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
