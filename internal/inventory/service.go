package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
)

// DefaultLowStockThreshold is used when a caller does not override the
// quantity cutoff for low-stock queries.
const DefaultLowStockThreshold = 10

// Service exposes the store-scoped mutation and query surface. Every
// operation takes the store name explicitly; unauthenticated requests
// are rejected before reaching this layer.
type Service interface {
	Products(ctx context.Context) ([]Product, error)
	ProductBySKU(ctx context.Context, sku string) (*Product, error)
	Stores(ctx context.Context) ([]Store, error)

	AddStockItem(ctx context.Context, storeName, sku string, quantity int, boxNumber string) (*StockItem, error)
	UpdateStockItem(ctx context.Context, storeName, id string, patch StockPatch) (bool, error)
	DeleteStockItem(ctx context.Context, storeName, id string) error
	AddRefillItem(ctx context.Context, storeName, boxNumber string, quantity int) (*RefillItem, error)
	UpdateRefillItem(ctx context.Context, storeName, id string, patch RefillPatch) (bool, error)
	DeleteRefillItem(ctx context.Context, storeName, id string) error

	StoreStockItems(ctx context.Context, storeName string) ([]StockItem, error)
	StoreRefillItems(ctx context.Context, storeName string) ([]RefillItem, error)
	SearchStockItems(ctx context.Context, storeName, query string) ([]StockItem, error)
	UniqueBoxNumbers(ctx context.Context, storeName string) ([]string, error)
	NextBoxNumber(ctx context.Context, storeName string) (string, error)
	StockByDepartment(ctx context.Context, storeName string) (map[string]int, error)
	LowStockItems(ctx context.Context, storeName string, threshold int) ([]StockItem, error)
	TotalStockForStore(ctx context.Context, storeName string) (int, error)

	LabelForBox(ctx context.Context, storeName, boxNumber string) (*BoxLabel, error)
	RecentBoxes(ctx context.Context, storeName string, limit int) ([]StockItem, error)
}

// BoxLabel is the printable label payload for one box: its newest stock
// entry joined with the product catalog.
type BoxLabel struct {
	BoxNumber   string `json:"box_number"`
	Quantity    int    `json:"quantity"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Price       int    `json:"price"`
	Rack        string `json:"rack"`
	Department  string `json:"department"`
	StoreName   string `json:"store_name"`
	Timestamp   string `json:"timestamp"`
}

type service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// Option overrides a service collaborator, mainly for tests.
type Option func(*service)

// WithClock substitutes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDGenerator substitutes the record id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *service) { s.newID = gen }
}

// NewService builds the inventory service on top of a record store.
func NewService(repo Repository, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	s := &service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Products(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	return products, nil
}

func (s *service) ProductBySKU(ctx context.Context, sku string) (*Product, error) {
	product, err := s.repo.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Stores(ctx context.Context) ([]Store, error) {
	stores, err := s.repo.Stores(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stores")
	}
	return stores, nil
}

// AddStockItem assigns a fresh id and timestamp and appends the record.
// It deliberately performs no sku or quantity validation; the HTTP
// boundary owns input checks.
func (s *service) AddStockItem(ctx context.Context, storeName, sku string, quantity int, boxNumber string) (*StockItem, error) {
	item := StockItem{
		ID:        s.newID(),
		SKU:       sku,
		Quantity:  quantity,
		BoxNumber: boxNumber,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		StoreName: storeName,
	}
	if err := s.repo.AppendStockItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist stock item")
	}
	return &item, nil
}

// UpdateStockItem merges the patch into the matching record, preserving
// id, timestamp, sku and storeName. Returns false when no record in the
// store has the id; another store's record is indistinguishable from a
// missing one.
func (s *service) UpdateStockItem(ctx context.Context, storeName, id string, patch StockPatch) (bool, error) {
	owned, err := s.ownsStockItem(ctx, storeName, id)
	if err != nil {
		return false, err
	}
	if !owned {
		return false, nil
	}
	ok, err := s.repo.UpdateStockItem(ctx, id, patch)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist stock item")
	}
	return ok, nil
}

// DeleteStockItem removes the matching record. Deleting an id that does
// not exist is a successful no-op: delete is idempotent by contract.
// Records belonging to other stores are left untouched.
func (s *service) DeleteStockItem(ctx context.Context, storeName, id string) error {
	owned, err := s.ownsStockItem(ctx, storeName, id)
	if err != nil {
		return err
	}
	if !owned {
		return nil
	}
	if _, err := s.repo.DeleteStockItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist stock items")
	}
	return nil
}

// ownsStockItem reports whether the record exists and carries the
// store's name.
func (s *service) ownsStockItem(ctx context.Context, storeName, id string) (bool, error) {
	items, err := s.repo.StockItems(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock items")
	}
	for _, item := range items {
		if item.ID == id {
			return item.StoreName == storeName, nil
		}
	}
	return false, nil
}

func (s *service) AddRefillItem(ctx context.Context, storeName, boxNumber string, quantity int) (*RefillItem, error) {
	item := RefillItem{
		ID:        s.newID(),
		BoxNumber: boxNumber,
		Quantity:  quantity,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		StoreName: storeName,
	}
	if err := s.repo.AppendRefillItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist refill item")
	}
	return &item, nil
}

func (s *service) UpdateRefillItem(ctx context.Context, storeName, id string, patch RefillPatch) (bool, error) {
	owned, err := s.ownsRefillItem(ctx, storeName, id)
	if err != nil {
		return false, err
	}
	if !owned {
		return false, nil
	}
	ok, err := s.repo.UpdateRefillItem(ctx, id, patch)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist refill item")
	}
	return ok, nil
}

// DeleteRefillItem is idempotent and store-scoped in the same way as
// DeleteStockItem.
func (s *service) DeleteRefillItem(ctx context.Context, storeName, id string) error {
	owned, err := s.ownsRefillItem(ctx, storeName, id)
	if err != nil {
		return err
	}
	if !owned {
		return nil
	}
	if _, err := s.repo.DeleteRefillItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist refill items")
	}
	return nil
}

func (s *service) ownsRefillItem(ctx context.Context, storeName, id string) (bool, error) {
	items, err := s.repo.RefillItems(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load refill items")
	}
	for _, item := range items {
		if item.ID == id {
			return item.StoreName == storeName, nil
		}
	}
	return false, nil
}

func (s *service) StoreStockItems(ctx context.Context, storeName string) ([]StockItem, error) {
	items, err := s.repo.StockItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock items")
	}
	filtered := make([]StockItem, 0, len(items))
	for _, item := range items {
		if item.StoreName == storeName {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *service) StoreRefillItems(ctx context.Context, storeName string) ([]RefillItem, error) {
	items, err := s.repo.RefillItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load refill items")
	}
	filtered := make([]RefillItem, 0, len(items))
	for _, item := range items {
		if item.StoreName == storeName {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// SearchStockItems matches the query case-insensitively against the
// sku, box number, joined product name, and joined department. A blank
// query returns the unfiltered store set.
func (s *service) SearchStockItems(ctx context.Context, storeName, query string) ([]StockItem, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	productsBySKU := make(map[string]Product, len(products))
	for _, p := range products {
		productsBySKU[p.SKU] = p
	}

	matched := make([]StockItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.SKU), query) ||
			strings.Contains(strings.ToLower(item.BoxNumber), query) {
			matched = append(matched, item)
			continue
		}
		if p, ok := productsBySKU[item.SKU]; ok {
			if strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Department), query) {
				matched = append(matched, item)
			}
		}
	}
	return matched, nil
}

// UniqueBoxNumbers returns the distinct box numbers of the store's
// stock items in first-seen order.
func (s *service) UniqueBoxNumbers(ctx context.Context, storeName string) ([]string, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	boxes := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.BoxNumber]; ok {
			continue
		}
		seen[item.BoxNumber] = struct{}{}
		boxes = append(boxes, item.BoxNumber)
	}
	return boxes, nil
}

// NextBoxNumber scans the box numbers of all stock items, across
// stores, and allocates the next sequential number for the store.
func (s *service) NextBoxNumber(ctx context.Context, storeName string) (string, error) {
	items, err := s.repo.StockItems(ctx)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock items")
	}
	existing := make([]string, 0, len(items))
	for _, item := range items {
		existing = append(existing, item.BoxNumber)
	}
	return NextBoxNumber(storeName, existing), nil
}

// StockByDepartment sums quantities grouped by the joined product's
// department. Items whose sku has no catalog entry are excluded.
func (s *service) StockByDepartment(ctx context.Context, storeName string) (map[string]int, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	productsBySKU := make(map[string]Product, len(products))
	for _, p := range products {
		productsBySKU[p.SKU] = p
	}

	totals := make(map[string]int)
	for _, item := range items {
		if p, ok := productsBySKU[item.SKU]; ok {
			totals[p.Department] += item.Quantity
		}
	}
	return totals, nil
}

func (s *service) LowStockItems(ctx context.Context, storeName string, threshold int) ([]StockItem, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	low := make([]StockItem, 0)
	for _, item := range items {
		if item.Quantity <= threshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *service) TotalStockForStore(ctx context.Context, storeName string) (int, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// LabelForBox returns the printable label for a box: the newest stock
// entry for that box joined with its product. The box number matches
// case-insensitively.
func (s *service) LabelForBox(ctx context.Context, storeName, boxNumber string) (*BoxLabel, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}

	var newest *StockItem
	for i := range items {
		if !strings.EqualFold(items[i].BoxNumber, boxNumber) {
			continue
		}
		if newest == nil || items[i].Timestamp > newest.Timestamp {
			newest = &items[i]
		}
	}
	if newest == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no stock items for box")
	}

	product, err := s.repo.ProductBySKU(ctx, newest.SKU)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found for box")
	}

	return &BoxLabel{
		BoxNumber:   newest.BoxNumber,
		Quantity:    newest.Quantity,
		SKU:         newest.SKU,
		ProductName: product.Name,
		Price:       product.Price,
		Rack:        product.Rack,
		Department:  product.Department,
		StoreName:   newest.StoreName,
		Timestamp:   newest.Timestamp,
	}, nil
}

// RecentBoxes returns the first stock entry for each distinct box in
// insertion order, capped at limit.
func (s *service) RecentBoxes(ctx context.Context, storeName string, limit int) ([]StockItem, error) {
	items, err := s.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	recent := make([]StockItem, 0, limit)
	for _, item := range items {
		if _, ok := seen[item.BoxNumber]; ok {
			continue
		}
		seen[item.BoxNumber] = struct{}{}
		recent = append(recent, item)
		if limit > 0 && len(recent) >= limit {
			break
		}
	}
	return recent, nil
}
