package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/keepstockhq/keepstock-backend/internal/inventory"
)

// Summary is the dashboard payload for one store.
type Summary struct {
	StoreName      string    `json:"store_name"`
	TotalStock     int       `json:"total_stock"`
	UniqueBoxes    int       `json:"unique_boxes"`
	TotalRefills   int       `json:"total_refills"`
	LatestActivity *Activity `json:"latest_activity,omitempty"`
}

// Activity is the most recent stock or refill event.
type Activity struct {
	Kind      string `json:"kind"`
	BoxNumber string `json:"box_number"`
	Timestamp string `json:"timestamp"`
}

// DepartmentTotal is one row of the stock-by-department report.
type DepartmentTotal struct {
	Department string `json:"department"`
	Quantity   int    `json:"quantity"`
}

// MonthTotal is one row of the refills-by-month report.
type MonthTotal struct {
	Month    string `json:"month"`
	Quantity int    `json:"quantity"`
}

// Service derives report payloads from the store-scoped query layer.
type Service interface {
	Summary(ctx context.Context, storeName string) (*Summary, error)
	StockByDepartment(ctx context.Context, storeName string) ([]DepartmentTotal, error)
	RefillsByMonth(ctx context.Context, storeName string) ([]MonthTotal, error)
	LowStock(ctx context.Context, storeName string, threshold int) ([]inventory.StockItem, error)
}

type service struct {
	inventory inventory.Service
}

// NewService builds the reports service on top of the inventory service.
func NewService(inventorySvc inventory.Service) (Service, error) {
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	return &service{inventory: inventorySvc}, nil
}

func (s *service) Summary(ctx context.Context, storeName string) (*Summary, error) {
	stock, err := s.inventory.StoreStockItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	refills, err := s.inventory.StoreRefillItems(ctx, storeName)
	if err != nil {
		return nil, err
	}
	boxes, err := s.inventory.UniqueBoxNumbers(ctx, storeName)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		StoreName:   storeName,
		UniqueBoxes: len(boxes),
	}
	for _, item := range stock {
		summary.TotalStock += item.Quantity
	}
	for _, item := range refills {
		summary.TotalRefills += item.Quantity
	}
	summary.LatestActivity = latestActivity(stock, refills)
	return summary, nil
}

// latestActivity picks the most recent event across both collections.
// RFC 3339 UTC timestamps compare correctly as strings.
func latestActivity(stock []inventory.StockItem, refills []inventory.RefillItem) *Activity {
	var latest *Activity
	consider := func(kind, boxNumber, timestamp string) {
		if latest == nil || timestamp > latest.Timestamp {
			latest = &Activity{Kind: kind, BoxNumber: boxNumber, Timestamp: timestamp}
		}
	}
	for _, item := range stock {
		consider("stock", item.BoxNumber, item.Timestamp)
	}
	for _, item := range refills {
		consider("refill", item.BoxNumber, item.Timestamp)
	}
	return latest
}

func (s *service) StockByDepartment(ctx context.Context, storeName string) ([]DepartmentTotal, error) {
	totals, err := s.inventory.StockByDepartment(ctx, storeName)
	if err != nil {
		return nil, err
	}

	rows := make([]DepartmentTotal, 0, len(totals))
	for department, quantity := range totals {
		rows = append(rows, DepartmentTotal{Department: department, Quantity: quantity})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })
	return rows, nil
}

// RefillsByMonth groups refill quantity by calendar month, ordered
// chronologically. Events with unparseable timestamps are skipped.
func (s *service) RefillsByMonth(ctx context.Context, storeName string) ([]MonthTotal, error) {
	refills, err := s.inventory.StoreRefillItems(ctx, storeName)
	if err != nil {
		return nil, err
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	totals := make(map[monthKey]int)
	for _, item := range refills {
		ts, err := time.Parse(time.RFC3339, item.Timestamp)
		if err != nil {
			continue
		}
		totals[monthKey{ts.Year(), ts.Month()}] += item.Quantity
	}

	keys := make([]monthKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	rows := make([]MonthTotal, 0, len(keys))
	for _, key := range keys {
		label := fmt.Sprintf("%s %d", key.month.String(), key.year)
		rows = append(rows, MonthTotal{Month: label, Quantity: totals[key]})
	}
	return rows, nil
}

func (s *service) LowStock(ctx context.Context, storeName string, threshold int) ([]inventory.StockItem, error) {
	return s.inventory.LowStockItems(ctx, storeName, threshold)
}
