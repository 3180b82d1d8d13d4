package models

// StockItem is one stock record placed into a box. The timestamp is
// stored as the RFC 3339 string the API exposes so file and database
// backends round-trip identically.
type StockItem struct {
	ID        string `gorm:"column:id;primaryKey"`
	SKU       string `gorm:"column:sku;not null;index"`
	Quantity  int    `gorm:"column:quantity;not null"`
	BoxNumber string `gorm:"column:box_number;not null;index"`
	Timestamp string `gorm:"column:timestamp;not null"`
	StoreName string `gorm:"column:store_name;not null;index"`
}

func (StockItem) TableName() string { return "stock_items" }
