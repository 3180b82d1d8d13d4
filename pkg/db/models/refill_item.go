package models

// RefillItem is an append-only refill event against an existing box.
type RefillItem struct {
	ID        string `gorm:"column:id;primaryKey"`
	BoxNumber string `gorm:"column:box_number;not null;index"`
	Quantity  int    `gorm:"column:quantity;not null"`
	Timestamp string `gorm:"column:timestamp;not null"`
	StoreName string `gorm:"column:store_name;not null;index"`
}

func (RefillItem) TableName() string { return "refill_items" }
