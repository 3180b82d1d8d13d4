package models

// Product is the read-only catalog row.
type Product struct {
	SKU        string `gorm:"column:sku;primaryKey"`
	Name       string `gorm:"column:name;not null"`
	Price      int    `gorm:"column:price;not null"`
	Rack       string `gorm:"column:rack;not null"`
	Department string `gorm:"column:department;not null"`
}

func (Product) TableName() string { return "products" }
