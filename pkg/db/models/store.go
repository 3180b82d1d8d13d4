package models

// Store is a known store location; its name is the partition key for
// all inventory data.
type Store struct {
	Code string `gorm:"column:code;primaryKey"`
	Name string `gorm:"column:name;not null;uniqueIndex"`
}

func (Store) TableName() string { return "stores" }
