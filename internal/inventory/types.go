package inventory

// Product is read-only catalog data, seeded once and never mutated.
type Product struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	Rack       string `json:"rack"`
	Department string `json:"department"`
}

// StockItem records a quantity of one SKU placed into a numbered box.
type StockItem struct {
	ID        string `json:"id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	BoxNumber string `json:"boxNumber"`
	Timestamp string `json:"timestamp"`
	StoreName string `json:"storeName"`
}

// RefillItem is an append-only event recording quantity added to an
// existing box. It never decrements stock; it correlates with stock
// items only by the boxNumber string.
type RefillItem struct {
	ID        string `json:"id"`
	BoxNumber string `json:"boxNumber"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
	StoreName string `json:"storeName"`
}

// Store describes a known store location.
type Store struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StockPatch carries the mutable stock item fields. Nil means leave as is.
type StockPatch struct {
	Quantity  *int
	BoxNumber *string
}

// RefillPatch carries the mutable refill item fields.
type RefillPatch struct {
	Quantity  *int
	BoxNumber *string
}
