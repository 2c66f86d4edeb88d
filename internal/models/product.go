package models

import (
	"math"
	"time"
)

// The durable backend stores quantities as 32-bit integers. Both backends
// reject values outside this range.
const (
	MaxQuantity = math.MaxInt32
	MinQuantity = math.MinInt32
)

// Product represents a stock-keeping item. Quantity may go negative; nothing
// in the system enforces a floor.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       *string   `json:"sku,omitempty"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
