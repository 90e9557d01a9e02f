package catalog

import "time"

// Category carries the estimated unit cost used for inventory valuation.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UnitCost  float64   `json:"unitCost"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
