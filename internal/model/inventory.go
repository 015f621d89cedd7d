package model

import "github.com/shopspring/decimal"

// InventoryItem is a raw ingredient tracked by name. Quantity never goes
// negative: Deduct clamps at zero.
type InventoryItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// Refill adds amount to the item's quantity.
func (i *InventoryItem) Refill(amount decimal.Decimal) {
	i.Quantity = i.Quantity.Add(amount)
}

// Deduct subtracts amount, clamping the result at zero.
func (i *InventoryItem) Deduct(amount decimal.Decimal) {
	i.Quantity = i.Quantity.Sub(amount)
	if i.Quantity.IsNegative() {
		i.Quantity = decimal.Zero
	}
}
