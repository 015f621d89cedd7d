package model

import "github.com/shopspring/decimal"

// OrderItem is one line of an in-memory order being built at the till.
type OrderItem struct {
	ProductID      string
	ProductName    string
	UnitPrice      decimal.Decimal
	Quantity       int
	Temperature    string
	SugarLevel     int // 0-100
	AddOns         string
	AddOnCost      decimal.Decimal
	SpecialRequest string
	SizeName       string
	SizeCost       decimal.Decimal
}

// Subtotal is (unit price + size cost + add-on cost) x quantity.
func (it *OrderItem) Subtotal() decimal.Decimal {
	per := it.UnitPrice.Add(it.SizeCost).Add(it.AddOnCost)
	return per.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order is transient and in-memory only; it is never persisted as such.
// A committed order survives as a PendingOrder plus ledger rows.
type Order struct {
	ID    string
	Items []OrderItem
	Paid  bool
}

// AddItem appends a line item.
func (o *Order) AddItem(it OrderItem) {
	o.Items = append(o.Items, it)
}

// RemoveItem deletes the line at index; out-of-range indexes are ignored.
func (o *Order) RemoveItem(index int) {
	if index < 0 || index >= len(o.Items) {
		return
	}
	o.Items = append(o.Items[:index], o.Items[index+1:]...)
}

// Total is always the sum of line subtotals, recomputed on every call.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}
