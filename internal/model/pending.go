package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle of a pending order. Transitions are
// monotonic and Completed is terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusPreparing OrderStatus = "PREPARING"
	StatusCompleted OrderStatus = "COMPLETED"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusPaid:      1,
	StatusPreparing: 2,
	StatusCompleted: 3,
}

// ParseOrderStatus converts a stored status string, rejecting unknown values.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := statusRank[st]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

// OrderLine is a value-copied snapshot of an OrderItem. Once written to
// the ledger it never changes, even if the source product is edited.
type OrderLine struct {
	ProductName    string
	Price          decimal.Decimal
	Quantity       int
	Temperature    string
	SugarLevel     int
	AddOns         string
	AddOnCost      decimal.Decimal
	SpecialRequest string
	SizeName       string
	SizeCost       decimal.Decimal
}

// Subtotal mirrors OrderItem.Subtotal for the snapshot.
func (l *OrderLine) Subtotal() decimal.Decimal {
	per := l.Price.Add(l.SizeCost).Add(l.AddOnCost)
	return per.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PendingOrder is a placed order awaiting preparation and completion,
// keyed by OrderID in the pending-orders ledger file.
type PendingOrder struct {
	OrderID      string
	CustomerName string
	OrderTime    time.Time
	Lines        []OrderLine
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	OrderType    string
	CashierID    string
}

// NewPendingOrder snapshots an order's items by value and derives
// TotalAmount from the copied lines.
func NewPendingOrder(o *Order, customer, orderType, cashierID string, at time.Time) *PendingOrder {
	po := &PendingOrder{
		OrderID:      o.ID,
		CustomerName: customer,
		OrderTime:    at,
		Status:       StatusPending,
		OrderType:    orderType,
		CashierID:    cashierID,
	}
	for i := range o.Items {
		it := &o.Items[i]
		po.Lines = append(po.Lines, OrderLine{
			ProductName:    it.ProductName,
			Price:          it.UnitPrice,
			Quantity:       it.Quantity,
			Temperature:    it.Temperature,
			SugarLevel:     it.SugarLevel,
			AddOns:         it.AddOns,
			AddOnCost:      it.AddOnCost,
			SpecialRequest: it.SpecialRequest,
			SizeName:       it.SizeName,
			SizeCost:       it.SizeCost,
		})
	}
	po.TotalAmount = po.SumLines()
	return po
}

// SumLines recomputes the total from the line snapshots.
func (po *PendingOrder) SumLines() decimal.Decimal {
	total := decimal.Zero
	for i := range po.Lines {
		total = total.Add(po.Lines[i].Subtotal())
	}
	return total
}

// Advance moves the order to a later status. Moving backwards or past
// Completed is rejected; advancing to the current status is a no-op.
func (po *PendingOrder) Advance(to OrderStatus) error {
	from, ok := statusRank[po.Status]
	if !ok {
		return fmt.Errorf("order %s has unknown status %q", po.OrderID, po.Status)
	}
	target, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("unknown order status %q", to)
	}
	if target < from {
		return fmt.Errorf("cannot move order %s from %s back to %s", po.OrderID, po.Status, to)
	}
	po.Status = to
	return nil
}
