// Package fulfill commits completed orders: it composes catalog
// validation and the atomic stock deduction with the ledger writes that
// make the sale durable (receipt, pending order, history rows, drawer
// movement).
//
// A commit is one logical unit from the caller's point of view.
// Business-rule rejections surface before anything is deducted or
// written; an I/O failure after the deduction surfaces as a persistence
// error for the caller to retry, with in-memory state untouched.
package fulfill

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roach88/kopi/internal/catalog"
	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/ledger"
	"github.com/roach88/kopi/internal/model"
)

// CustomerContext carries the checkout-time facts that are not part of
// the order itself.
type CustomerContext struct {
	CustomerName string
	CashierID    string
	OrderType    string
	CashPaid     decimal.Decimal
}

// Result is a successful commit.
type Result struct {
	Receipt *model.Receipt

	// RefillAlertsPending is set when the deduction left at least one
	// product at or below the refill threshold. The engine only flags
	// it; surfacing the alert list is the caller's business.
	RefillAlertsPending bool
}

// Engine commits orders against a catalog store and an order ledger.
type Engine struct {
	catalog *catalog.Store
	ledger  *ledger.Ledger
	cfg     *config.Config

	// Now and NewID are injectable for deterministic tests.
	Now   func() time.Time
	NewID func() string
}

// NewEngine wires an engine to its store and ledger.
func NewEngine(cfg *config.Config, store *catalog.Store, led *ledger.Ledger) *Engine {
	return &Engine{
		catalog: store,
		ledger:  led,
		cfg:     cfg,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// Commit turns a built order into a committed sale:
//
//  1. validate stock and ingredients, naming the offending item on
//     rejection;
//  2. run the catalog checkout, which deducts atomically;
//  3. write the receipt;
//  4. upsert the pending order with status PAID and value-copied lines;
//  5. append order, item and cash history rows.
//
// Rejections in step 1 happen before any mutation and are not retried
// here. Failures from step 3 on are persistence errors: the sale has
// deducted stock, and the caller decides whether to retry the ledger
// writes.
func (e *Engine) Commit(o *model.Order, cust CustomerContext) (*Result, error) {
	if err := e.catalog.ValidateOrder(o); err != nil {
		slog.Info("order rejected", "order", o.ID, "reason", err)
		return nil, err
	}

	total := o.Total()
	if cust.CashPaid.LessThan(total) {
		return nil, &catalog.ValidationError{
			Reason: "cash paid " + cust.CashPaid.String() + " is below total " + total.String(),
		}
	}

	if err := e.catalog.Checkout(o); err != nil {
		return nil, err
	}

	now := e.Now()
	po := model.NewPendingOrder(o, cust.CustomerName, cust.OrderType, cust.CashierID, now)
	if err := po.Advance(model.StatusPaid); err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		ReceiptID:    e.NewID(),
		OrderID:      o.ID,
		CustomerName: cust.CustomerName,
		CashierID:    cust.CashierID,
		IssuedAt:     now,
		TotalAmount:  po.TotalAmount,
		CashPaid:     cust.CashPaid,
		Change:       cust.CashPaid.Sub(po.TotalAmount),
	}
	receipt.Content = RenderReceipt(e.cfg, receipt, po)

	if err := e.ledger.AppendReceipt(receipt); err != nil {
		return nil, err
	}
	if err := e.ledger.SavePendingOrder(po); err != nil {
		return nil, err
	}
	if err := e.appendHistory(po, receipt, cust); err != nil {
		return nil, err
	}

	slog.Info("order committed",
		"order", o.ID, "receipt", receipt.ReceiptID, "total", receipt.TotalAmount.String())
	return &Result{
		Receipt:             receipt,
		RefillAlertsPending: len(e.catalog.RefillAlerts()) > 0,
	}, nil
}

func (e *Engine) appendHistory(po *model.PendingOrder, receipt *model.Receipt, cust CustomerContext) error {
	if err := e.ledger.AppendOrderRecord(&model.OrderRecord{
		OrderID:      po.OrderID,
		CustomerName: po.CustomerName,
		OrderTime:    po.OrderTime,
		TotalAmount:  po.TotalAmount,
		Status:       po.Status,
		OrderType:    po.OrderType,
	}); err != nil {
		return err
	}
	for i := range po.Lines {
		l := &po.Lines[i]
		if err := e.ledger.AppendItemRecord(&model.ItemRecord{
			OrderID:     po.OrderID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
			Subtotal:    l.Subtotal(),
			SizeName:    l.SizeName,
			SugarLevel:  l.SugarLevel,
		}); err != nil {
			return err
		}
	}
	return e.ledger.AppendCashTransaction(&model.CashTransaction{
		TransactionID: e.NewID(),
		OrderID:       po.OrderID,
		CashierID:     cust.CashierID,
		Time:          po.OrderTime,
		Amount:        receipt.CashPaid,
		Kind:          model.CashSale,
	})
}
