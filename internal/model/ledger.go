package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the durable proof of a completed sale. Content is the
// rendered receipt text exactly as printed, stored losslessly; it may
// contain newlines and any characters.
type Receipt struct {
	ReceiptID    string
	OrderID      string
	CustomerName string
	CashierID    string
	IssuedAt     time.Time
	TotalAmount  decimal.Decimal
	CashPaid     decimal.Decimal
	Change       decimal.Decimal
	Content      string
}

// OrderRecord is the flat per-order history row.
type OrderRecord struct {
	OrderID      string
	CustomerName string
	OrderTime    time.Time
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	OrderType    string
}

// ItemRecord is the flat per-line-item history row.
type ItemRecord struct {
	OrderID     string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	SizeName    string
	SugarLevel  int
}

// CashTransactionKind distinguishes drawer movements.
type CashTransactionKind string

const (
	CashSale   CashTransactionKind = "SALE"
	CashRefund CashTransactionKind = "REFUND"
)

// CashTransaction is one drawer movement.
type CashTransaction struct {
	TransactionID string
	OrderID       string
	CashierID     string
	Time          time.Time
	Amount        decimal.Decimal
	Kind          CashTransactionKind
}

// Complaint is a customer complaint row. Text may contain anything.
type Complaint struct {
	ComplaintID  string
	Time         time.Time
	CustomerName string
	Text         string
	Status       string
}

// ReturnTransaction records a refunded order.
type ReturnTransaction struct {
	ReturnID  string
	OrderID   string
	Time      time.Time
	Amount    decimal.Decimal
	Reason    string
	CashierID string
}
