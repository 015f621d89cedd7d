// Package ledger owns the durable order records: receipts, pending
// orders, order and item history, cash transactions, complaints and
// returns, one delimited-record file each under the data root.
//
// Receipts and history rows are append-only; a row, once written, is
// never rewritten. Pending orders are a keyed collection maintained by
// whole-file rewrite (load, replace or append by order id, write back
// atomically). Loaders are tolerant: a malformed or oversized line is
// logged and skipped, never fatal, so one corrupt row cannot block the
// rest of a file.
package ledger

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/roach88/kopi/internal/codec"
	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/datafile"
	"github.com/roach88/kopi/internal/model"
)

const (
	pendingFile    = "pending_orders.txt"
	receiptsFile   = "receipts.txt"
	ordersFile     = "order_history.txt"
	itemsFile      = "item_history.txt"
	cashFile       = "cash_transactions.txt"
	complaintsFile = "complaints.txt"
	returnsFile    = "returns.txt"
)

// ErrNoSuchOrder is returned when an order id is not in the pending
// file.
var ErrNoSuchOrder = errors.New("no such pending order")

// Ledger reads and writes the order record files.
type Ledger struct {
	cfg *config.Config
}

// NewLedger creates a ledger over cfg.DataDir.
func NewLedger(cfg *config.Config) *Ledger {
	return &Ledger{cfg: cfg}
}

func (l *Ledger) path(name string) string {
	return filepath.Join(l.cfg.DataDir, name)
}

// loadRecords decodes every line of a ledger file, skipping lines that
// fail to decode.
func loadRecords[T any](path string, decode func(string) (T, error)) ([]T, error) {
	var out []T
	lineNo := 0
	err := datafile.ScanLines(path, codec.MaxLineLen, func(line string) error {
		lineNo++
		r, err := decode(line)
		if err != nil {
			if codec.IsMalformed(err) {
				slog.Warn("skipping malformed ledger line",
					"file", path, "line", lineNo, "error", err)
				return nil
			}
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendReceipt writes one receipt row. Receipts are created exactly
// once per completed order and never rewritten.
func (l *Ledger) AppendReceipt(r *model.Receipt) error {
	return datafile.AppendLine(l.path(receiptsFile), codec.EncodeReceipt(r))
}

// LoadReceipts returns every decodable receipt row in file order.
func (l *Ledger) LoadReceipts() ([]*model.Receipt, error) {
	return loadRecords(l.path(receiptsFile), codec.DecodeReceipt)
}

// AppendOrderRecord writes one order-history row.
func (l *Ledger) AppendOrderRecord(r *model.OrderRecord) error {
	return datafile.AppendLine(l.path(ordersFile), codec.EncodeOrderRecord(r))
}

// LoadOrderRecords returns the order history.
func (l *Ledger) LoadOrderRecords() ([]*model.OrderRecord, error) {
	return loadRecords(l.path(ordersFile), codec.DecodeOrderRecord)
}

// AppendItemRecord writes one item-history row.
func (l *Ledger) AppendItemRecord(r *model.ItemRecord) error {
	return datafile.AppendLine(l.path(itemsFile), codec.EncodeItemRecord(r))
}

// LoadItemRecords returns the item history.
func (l *Ledger) LoadItemRecords() ([]*model.ItemRecord, error) {
	return loadRecords(l.path(itemsFile), codec.DecodeItemRecord)
}

// AppendCashTransaction writes one drawer-movement row.
func (l *Ledger) AppendCashTransaction(t *model.CashTransaction) error {
	return datafile.AppendLine(l.path(cashFile), codec.EncodeCashTransaction(t))
}

// LoadCashTransactions returns the drawer history.
func (l *Ledger) LoadCashTransactions() ([]*model.CashTransaction, error) {
	return loadRecords(l.path(cashFile), codec.DecodeCashTransaction)
}

// AppendComplaint writes one complaint row.
func (l *Ledger) AppendComplaint(c *model.Complaint) error {
	return datafile.AppendLine(l.path(complaintsFile), codec.EncodeComplaint(c))
}

// LoadComplaints returns every decodable complaint.
func (l *Ledger) LoadComplaints() ([]*model.Complaint, error) {
	return loadRecords(l.path(complaintsFile), codec.DecodeComplaint)
}

// AppendReturn writes one return-transaction row.
func (l *Ledger) AppendReturn(t *model.ReturnTransaction) error {
	return datafile.AppendLine(l.path(returnsFile), codec.EncodeReturn(t))
}

// LoadReturns returns the return history.
func (l *Ledger) LoadReturns() ([]*model.ReturnTransaction, error) {
	return loadRecords(l.path(returnsFile), codec.DecodeReturn)
}
