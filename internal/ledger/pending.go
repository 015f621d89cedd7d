package ledger

import (
	"log/slog"
	"strings"

	"github.com/roach88/kopi/internal/codec"
	"github.com/roach88/kopi/internal/datafile"
	"github.com/roach88/kopi/internal/model"
)

// SavePendingOrder upserts a pending order by order id: the full list is
// loaded, the matching entry replaced (or the order appended), and the
// whole file rewritten atomically. Runs under the data root's advisory
// lock so two processes cannot lose each other's upserts.
func (l *Ledger) SavePendingOrder(po *model.PendingOrder) error {
	release, err := datafile.Lock(l.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	orders, err := l.loadAllLocked()
	if err != nil {
		return err
	}
	replaced := false
	for i := range orders {
		if orders[i].OrderID == po.OrderID {
			orders[i] = po
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, po)
	}
	return l.rewriteLocked(orders)
}

// MarkCompleted advances a pending order to COMPLETED. Calling it again
// for an already completed order is a no-op, not an error.
func (l *Ledger) MarkCompleted(orderID string) error {
	release, err := datafile.Lock(l.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	orders, err := l.loadAllLocked()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].OrderID != orderID {
			continue
		}
		if orders[i].Status == model.StatusCompleted {
			return nil
		}
		if err := orders[i].Advance(model.StatusCompleted); err != nil {
			return err
		}
		slog.Info("order completed", "order", orderID)
		return l.rewriteLocked(orders)
	}
	return ErrNoSuchOrder
}

// DeletePendingOrder physically removes an order from the pending file.
// This is the administrative purge; normal flow only ever marks orders
// completed.
func (l *Ledger) DeletePendingOrder(orderID string) error {
	release, err := datafile.Lock(l.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	orders, err := l.loadAllLocked()
	if err != nil {
		return err
	}
	kept := orders[:0]
	for _, po := range orders {
		if po.OrderID != orderID {
			kept = append(kept, po)
		}
	}
	if len(kept) == len(orders) {
		return ErrNoSuchOrder
	}
	slog.Info("pending order purged", "order", orderID)
	return l.rewriteLocked(kept)
}

// LoadActive returns pending orders that are not yet completed, in file
// order.
func (l *Ledger) LoadActive() ([]*model.PendingOrder, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, po := range all {
		if po.Status != model.StatusCompleted {
			active = append(active, po)
		}
	}
	return active, nil
}

// LoadAll returns every decodable pending order, completed ones
// included.
func (l *Ledger) LoadAll() ([]*model.PendingOrder, error) {
	return l.loadAllLocked()
}

func (l *Ledger) loadAllLocked() ([]*model.PendingOrder, error) {
	return loadRecords(l.path(pendingFile), codec.DecodePendingOrder)
}

// rewriteLocked writes the whole pending list back via temp-and-rename.
// Caller holds the advisory lock.
func (l *Ledger) rewriteLocked(orders []*model.PendingOrder) error {
	var b strings.Builder
	for _, po := range orders {
		b.WriteString(codec.EncodePendingOrder(po))
		b.WriteByte('\n')
	}
	return datafile.WriteAtomic(l.path(pendingFile), []byte(b.String()))
}
