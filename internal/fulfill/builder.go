package fulfill

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/kopi/internal/catalog"
	"github.com/roach88/kopi/internal/model"
)

// BuildState is the lifecycle of an order being assembled at the till.
type BuildState string

const (
	StateNew                 BuildState = "NEW"
	StateBuilding            BuildState = "BUILDING"
	StateValidating          BuildState = "VALIDATING"
	StateCommitted           BuildState = "COMMITTED"
	StateRejectedStock       BuildState = "REJECTED_STOCK"
	StateRejectedIngredients BuildState = "REJECTED_INGREDIENTS"
)

// Builder assembles an order and tracks its build state. A committed
// order continues its life as a PendingOrder in the ledger; a rejected
// builder can be edited and committed again.
type Builder struct {
	order model.Order
	state BuildState
}

// NewBuilder starts an empty order with a fresh id.
func NewBuilder() *Builder {
	return &Builder{
		order: model.Order{ID: uuid.NewString()},
		state: StateNew,
	}
}

// State returns the current build state.
func (b *Builder) State() BuildState { return b.state }

// Order returns the order under construction.
func (b *Builder) Order() *model.Order { return &b.order }

// AddItem appends a line item. Adding to a committed order is an error.
func (b *Builder) AddItem(it model.OrderItem) error {
	if b.state == StateCommitted {
		return fmt.Errorf("order %s is already committed", b.order.ID)
	}
	if it.Quantity <= 0 {
		return &catalog.ValidationError{Reason: fmt.Sprintf("quantity must be positive, got %d", it.Quantity)}
	}
	b.order.AddItem(it)
	b.state = StateBuilding
	return nil
}

// RemoveItem drops the line at index.
func (b *Builder) RemoveItem(index int) error {
	if b.state == StateCommitted {
		return fmt.Errorf("order %s is already committed", b.order.ID)
	}
	b.order.RemoveItem(index)
	b.state = StateBuilding
	return nil
}

// Total is the running order total.
func (b *Builder) Total() string {
	return b.order.Total().String()
}

// Commit validates and commits the order through the engine, moving the
// builder to COMMITTED or the matching rejected state.
func (b *Builder) Commit(e *Engine, cust CustomerContext) (*Result, error) {
	b.state = StateValidating
	res, err := e.Commit(&b.order, cust)
	switch {
	case err == nil:
		b.state = StateCommitted
	case catalog.IsInsufficientStock(err):
		b.state = StateRejectedStock
	case catalog.IsInsufficientIngredient(err):
		b.state = StateRejectedIngredients
	default:
		// Persistence and validation failures leave the order editable.
		b.state = StateBuilding
	}
	return res, err
}
