package catalog

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/roach88/kopi/internal/datafile"
	"github.com/roach88/kopi/internal/model"
)

// productDemand aggregates requested servings per product across all of
// an order's line items, preserving first-seen order so rejection
// messages name the earliest offending product.
type productDemand struct {
	ids   []string
	count map[string]int
}

func aggregateStock(o *model.Order) productDemand {
	d := productDemand{count: map[string]int{}}
	for i := range o.Items {
		it := &o.Items[i]
		if _, seen := d.count[it.ProductID]; !seen {
			d.ids = append(d.ids, it.ProductID)
		}
		d.count[it.ProductID] += it.Quantity
	}
	return d
}

// ingredientDemand aggregates recipe consumption per ingredient, in
// deterministic traversal order (items in order, recipe keys sorted).
type ingredientDemand struct {
	names  []string
	amount map[string]decimal.Decimal
}

func aggregateIngredients(products []model.Product, o *model.Order) ingredientDemand {
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	d := ingredientDemand{amount: map[string]decimal.Decimal{}}
	for i := range o.Items {
		it := &o.Items[i]
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(p.Recipe))
		for ingredient := range p.Recipe {
			keys = append(keys, ingredient)
		}
		sort.Strings(keys)
		qty := decimal.NewFromInt(int64(it.Quantity))
		for _, ingredient := range keys {
			if _, seen := d.amount[ingredient]; !seen {
				d.names = append(d.names, ingredient)
				d.amount[ingredient] = decimal.Zero
			}
			d.amount[ingredient] = d.amount[ingredient].Add(p.Recipe[ingredient].Mul(qty))
		}
	}
	return d
}

// checkStock validates aggregated product demand against stock. Caller
// holds at least the read lock.
func checkStock(products []model.Product, o *model.Order) *InsufficientStockError {
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	demand := aggregateStock(o)
	for _, id := range demand.ids {
		p, ok := byID[id]
		if !ok {
			return &InsufficientStockError{ProductID: id, ProductName: id, Requested: demand.count[id]}
		}
		if p.Stock < demand.count[id] {
			return &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   demand.count[id],
				Available:   p.Stock,
			}
		}
	}
	return nil
}

// checkInventory validates aggregated ingredient demand against the
// inventory, reporting the first insufficient ingredient.
func checkInventory(products []model.Product, inventory map[string]model.InventoryItem, o *model.Order) *InsufficientIngredientError {
	demand := aggregateIngredients(products, o)
	for _, name := range demand.names {
		item, ok := inventory[name]
		needed := demand.amount[name]
		if !ok {
			return &InsufficientIngredientError{Ingredient: name, Needed: needed, Available: decimal.Zero}
		}
		if item.Quantity.LessThan(needed) {
			return &InsufficientIngredientError{
				Ingredient: name,
				Needed:     needed,
				Available:  item.Quantity,
				Unit:       item.Unit,
			}
		}
	}
	return nil
}

// IsStockSufficient reports whether every product in the order has
// enough stock for its aggregated requested quantity.
func (s *Store) IsStockSufficient(o *model.Order) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return checkStock(s.products, o) == nil
}

// IsInventorySufficient reports whether the inventory covers the
// order's aggregated recipe demand.
func (s *Store) IsInventorySufficient(o *model.Order) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return checkInventory(s.products, s.inventory, o) == nil
}

// ValidateOrder runs both sufficiency checks and returns the specific
// rejection, naming the offending product or ingredient, or nil.
func (s *Store) ValidateOrder(o *model.Order) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(o.Items) == 0 {
		return invalidf("order has no items")
	}
	if err := checkStock(s.products, o); err != nil {
		return err
	}
	if err := checkInventory(s.products, s.inventory, o); err != nil {
		return err
	}
	return nil
}

// Checkout is the atomic reservation-and-deduction transaction. Under
// the cross-process advisory lock it refreshes the catalog from disk,
// re-validates both sufficiency conditions, and only then deducts
// product stock and aggregated ingredient quantities and persists the
// updated catalog. On any rejection or write failure nothing is
// deducted: partial deduction is never observable, in memory or on
// disk.
func (s *Store) Checkout(o *model.Order) error {
	if len(o.Items) == 0 {
		return invalidf("order has no items")
	}

	release, err := datafile.Lock(s.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	// Fresh view: another process may have sold stock since our last
	// load. No legacy normalization here; Load already persisted it,
	// so the file is authoritative as written.
	products, err := loadOrSeed(s.path(productsFile), defaultProducts)
	if err != nil {
		return err
	}
	inventory, err := loadOrSeed(s.path(inventoryFile), defaultInventory)
	if err != nil {
		return err
	}
	for name, item := range inventory {
		item.Name = name
		inventory[name] = item
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.inventory = inventory

	if serr := checkStock(s.products, o); serr != nil {
		return serr
	}
	if ierr := checkInventory(s.products, s.inventory, o); ierr != nil {
		return ierr
	}

	// Deduct on copies; the cache is swapped only after both files are
	// written.
	nextProducts := append([]model.Product(nil), s.products...)
	byID := make(map[string]int, len(nextProducts))
	for i := range nextProducts {
		byID[nextProducts[i].ID] = i
	}
	stockDemand := aggregateStock(o)
	for _, id := range stockDemand.ids {
		nextProducts[byID[id]].Stock -= stockDemand.count[id]
	}

	nextInventory := cloneInventory(s.inventory)
	ingDemand := aggregateIngredients(s.products, o)
	for _, name := range ingDemand.names {
		item := nextInventory[name]
		item.Deduct(ingDemand.amount[name])
		nextInventory[name] = item
	}

	// Keep a pre-image so a failed second write can restore the first.
	preImage, err := json.MarshalIndent(s.products, "", "  ")
	if err != nil {
		return &datafile.PersistenceError{Op: "encode", Path: s.path(productsFile), Err: err}
	}

	if err := writeJSON(s.path(productsFile), nextProducts); err != nil {
		return err
	}
	if err := writeJSON(s.path(inventoryFile), nextInventory); err != nil {
		if rerr := datafile.WriteAtomic(s.path(productsFile), append(preImage, '\n')); rerr != nil {
			slog.Error("failed to restore products file after inventory write failure", "error", rerr)
		}
		return err
	}

	s.products = nextProducts
	s.inventory = nextInventory
	o.Paid = true
	slog.Info("checkout committed", "order", o.ID, "items", len(o.Items), "total", o.Total().String())
	return nil
}

// AlertLevel classifies a refill alert.
type AlertLevel string

const (
	// AlertCritical means the product is sold out.
	AlertCritical AlertLevel = "CRITICAL"

	// AlertWarning means stock is at or below the refill threshold.
	AlertWarning AlertLevel = "WARNING"
)

// RefillAlert flags a product needing restocking.
type RefillAlert struct {
	ProductID   string
	ProductName string
	Stock       int
	Needed      int // servings to reach MaxStock
	Level       AlertLevel
}

// RefillAlerts lists products that are sold out (critical) or at or
// below the refill threshold (warning), in catalog order.
func (s *Store) RefillAlerts() []RefillAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []RefillAlert
	for i := range s.products {
		p := &s.products[i]
		var level AlertLevel
		switch {
		case p.Stock == 0:
			level = AlertCritical
		case p.Stock <= s.cfg.RefillThreshold:
			level = AlertWarning
		default:
			continue
		}
		out = append(out, RefillAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			Needed:      s.cfg.MaxStock - p.Stock,
			Level:       level,
		})
	}
	return out
}
