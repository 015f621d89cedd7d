package catalog

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/roach88/kopi/internal/model"
)

// ListInventory returns every inventory item sorted by name.
func (s *Store) ListInventory() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InventoryItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetInventoryItem looks an ingredient up by name.
func (s *Store) GetInventoryItem(name string) (model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.inventory[name]
	if !ok {
		return model.InventoryItem{}, ErrNotFound
	}
	return item, nil
}

// AddInventoryItem registers a new ingredient.
func (s *Store) AddInventoryItem(item model.InventoryItem) error {
	if item.Name == "" {
		return invalidf("inventory item name must not be empty")
	}
	if item.Quantity.IsNegative() {
		return invalidf("inventory quantity must not be negative")
	}
	return s.mutate(func() error {
		if _, ok := s.inventory[item.Name]; ok {
			return invalidf("inventory item %q already exists", item.Name)
		}
		next := cloneInventory(s.inventory)
		next[item.Name] = item
		if err := writeJSON(s.path(inventoryFile), next); err != nil {
			return err
		}
		s.inventory = next
		slog.Info("inventory item added", "ingredient", item.Name)
		return nil
	})
}

// RefillInventory adds amount to an ingredient's quantity.
func (s *Store) RefillInventory(name string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return invalidf("refill amount must be positive, got %s", amount)
	}
	return s.mutate(func() error {
		item, ok := s.inventory[name]
		if !ok {
			return ErrNotFound
		}
		item.Refill(amount)

		next := cloneInventory(s.inventory)
		next[name] = item
		if err := writeJSON(s.path(inventoryFile), next); err != nil {
			return err
		}
		s.inventory = next
		slog.Info("inventory refilled", "ingredient", name, "quantity", item.Quantity.String())
		return nil
	})
}

func cloneInventory(in map[string]model.InventoryItem) map[string]model.InventoryItem {
	out := make(map[string]model.InventoryItem, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
