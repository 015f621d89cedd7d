package catalog

import (
	"log/slog"

	"github.com/roach88/kopi/internal/model"
	"github.com/shopspring/decimal"
)

// cloneProduct deep-copies a product so callers cannot mutate the cache
// behind the store's back.
func cloneProduct(p *model.Product) model.Product {
	out := *p
	if p.Recipe != nil {
		out.Recipe = make(map[string]decimal.Decimal, len(p.Recipe))
		for k, v := range p.Recipe {
			out.Recipe[k] = v
		}
	}
	if p.SizePrices != nil {
		out.SizePrices = make(map[string]decimal.Decimal, len(p.SizePrices))
		for k, v := range p.SizePrices {
			out.SizePrices[k] = v
		}
	}
	if p.SugarLevels != nil {
		levels := append([]int(nil), (*p.SugarLevels)...)
		out.SugarLevels = &levels
	}
	return out
}

// ListProducts returns a copy of every product, in file order.
func (s *Store) ListProducts() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products))
	for i := range s.products {
		out = append(out, cloneProduct(&s.products[i]))
	}
	return out
}

// GetProduct looks a product up by id.
func (s *Store) GetProduct(id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			return cloneProduct(&s.products[i]), nil
		}
	}
	return model.Product{}, ErrNotFound
}

// AddProduct appends a new product and persists the catalog.
func (s *Store) AddProduct(p model.Product) error {
	if p.ID == "" {
		return invalidf("product id must not be empty")
	}
	if p.Name == "" {
		return invalidf("product name must not be empty")
	}
	if p.Price.IsNegative() {
		return invalidf("product price must not be negative")
	}
	if p.Stock < 0 || p.Stock > s.cfg.MaxStock {
		return invalidf("product stock %d must be within [0, %d]", p.Stock, s.cfg.MaxStock)
	}

	return s.mutate(func() error {
		for i := range s.products {
			if s.products[i].ID == p.ID {
				return invalidf("product id %q already exists", p.ID)
			}
		}
		next := append(append([]model.Product(nil), s.products...), cloneProduct(&p))
		if err := writeJSON(s.path(productsFile), next); err != nil {
			return err
		}
		s.products = next
		slog.Info("product added", "product", p.ID)
		return nil
	})
}

// RemoveProduct deletes a product. With cascadeIngredients set, recipe
// ingredients no other product references are removed from the
// inventory as well.
func (s *Store) RemoveProduct(id string, cascadeIngredients bool) error {
	return s.mutate(func() error {
		idx := -1
		for i := range s.products {
			if s.products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		removed := s.products[idx]

		next := append([]model.Product(nil), s.products[:idx]...)
		next = append(next, s.products[idx+1:]...)
		if err := writeJSON(s.path(productsFile), next); err != nil {
			return err
		}
		s.products = next
		slog.Info("product removed", "product", id, "cascade", cascadeIngredients)

		if !cascadeIngredients || len(removed.Recipe) == 0 {
			return nil
		}

		nextInv := make(map[string]model.InventoryItem, len(s.inventory))
		for name, item := range s.inventory {
			nextInv[name] = item
		}
		for ingredient := range removed.Recipe {
			if s.ingredientInUse(ingredient) {
				continue
			}
			delete(nextInv, ingredient)
			slog.Info("cascaded ingredient removal", "ingredient", ingredient)
		}
		if err := writeJSON(s.path(inventoryFile), nextInv); err != nil {
			return err
		}
		s.inventory = nextInv
		return nil
	})
}

// ingredientInUse reports whether any remaining product's recipe
// references the ingredient. Caller holds s.mu.
func (s *Store) ingredientInUse(ingredient string) bool {
	for i := range s.products {
		if _, ok := s.products[i].Recipe[ingredient]; ok {
			return true
		}
	}
	return false
}

// RefillProduct raises a product's stock by amount, clamped to MaxStock.
func (s *Store) RefillProduct(id string, amount int) error {
	if amount <= 0 {
		return invalidf("refill amount must be positive, got %d", amount)
	}
	return s.mutate(func() error {
		idx := -1
		for i := range s.products {
			if s.products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}

		next := append([]model.Product(nil), s.products...)
		stock := next[idx].Stock + amount
		if stock > s.cfg.MaxStock {
			stock = s.cfg.MaxStock
		}
		next[idx].Stock = stock

		if err := writeJSON(s.path(productsFile), next); err != nil {
			return err
		}
		s.products = next
		slog.Info("product refilled", "product", id, "stock", stock)
		return nil
	})
}

// ListCategories returns the menu categories in display order as stored.
func (s *Store) ListCategories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

// ListAddOns returns add-ons applicable to the product, or all add-ons
// when productID is empty.
func (s *Store) ListAddOns(productID string) []model.AddOn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if productID == "" {
		return append([]model.AddOn(nil), s.addOns...)
	}
	var p *model.Product
	for i := range s.products {
		if s.products[i].ID == productID {
			p = &s.products[i]
			break
		}
	}
	if p == nil {
		return nil
	}
	var out []model.AddOn
	for i := range s.addOns {
		if s.addOns[i].AppliesTo(p) {
			out = append(out, s.addOns[i])
		}
	}
	return out
}

// ListSpecialRequests returns special requests applicable to the
// product, or all of them when productID is empty.
func (s *Store) ListSpecialRequests(productID string) []model.SpecialRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if productID == "" {
		return append([]model.SpecialRequest(nil), s.specials...)
	}
	var p *model.Product
	for i := range s.products {
		if s.products[i].ID == productID {
			p = &s.products[i]
			break
		}
	}
	if p == nil {
		return nil
	}
	var out []model.SpecialRequest
	for i := range s.specials {
		sr := &s.specials[i]
		if !sr.Active || sr.Category != p.Category {
			continue
		}
		if len(sr.ProductIDs) == 0 {
			out = append(out, *sr)
			continue
		}
		for _, pid := range sr.ProductIDs {
			if pid == p.ID {
				out = append(out, *sr)
				break
			}
		}
	}
	return out
}

// ListCashiers returns the cashier accounts.
func (s *Store) ListCashiers() []model.CashierAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CashierAccount(nil), s.cashiers...)
}
