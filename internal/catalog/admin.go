package catalog

import (
	"log/slog"

	"github.com/roach88/kopi/internal/model"
)

// Admin mutations for the smaller catalog collections: categories,
// add-ons, special requests and cashier accounts. Same discipline as
// the product mutations: validate, persist, swap the cache only after
// the write succeeded.

// AddCategory appends a menu category.
func (s *Store) AddCategory(c model.Category) error {
	if c.Name == "" {
		return invalidf("category name must not be empty")
	}
	return s.mutate(func() error {
		for i := range s.categories {
			if s.categories[i].Name == c.Name {
				return invalidf("category %q already exists", c.Name)
			}
		}
		next := append(append([]model.Category(nil), s.categories...), c)
		if err := writeJSON(s.path(categoriesFile), next); err != nil {
			return err
		}
		s.categories = next
		slog.Info("category added", "category", c.Name)
		return nil
	})
}

// RemoveCategory deletes a category. Products keep their category
// string; an orphaned category only disappears from the menu grouping.
func (s *Store) RemoveCategory(name string) error {
	return s.mutate(func() error {
		idx := -1
		for i := range s.categories {
			if s.categories[i].Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		next := append([]model.Category(nil), s.categories[:idx]...)
		next = append(next, s.categories[idx+1:]...)
		if err := writeJSON(s.path(categoriesFile), next); err != nil {
			return err
		}
		s.categories = next
		slog.Info("category removed", "category", name)
		return nil
	})
}

// AddAddOn appends a priced extra.
func (s *Store) AddAddOn(a model.AddOn) error {
	if a.ID == "" {
		return invalidf("add-on id must not be empty")
	}
	if a.Name == "" {
		return invalidf("add-on name must not be empty")
	}
	if a.Price.IsNegative() {
		return invalidf("add-on price must not be negative")
	}
	return s.mutate(func() error {
		for i := range s.addOns {
			if s.addOns[i].ID == a.ID {
				return invalidf("add-on id %q already exists", a.ID)
			}
		}
		next := append(append([]model.AddOn(nil), s.addOns...), a)
		if err := writeJSON(s.path(addOnsFile), next); err != nil {
			return err
		}
		s.addOns = next
		slog.Info("add-on added", "addon", a.ID)
		return nil
	})
}

// RemoveAddOn deletes an add-on by id.
func (s *Store) RemoveAddOn(id string) error {
	return s.mutate(func() error {
		idx := -1
		for i := range s.addOns {
			if s.addOns[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		next := append([]model.AddOn(nil), s.addOns[:idx]...)
		next = append(next, s.addOns[idx+1:]...)
		if err := writeJSON(s.path(addOnsFile), next); err != nil {
			return err
		}
		s.addOns = next
		slog.Info("add-on removed", "addon", id)
		return nil
	})
}

// AddSpecialRequest appends a free-text customization option.
func (s *Store) AddSpecialRequest(sr model.SpecialRequest) error {
	if sr.ID == "" {
		return invalidf("special request id must not be empty")
	}
	if sr.Text == "" {
		return invalidf("special request text must not be empty")
	}
	return s.mutate(func() error {
		for i := range s.specials {
			if s.specials[i].ID == sr.ID {
				return invalidf("special request id %q already exists", sr.ID)
			}
		}
		next := append(append([]model.SpecialRequest(nil), s.specials...), sr)
		if err := writeJSON(s.path(specialsFile), next); err != nil {
			return err
		}
		s.specials = next
		slog.Info("special request added", "request", sr.ID)
		return nil
	})
}

// RemoveSpecialRequest deletes a special request by id.
func (s *Store) RemoveSpecialRequest(id string) error {
	return s.mutate(func() error {
		idx := -1
		for i := range s.specials {
			if s.specials[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		next := append([]model.SpecialRequest(nil), s.specials[:idx]...)
		next = append(next, s.specials[idx+1:]...)
		if err := writeJSON(s.path(specialsFile), next); err != nil {
			return err
		}
		s.specials = next
		slog.Info("special request removed", "request", id)
		return nil
	})
}

// AddCashier appends a till operator account.
func (s *Store) AddCashier(c model.CashierAccount) error {
	if c.ID == "" {
		return invalidf("cashier id must not be empty")
	}
	if c.Name == "" {
		return invalidf("cashier name must not be empty")
	}
	return s.mutate(func() error {
		for i := range s.cashiers {
			if s.cashiers[i].ID == c.ID {
				return invalidf("cashier id %q already exists", c.ID)
			}
		}
		next := append(append([]model.CashierAccount(nil), s.cashiers...), c)
		if err := writeJSON(s.path(cashiersFile), next); err != nil {
			return err
		}
		s.cashiers = next
		slog.Info("cashier added", "cashier", c.ID)
		return nil
	})
}

// RemoveCashier deletes a cashier account. Ledger rows referencing the
// id stay as written; history never loses its operator.
func (s *Store) RemoveCashier(id string) error {
	return s.mutate(func() error {
		idx := -1
		for i := range s.cashiers {
			if s.cashiers[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		next := append([]model.CashierAccount(nil), s.cashiers[:idx]...)
		next = append(next, s.cashiers[idx+1:]...)
		if err := writeJSON(s.path(cashiersFile), next); err != nil {
			return err
		}
		s.cashiers = next
		slog.Info("cashier removed", "cashier", id)
		return nil
	})
}
