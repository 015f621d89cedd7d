package model

import (
	"github.com/shopspring/decimal"
)

// SugarPolicy describes how sugar levels apply to a product.
//
// The backing JSON keeps the legacy convention: a missing sugar_levels key
// means shop defaults apply, an empty list means sugar is explicitly
// disabled. SugarPolicy surfaces that tri-state so callers never test
// nil-ness themselves.
type SugarPolicy int

const (
	// SugarDefault means the shop-wide default levels apply.
	SugarDefault SugarPolicy = iota

	// SugarDisabled means the product takes no sugar at all.
	SugarDisabled

	// SugarCustom means the product lists its own allowed levels.
	SugarCustom
)

// Product is a sellable catalog entry.
//
// Stock is whole servings; Recipe maps ingredient name to the quantity
// consumed per serving, in the ingredient's own unit.
type Product struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Price      decimal.Decimal            `json:"price"`
	Stock      int                        `json:"stock"`
	Recipe     map[string]decimal.Decimal `json:"recipe,omitempty"`
	Category   string                     `json:"category"`
	SizePrices map[string]decimal.Decimal `json:"size_prices,omitempty"`

	HasSmall       bool `json:"has_small"`
	HasMedium      bool `json:"has_medium"`
	HasLarge       bool `json:"has_large"`
	HasMilkOptions bool `json:"has_milk_options"`
	HasTemperature bool `json:"has_temperature"`

	// SugarLevels: nil = defaults, empty = disabled, otherwise explicit.
	SugarLevels *[]int `json:"sugar_levels,omitempty"`
}

// Sugar returns the product's sugar policy and, for SugarCustom, the
// allowed levels.
func (p *Product) Sugar() (SugarPolicy, []int) {
	switch {
	case p.SugarLevels == nil:
		return SugarDefault, nil
	case len(*p.SugarLevels) == 0:
		return SugarDisabled, nil
	default:
		return SugarCustom, *p.SugarLevels
	}
}

// Category is a menu grouping. DisplayOrder controls menu position.
type Category struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// AddOn is a priced extra applicable to a category, optionally narrowed
// to an explicit product allow-list. An empty ProductIDs list means the
// add-on applies to the whole category.
type AddOn struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	ProductIDs []string        `json:"product_ids,omitempty"`
	Active     bool            `json:"active"`
}

// AppliesTo reports whether the add-on is offered for the given product.
func (a *AddOn) AppliesTo(p *Product) bool {
	if !a.Active || a.Category != p.Category {
		return false
	}
	if len(a.ProductIDs) == 0 {
		return true
	}
	for _, id := range a.ProductIDs {
		if id == p.ID {
			return true
		}
	}
	return false
}

// SpecialRequest is a free-text customization option, scoped the same way
// an AddOn is but never priced.
type SpecialRequest struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Category   string   `json:"category"`
	ProductIDs []string `json:"product_ids,omitempty"`
	Active     bool     `json:"active"`
}

// CashierAccount identifies a till operator. PINHash is whatever the
// account admin front-end wrote; the core never interprets it.
type CashierAccount struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	PINHash string `json:"pin_hash"`
	Active  bool   `json:"active"`
}
