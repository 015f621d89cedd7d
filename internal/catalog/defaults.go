package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/kopi/internal/model"
)

// Built-in seed data, persisted the first time a data root is used so a
// fresh install comes up as a working shop.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultProducts() []model.Product {
	return []model.Product{
		{
			ID:    "americano",
			Name:  "Americano",
			Price: dec("3.00"),
			Stock: 20,
			Recipe: map[string]decimal.Decimal{
				"Coffee Beans": dec("18"),
			},
			Category: "Coffee",
			SizePrices: map[string]decimal.Decimal{
				"Medium": dec("0.00"),
				"Large":  dec("0.75"),
			},
			HasMedium:      true,
			HasLarge:       true,
			HasTemperature: true,
		},
		{
			ID:    "latte",
			Name:  "Latte",
			Price: dec("4.50"),
			Stock: 20,
			Recipe: map[string]decimal.Decimal{
				"Coffee Beans": dec("18"),
				"Milk":         dec("200"),
			},
			Category: "Coffee",
			SizePrices: map[string]decimal.Decimal{
				"Small":  dec("-0.50"),
				"Medium": dec("0.00"),
				"Large":  dec("1.00"),
			},
			HasSmall:       true,
			HasMedium:      true,
			HasLarge:       true,
			HasMilkOptions: true,
			HasTemperature: true,
		},
		{
			ID:    "matcha-latte",
			Name:  "Matcha Latte",
			Price: dec("5.00"),
			Stock: 20,
			Recipe: map[string]decimal.Decimal{
				"Matcha Powder": dec("5"),
				"Milk":          dec("220"),
			},
			Category: "Tea",
			SizePrices: map[string]decimal.Decimal{
				"Medium": dec("0.00"),
				"Large":  dec("1.00"),
			},
			HasMedium:      true,
			HasLarge:       true,
			HasMilkOptions: true,
			HasTemperature: true,
		},
		{
			ID:          "croissant",
			Name:        "Croissant",
			Price:       dec("3.25"),
			Stock:       12,
			Category:    "Pastry",
			SugarLevels: &[]int{},
		},
	}
}

func defaultInventory() map[string]model.InventoryItem {
	return map[string]model.InventoryItem{
		"Coffee Beans":  {Name: "Coffee Beans", Quantity: dec("2000"), Unit: "g"},
		"Milk":          {Name: "Milk", Quantity: dec("10000"), Unit: "ml"},
		"Matcha Powder": {Name: "Matcha Powder", Quantity: dec("500"), Unit: "g"},
		"Sugar Syrup":   {Name: "Sugar Syrup", Quantity: dec("3000"), Unit: "ml"},
	}
}

func defaultCategories() []model.Category {
	return []model.Category{
		{Name: "Coffee", DisplayOrder: 1},
		{Name: "Tea", DisplayOrder: 2},
		{Name: "Pastry", DisplayOrder: 3},
	}
}

func defaultAddOns() []model.AddOn {
	return []model.AddOn{
		{ID: "extra-shot", Name: "Extra Espresso Shot", Price: dec("0.75"), Category: "Coffee", Active: true},
		{ID: "oat-milk", Name: "Oat Milk", Price: dec("0.50"), Category: "Coffee", Active: true},
		{ID: "whipped-cream", Name: "Whipped Cream", Price: dec("0.50"), Category: "Tea",
			ProductIDs: []string{"matcha-latte"}, Active: true},
	}
}

func defaultSpecialRequests() []model.SpecialRequest {
	return []model.SpecialRequest{
		{ID: "no-foam", Text: "No foam", Category: "Coffee", Active: true},
		{ID: "extra-hot", Text: "Extra hot", Category: "Coffee", Active: true},
		{ID: "warmed-up", Text: "Warmed up", Category: "Pastry", Active: true},
	}
}

func defaultCashiers() []model.CashierAccount {
	return []model.CashierAccount{
		{ID: "admin", Name: "Administrator", PINHash: "", Active: true},
	}
}
