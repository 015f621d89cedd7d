package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kopi/internal/model"
)

func brewCatalog(t *testing.T, beans string) *Store {
	t.Helper()
	products := []model.Product{
		{ID: "latte", Name: "Latte", Price: dec("4.50"), Stock: 10, Category: "Coffee",
			Recipe: map[string]decimal.Decimal{"Coffee Beans": dec("18"), "Milk": dec("200")}},
		{ID: "espresso", Name: "Espresso", Price: dec("2.50"), Stock: 5, Category: "Coffee",
			Recipe: map[string]decimal.Decimal{"Coffee Beans": dec("9")}},
	}
	inventory := map[string]model.InventoryItem{
		"Coffee Beans": {Name: "Coffee Beans", Quantity: dec(beans), Unit: "g"},
		"Milk":         {Name: "Milk", Quantity: dec("5000"), Unit: "ml"},
	}
	return newTestStore(t, products, inventory)
}

func orderOf(items ...model.OrderItem) *model.Order {
	o := &model.Order{ID: "ord-test"}
	for _, it := range items {
		o.AddItem(it)
	}
	return o
}

func TestIsInventorySufficient_ReportsFirstInsufficientIngredient(t *testing.T) {
	// 18g beans x 3 = 54g demand against 50g on hand.
	s := brewCatalog(t, "50")
	o := orderOf(model.OrderItem{ProductID: "latte", ProductName: "Latte", UnitPrice: dec("4.50"), Quantity: 3})

	assert.True(t, s.IsStockSufficient(o))
	assert.False(t, s.IsInventorySufficient(o))

	err := s.ValidateOrder(o)
	require.Error(t, err)
	require.True(t, IsInsufficientIngredient(err))

	var ie *InsufficientIngredientError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Coffee Beans", ie.Ingredient)
	assert.True(t, ie.Needed.Equal(dec("54")), "got %s", ie.Needed)
	assert.True(t, ie.Available.Equal(dec("50")))
}

func TestIsStockSufficient_AggregatesAcrossLines(t *testing.T) {
	s := brewCatalog(t, "5000")

	// Two lines of the same product: 3 + 3 > stock 5.
	o := orderOf(
		model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 3},
		model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 3},
	)
	assert.False(t, s.IsStockSufficient(o))

	err := s.ValidateOrder(o)
	require.True(t, IsInsufficientStock(err))

	var se *InsufficientStockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Espresso", se.ProductName)
	assert.Equal(t, 6, se.Requested)
	assert.Equal(t, 5, se.Available)
}

func TestCheckout_DeductsAndPersists(t *testing.T) {
	s := brewCatalog(t, "2000")
	o := orderOf(
		model.OrderItem{ProductID: "latte", ProductName: "Latte", UnitPrice: dec("4.50"), Quantity: 2},
		model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 1},
	)

	require.NoError(t, s.Checkout(o))
	assert.True(t, o.Paid)

	latte, err := s.GetProduct("latte")
	require.NoError(t, err)
	assert.Equal(t, 8, latte.Stock)
	espresso, err := s.GetProduct("espresso")
	require.NoError(t, err)
	assert.Equal(t, 4, espresso.Stock)

	// 2 lattes x 18g + 1 espresso x 9g.
	beans, err := s.GetInventoryItem("Coffee Beans")
	require.NoError(t, err)
	assert.True(t, beans.Quantity.Equal(dec("1955")), "got %s", beans.Quantity)
	milk, err := s.GetInventoryItem("Milk")
	require.NoError(t, err)
	assert.True(t, milk.Quantity.Equal(dec("4600")), "got %s", milk.Quantity)

	// The deduction is durable: a fresh store sees it.
	s2 := NewStore(s.cfg)
	require.NoError(t, s2.Load())
	latte2, err := s2.GetProduct("latte")
	require.NoError(t, err)
	assert.Equal(t, 8, latte2.Stock)
}

func TestCheckout_SellsLegacyZeroStockRowAfterLoad(t *testing.T) {
	// A row written before stock tracking: recipe present, stock 0.
	// Load normalizes it to the starting stock, and that stock must
	// be sellable right away — checkout revalidates against the file,
	// so the normalization has to reach disk as well.
	products := []model.Product{
		{ID: "latte", Name: "Latte", Price: dec("4.50"), Stock: 0, Category: "Coffee",
			Recipe: map[string]decimal.Decimal{"Coffee Beans": dec("18")}},
	}
	inventory := map[string]model.InventoryItem{
		"Coffee Beans": {Name: "Coffee Beans", Quantity: dec("2000"), Unit: "g"},
	}
	s := newTestStore(t, products, inventory)

	latte, err := s.GetProduct("latte")
	require.NoError(t, err)
	require.Equal(t, s.cfg.DefaultStartingStock, latte.Stock)

	o := orderOf(model.OrderItem{ProductID: "latte", ProductName: "Latte", UnitPrice: dec("4.50"), Quantity: 1})
	require.NoError(t, s.ValidateOrder(o))
	require.NoError(t, s.Checkout(o))

	latte, err = s.GetProduct("latte")
	require.NoError(t, err)
	assert.Equal(t, s.cfg.DefaultStartingStock-1, latte.Stock)

	// The normalized stock is on disk, not just in this cache.
	s2 := NewStore(s.cfg)
	require.NoError(t, s2.Load())
	latte2, err := s2.GetProduct("latte")
	require.NoError(t, err)
	assert.Equal(t, s.cfg.DefaultStartingStock-1, latte2.Stock)
}

func TestCheckout_RejectionLeavesFilesUntouched(t *testing.T) {
	s := brewCatalog(t, "50")
	productsPath := filepath.Join(s.cfg.DataDir, productsFile)
	inventoryPath := filepath.Join(s.cfg.DataDir, inventoryFile)

	before := map[string][]byte{}
	for _, p := range []string{productsPath, inventoryPath} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		before[p] = data
	}

	o := orderOf(model.OrderItem{ProductID: "latte", ProductName: "Latte", UnitPrice: dec("4.50"), Quantity: 3})
	err := s.Checkout(o)
	require.Error(t, err)
	assert.True(t, IsInsufficientIngredient(err))
	assert.False(t, o.Paid)

	for p, want := range before {
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%s must be byte-for-byte unchanged after a rejected checkout", p)
	}
}

func TestCheckout_SeesOtherProcessWrites(t *testing.T) {
	s := brewCatalog(t, "2000")

	// Another process sells 8 espressos behind our back.
	other := NewStore(s.cfg)
	require.NoError(t, other.Load())
	o1 := orderOf(model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 4})
	require.NoError(t, other.Checkout(o1))

	// Our cached view says stock 5, but checkout revalidates against
	// the file and must reject.
	o2 := orderOf(model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 3})
	err := s.Checkout(o2)
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
}

func TestCheckout_EmptyOrderIsValidationError(t *testing.T) {
	s := brewCatalog(t, "2000")
	err := s.Checkout(&model.Order{ID: "empty"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCheckout_NeverDrivesQuantitiesNegative(t *testing.T) {
	s := brewCatalog(t, "2000")

	// Sell everything repeatedly until the catalog runs dry.
	for {
		o := orderOf(model.OrderItem{ProductID: "espresso", ProductName: "Espresso", UnitPrice: dec("2.50"), Quantity: 1})
		if err := s.Checkout(o); err != nil {
			require.True(t, IsInsufficientStock(err) || IsInsufficientIngredient(err))
			break
		}
	}

	for _, p := range s.ListProducts() {
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
	for _, item := range s.ListInventory() {
		assert.False(t, item.Quantity.IsNegative())
	}
}
