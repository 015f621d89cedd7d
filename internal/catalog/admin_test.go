package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kopi/internal/model"
)

func TestAddOnAdminRoundTrip(t *testing.T) {
	s := newTestStore(t, []model.Product{
		{ID: "latte", Name: "Latte", Price: dec("4.50"), Stock: 10, Category: "Coffee"},
	}, map[string]model.InventoryItem{})

	baseAll := len(s.ListAddOns(""))
	baseLatte := len(s.ListAddOns("latte"))

	err := s.AddAddOn(model.AddOn{ID: "vanilla", Price: dec("0.60")})
	require.Error(t, err, "name is required")
	assert.True(t, IsValidation(err))

	vanilla := model.AddOn{ID: "vanilla", Name: "Vanilla Syrup", Price: dec("0.60"), Category: "Coffee", Active: true}
	require.NoError(t, s.AddAddOn(vanilla))
	err = s.AddAddOn(vanilla)
	require.Error(t, err, "duplicate id is rejected")

	// Scoped to the product's category, so the latte sees it.
	assert.Len(t, s.ListAddOns("latte"), baseLatte+1)

	// Persisted: a fresh store over the same root sees it too.
	s2 := NewStore(s.cfg)
	require.NoError(t, s2.Load())
	assert.Len(t, s2.ListAddOns(""), baseAll+1)

	require.NoError(t, s.RemoveAddOn("vanilla"))
	assert.Len(t, s.ListAddOns(""), baseAll)
	assert.ErrorIs(t, s.RemoveAddOn("vanilla"), ErrNotFound)
}

func TestCategoryAndCashierAdmin(t *testing.T) {
	s := newTestStore(t, []model.Product{}, map[string]model.InventoryItem{})
	base := len(s.ListCategories())

	require.NoError(t, s.AddCategory(model.Category{Name: "Seasonal", DisplayOrder: 9}))
	assert.Len(t, s.ListCategories(), base+1)
	err := s.AddCategory(model.Category{Name: "Seasonal"})
	require.Error(t, err, "duplicate name is rejected")

	require.NoError(t, s.RemoveCategory("Seasonal"))
	assert.Len(t, s.ListCategories(), base)

	cashiers := len(s.ListCashiers())
	require.NoError(t, s.AddCashier(model.CashierAccount{ID: "csh-07", Name: "Dana", Active: true}))
	assert.Len(t, s.ListCashiers(), cashiers+1)
	require.NoError(t, s.RemoveCashier("csh-07"))
	assert.ErrorIs(t, s.RemoveCashier("csh-07"), ErrNotFound)
}

func TestSpecialRequestAdmin(t *testing.T) {
	s := newTestStore(t, []model.Product{
		{ID: "latte", Name: "Latte", Price: dec("4.50"), Stock: 10, Category: "Coffee"},
	}, map[string]model.InventoryItem{})
	base := len(s.ListSpecialRequests(""))

	err := s.AddSpecialRequest(model.SpecialRequest{ID: "sr-foam"})
	require.Error(t, err, "text is required")

	require.NoError(t, s.AddSpecialRequest(model.SpecialRequest{
		ID: "sr-foam", Text: "No foam", Category: "Coffee", Active: true,
	}))
	assert.Len(t, s.ListSpecialRequests(""), base+1)
	assert.NotEmpty(t, s.ListSpecialRequests("latte"))

	require.NoError(t, s.RemoveSpecialRequest("sr-foam"))
	assert.Len(t, s.ListSpecialRequests(""), base)
}
