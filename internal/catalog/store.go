// Package catalog owns the in-memory view of the shop catalog (products,
// inventory, categories, add-ons, special requests, cashier accounts)
// and its JSON backing files.
//
// One Store instance per process, explicitly constructed and injected;
// there is no package-level singleton. The in-memory collections are a
// read-mostly cache of the files, which remain the sole cross-process
// source of truth. Every mutation runs load-validate-mutate-persist
// synchronously on the caller's goroutine, under both the in-process
// mutex and the cross-process advisory lock, and writes whole files
// atomically via temp-and-rename. In-memory state is swapped in only
// after the corresponding write succeeded, so a failed write leaves the
// cache exactly as it was.
package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/datafile"
	"github.com/roach88/kopi/internal/model"
)

const (
	productsFile   = "products.json"
	inventoryFile  = "inventory.json"
	categoriesFile = "categories.json"
	cashiersFile   = "cashiers.json"
	addOnsFile     = "addons.json"
	specialsFile   = "special_requests.json"
)

// Store is the authoritative in-process view of the catalog.
type Store struct {
	cfg *config.Config

	mu         sync.RWMutex
	products   []model.Product
	inventory  map[string]model.InventoryItem
	categories []model.Category
	addOns     []model.AddOn
	specials   []model.SpecialRequest
	cashiers   []model.CashierAccount
}

// NewStore creates a store over cfg.DataDir. Call Load before use.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		cfg:       cfg,
		inventory: map[string]model.InventoryItem{},
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.cfg.DataDir, name)
}

// ImagesDir returns the product image directory.
func (s *Store) ImagesDir() string {
	return filepath.Join(s.cfg.DataDir, s.cfg.ImagesDirName)
}

// ProductImagePath finds the image for a product id regardless of file
// extension; empty string when the product has no image.
func (s *Store) ProductImagePath(id string) string {
	return datafile.FindImage(s.ImagesDir(), id)
}

// Load reads every collection from disk. Missing files are seeded with
// the built-in defaults and persisted, so a fresh data root comes up as
// a working shop. Legacy product rows with a recipe but no recorded
// stock are normalized to the default starting stock.
func (s *Store) Load() error {
	for _, dir := range []string{
		s.cfg.DataDir,
		s.ImagesDir(),
		filepath.Join(s.cfg.DataDir, s.cfg.BackupsDirName),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &datafile.PersistenceError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	release, err := datafile.Lock(s.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	products, err := loadOrSeed(s.path(productsFile), defaultProducts)
	if err != nil {
		return err
	}
	// Normalized stocks must reach disk: checkout re-reads the file as
	// written, so an in-memory-only fixup would make legacy rows
	// unsellable.
	if s.normalizeProducts(products) {
		if err := writeJSON(s.path(productsFile), products); err != nil {
			return err
		}
	}

	inventory, err := loadOrSeed(s.path(inventoryFile), defaultInventory)
	if err != nil {
		return err
	}
	for name, item := range inventory {
		item.Name = name
		inventory[name] = item
	}

	categories, err := loadOrSeed(s.path(categoriesFile), defaultCategories)
	if err != nil {
		return err
	}
	addOns, err := loadOrSeed(s.path(addOnsFile), defaultAddOns)
	if err != nil {
		return err
	}
	specials, err := loadOrSeed(s.path(specialsFile), defaultSpecialRequests)
	if err != nil {
		return err
	}
	cashiers, err := loadOrSeed(s.path(cashiersFile), defaultCashiers)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.inventory = inventory
	s.categories = categories
	s.addOns = addOns
	s.specials = specials
	s.cashiers = cashiers
	s.mu.Unlock()

	slog.Info("catalog loaded",
		"products", len(products),
		"ingredients", len(inventory),
		"categories", len(categories))
	return nil
}

// normalizeProducts applies legacy-record defaults in place and reports
// whether anything changed.
func (s *Store) normalizeProducts(products []model.Product) bool {
	changed := false
	for i := range products {
		p := &products[i]
		if p.Stock == 0 && len(p.Recipe) > 0 {
			p.Stock = s.cfg.DefaultStartingStock
			changed = true
			slog.Debug("normalized legacy product stock", "product", p.ID, "stock", p.Stock)
		}
		if p.Stock > s.cfg.MaxStock {
			p.Stock = s.cfg.MaxStock
			changed = true
		}
	}
	return changed
}

// loadOrSeed reads a JSON collection file, writing and returning seed()
// when the file does not exist yet.
func loadOrSeed[T any](path string, seed func() T) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		v := seed()
		if err := writeJSON(path, v); err != nil {
			return zero, err
		}
		slog.Info("seeded catalog file", "path", path)
		return v, nil
	}
	if err != nil {
		return zero, &datafile.PersistenceError{Op: "read", Path: path, Err: err}
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, &datafile.PersistenceError{Op: "decode", Path: path, Err: err}
	}
	return v, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &datafile.PersistenceError{Op: "encode", Path: path, Err: err}
	}
	return datafile.WriteAtomic(path, append(data, '\n'))
}

// mutate runs fn under the advisory lock and the write half of the
// in-process mutex. fn must persist before touching s fields.
func (s *Store) mutate(fn func() error) error {
	release, err := datafile.Lock(s.cfg.DataDir)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Reload* refresh one slice of the cache from disk. The change watcher
// calls these when another process edits a catalog file.

// ReloadProducts re-reads products.json.
func (s *Store) ReloadProducts() error {
	products, err := loadOrSeed(s.path(productsFile), defaultProducts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// ReloadCategories re-reads categories.json.
func (s *Store) ReloadCategories() error {
	categories, err := loadOrSeed(s.path(categoriesFile), defaultCategories)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// ReloadAddOns re-reads addons.json.
func (s *Store) ReloadAddOns() error {
	addOns, err := loadOrSeed(s.path(addOnsFile), defaultAddOns)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.addOns = addOns
	s.mu.Unlock()
	return nil
}

// ReloadSpecialRequests re-reads special_requests.json.
func (s *Store) ReloadSpecialRequests() error {
	specials, err := loadOrSeed(s.path(specialsFile), defaultSpecialRequests)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.specials = specials
	s.mu.Unlock()
	return nil
}

// ReloadInventory re-reads inventory.json.
func (s *Store) ReloadInventory() error {
	inventory, err := loadOrSeed(s.path(inventoryFile), defaultInventory)
	if err != nil {
		return err
	}
	for name, item := range inventory {
		item.Name = name
		inventory[name] = item
	}
	s.mu.Lock()
	s.inventory = inventory
	s.mu.Unlock()
	return nil
}
