// Package watch lets one process observe catalog edits made by another
// process sharing the same data root.
//
// A single background goroutine per process blocks on filesystem events
// for the data directory. When a catalog file changes it waits a short
// debounce interval, so the writer's temp-and-rename can finish, then
// reloads only the affected slice of the catalog store and notifies the
// listeners registered for that slice. Listener execution is handed to
// the consumer's dispatch function (a UI event loop, typically); the
// watcher goroutine itself never runs listeners inline and never
// touches UI state.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/kopi/internal/catalog"
	"github.com/roach88/kopi/internal/config"
)

// Slice identifies one independently reloadable part of the catalog.
type Slice string

const (
	SliceCategories      Slice = "categories"
	SliceProducts        Slice = "products"
	SliceSpecialRequests Slice = "special-requests"
	SliceAddOns          Slice = "add-ons"
)

// sliceForFile maps a catalog file name to its slice.
var sliceForFile = map[string]Slice{
	"categories.json":       SliceCategories,
	"products.json":         SliceProducts,
	"special_requests.json": SliceSpecialRequests,
	"addons.json":           SliceAddOns,
}

// Watcher reloads catalog slices when their backing files change.
type Watcher struct {
	cfg      *config.Config
	store    *catalog.Store
	registry *Registry[Slice]
	dispatch func(func())

	mu     sync.Mutex
	timers map[Slice]*time.Timer
}

// New creates a watcher over the store's data root. dispatch receives
// listener callbacks and runs them on the consumer's own execution
// context; nil means each callback runs on a fresh goroutine.
func New(cfg *config.Config, store *catalog.Store, dispatch func(func())) *Watcher {
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	return &Watcher{
		cfg:      cfg,
		store:    store,
		registry: NewRegistry[Slice](),
		dispatch: dispatch,
		timers:   map[Slice]*time.Timer{},
	}
}

// OnCategoriesChanged registers a listener for category-list changes.
func (w *Watcher) OnCategoriesChanged(fn func()) { w.registry.Subscribe(SliceCategories, fn) }

// OnProductsChanged registers a listener for product-list changes.
func (w *Watcher) OnProductsChanged(fn func()) { w.registry.Subscribe(SliceProducts, fn) }

// OnSpecialRequestsChanged registers a listener for special-request changes.
func (w *Watcher) OnSpecialRequestsChanged(fn func()) { w.registry.Subscribe(SliceSpecialRequests, fn) }

// OnAddOnsChanged registers a listener for add-on changes.
func (w *Watcher) OnAddOnsChanged(fn func()) { w.registry.Subscribe(SliceAddOns, fn) }

// Run watches until ctx is cancelled. It owns the background goroutine's
// lifetime: on return all pending debounce timers are stopped and the
// underlying OS watch is closed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	defer w.stopTimers()

	if err := fw.Add(w.cfg.DataDir); err != nil {
		return err
	}
	slog.Info("watching catalog directory", "dir", w.cfg.DataDir)

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopping: context cancelled")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	slice, ok := sliceForFile[filepath.Base(ev.Name)]
	if !ok {
		return
	}
	w.debounce(slice)
}

// debounce restarts the slice's timer; the reload fires only once the
// file has been quiet for the full interval.
func (w *Watcher) debounce(slice Slice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[slice]; ok {
		t.Reset(w.cfg.WatchDebounce)
		return
	}
	w.timers[slice] = time.AfterFunc(w.cfg.WatchDebounce, func() {
		w.mu.Lock()
		delete(w.timers, slice)
		w.mu.Unlock()
		w.fire(slice)
	})
}

func (w *Watcher) fire(slice Slice) {
	var err error
	switch slice {
	case SliceCategories:
		err = w.store.ReloadCategories()
	case SliceProducts:
		err = w.store.ReloadProducts()
	case SliceSpecialRequests:
		err = w.store.ReloadSpecialRequests()
	case SliceAddOns:
		err = w.store.ReloadAddOns()
	}
	if err != nil {
		slog.Warn("failed to reload catalog slice", "slice", slice, "error", err)
		return
	}
	slog.Debug("catalog slice reloaded", "slice", slice)
	w.registry.Notify(slice, w.dispatch)
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for slice, t := range w.timers {
		t.Stop()
		delete(w.timers, slice)
	}
}
