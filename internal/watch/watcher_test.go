package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kopi/internal/catalog"
	"github.com/roach88/kopi/internal/model"
	"github.com/roach88/kopi/internal/testutil"
)

func TestRegistry_NotifiesOnlySubscribedKey(t *testing.T) {
	r := NewRegistry[Slice]()

	var products, categories int
	r.Subscribe(SliceProducts, func() { products++ })
	r.Subscribe(SliceProducts, func() { products++ })
	r.Subscribe(SliceCategories, func() { categories++ })

	sync := func(fn func()) { fn() }
	r.Notify(SliceProducts, sync)

	assert.Equal(t, 2, products)
	assert.Equal(t, 0, categories)
}

func TestRegistry_NotifySnapshotsHandlerList(t *testing.T) {
	r := NewRegistry[Slice]()
	sync := func(fn func()) { fn() }

	var late int
	r.Subscribe(SliceProducts, func() {
		r.Subscribe(SliceProducts, func() { late++ })
	})

	// The handler registered mid-notify only runs on the next round.
	r.Notify(SliceProducts, sync)
	assert.Equal(t, 0, late)
	r.Notify(SliceProducts, sync)
	assert.Equal(t, 1, late)
}

// startWatcher loads a store over a fresh data root and runs a watcher
// whose listeners deliver on the returned channel.
func startWatcher(t *testing.T, notified chan Slice) (*catalog.Store, string) {
	t.Helper()
	cfg := testutil.NewConfig(t)

	store := catalog.NewStore(cfg)
	require.NoError(t, store.Load())

	w := New(cfg, store, func(fn func()) { fn() })
	w.OnProductsChanged(func() { notified <- SliceProducts })
	w.OnCategoriesChanged(func() { notified <- SliceCategories })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})

	// Give the watcher a moment to register the directory watch.
	time.Sleep(50 * time.Millisecond)
	return store, cfg.DataDir
}

func TestWatcher_ReloadsProductsOnExternalEdit(t *testing.T) {
	notified := make(chan Slice, 8)
	store, dataDir := startWatcher(t, notified)

	// Another process rewrites the product list.
	next := []model.Product{
		{ID: "cortado", Name: "Cortado", Price: decimal.RequireFromString("3.75"),
			Stock: 12, Category: "Coffee"},
	}
	data, err := json.Marshal(next)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "products.json"), data, 0o644))

	select {
	case slice := <-notified:
		assert.Equal(t, SliceProducts, slice)
	case <-time.After(2 * time.Second):
		t.Fatal("no product notification after external edit")
	}

	// The store already reflects the edit by the time listeners run.
	p, err := store.GetProduct("cortado")
	require.NoError(t, err)
	assert.Equal(t, "Cortado", p.Name)
	assert.Len(t, store.ListProducts(), 1)
}

func TestWatcher_DebounceCoalescesRapidWrites(t *testing.T) {
	notified := make(chan Slice, 8)
	store, dataDir := startWatcher(t, notified)

	write := func(stock int) {
		next := store.ListProducts()
		next[0].Stock = stock
		data, err := json.Marshal(next)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "products.json"), data, 0o644))
	}
	write(17)
	write(18)
	write(19)

	// The burst settles into a single reload and notification.
	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after write burst")
	}
	select {
	case s := <-notified:
		t.Fatalf("burst produced a second %s notification", s)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresLedgerFiles(t *testing.T) {
	notified := make(chan Slice, 8)
	_, dataDir := startWatcher(t, notified)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "pending_orders.txt"), []byte("x|y\n"), 0o644))

	select {
	case s := <-notified:
		t.Fatalf("ledger write produced a %s notification", s)
	case <-time.After(300 * time.Millisecond):
	}
}
