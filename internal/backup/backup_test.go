package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kopi/internal/testutil"
)

func TestSnapshot_CopiesDataFilesOnly(t *testing.T) {
	cfg := testutil.NewConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "products.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "pending_orders.txt"), []byte("a|b\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(cfg.DataDir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "images", "latte.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, ".hidden"), []byte("x"), 0o644))

	m := NewManager(cfg)
	m.Now = testutil.NewClock(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), time.Minute).Now

	dest, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.DataDir, "backups", "20240315-093000"), dest)

	data, err := os.ReadFile(filepath.Join(dest, "products.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	data, err = os.ReadFile(filepath.Join(dest, "pending_orders.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a|b\n", string(data))

	// Subdirectories and dotfiles stay out of the snapshot.
	_, err = os.Stat(filepath.Join(dest, "images"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, ".hidden"))
	assert.True(t, os.IsNotExist(err))
}

func TestPrune_DropsOldestBeyondRetention(t *testing.T) {
	cfg := testutil.NewConfig(t) // retention 2
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "products.json"), []byte(`[]`), 0o644))

	m := NewManager(cfg)
	m.Now = testutil.NewClock(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), time.Minute).Now

	for i := 0; i < 3; i++ {
		_, err := m.Snapshot()
		require.NoError(t, err)
	}
	require.NoError(t, m.Prune())

	entries, err := os.ReadDir(filepath.Join(cfg.DataDir, "backups"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"20240315-093100", "20240315-093200"}, names)
}

func TestPrune_NoBackupsDirIsFine(t *testing.T) {
	cfg := testutil.NewConfig(t)
	require.NoError(t, NewManager(cfg).Prune())
}
