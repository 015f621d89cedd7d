package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kopi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_stock: 50\nwatch_debounce: 1s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxStock)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, Default().RefillThreshold, cfg.RefillThreshold)
	assert.Equal(t, Default().Currency, cfg.Currency)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative max stock", "max_stock: -5\n"},
		{"threshold above max", "max_stock: 10\nrefill_threshold: 11\n"},
		{"negative retention", "backup_retention: -1\n"},
		{"bad debounce", "watch_debounce: soon\n"},
		{"not yaml", "{{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kopi.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
