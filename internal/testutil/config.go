package testutil

import (
	"testing"
	"time"

	"github.com/roach88/kopi/internal/config"
)

// NewConfig returns a default config rooted in a fresh temp directory,
// with a short watch debounce so watcher tests run quickly.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.WatchDebounce = 20 * time.Millisecond
	cfg.BackupRetention = 2
	return cfg
}
