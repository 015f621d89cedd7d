// Package backup takes timestamped snapshots of the data root and keeps
// the snapshot count bounded.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/datafile"
)

// snapshotLayout names snapshot folders so lexical order is time order.
const snapshotLayout = "20060102-150405"

// Manager snapshots and prunes the data root's backup directory.
type Manager struct {
	cfg *config.Config

	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// NewManager creates a backup manager for cfg.DataDir.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg, Now: time.Now}
}

func (m *Manager) backupsDir() string {
	return filepath.Join(m.cfg.DataDir, m.cfg.BackupsDirName)
}

// Snapshot copies every regular file in the data root into a new
// timestamped folder under the backups directory and returns its path.
// The advisory lock is held so no writer is mid-rewrite during the
// copy.
func (m *Manager) Snapshot() (string, error) {
	release, err := datafile.Lock(m.cfg.DataDir)
	if err != nil {
		return "", err
	}
	defer release()

	dest := filepath.Join(m.backupsDir(), m.Now().Format(snapshotLayout))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir %s: %w", dest, err)
	}

	entries, err := os.ReadDir(m.cfg.DataDir)
	if err != nil {
		return "", fmt.Errorf("failed to read data dir: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(4)
	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		name := entry.Name()
		copied++
		g.Go(func() error {
			return copyFile(
				filepath.Join(m.cfg.DataDir, name),
				filepath.Join(dest, name),
			)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	slog.Info("snapshot written", "dir", dest, "files", copied)
	return dest, nil
}

// Prune deletes the oldest snapshots beyond the retention count.
func (m *Manager) Prune() error {
	entries, err := os.ReadDir(m.backupsDir())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read backups dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= m.cfg.BackupRetention {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-m.cfg.BackupRetention] {
		path := filepath.Join(m.backupsDir(), name)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to prune snapshot %s: %w", path, err)
		}
		slog.Info("snapshot pruned", "dir", path)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Sync()
}
