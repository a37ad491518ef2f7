package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Snapshot copies the document to a dated backup file, at most once per
// local calendar day, then prunes the oldest backups beyond the
// configured retention. A missing document is not an error; there is
// simply nothing to back up yet.
func (s *FileStore) Snapshot() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}

	name := fmt.Sprintf("%s_%s.json", s.baseName(), s.now().Format("2006-01-02"))
	target := filepath.Join(s.snapshotDir, name)

	if _, err := os.Stat(target); err == nil {
		// Today's snapshot already exists.
		return nil
	}

	if err := copyFile(s.path, target); err != nil {
		return fmt.Errorf("creating snapshot %s: %w", name, err)
	}
	log.Info("snapshot created", "file", name)

	if err := s.prune(); err != nil {
		return err
	}
	return nil
}

// prune deletes dated backups beyond maxSnapshots, keeping the newest
// files by modification time.
func (s *FileStore) prune() error {
	entries, err := os.ReadDir(s.snapshotDir)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	type snapshot struct {
		path    string
		modTime time.Time
	}

	var snapshots []snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot{
			path:    filepath.Join(s.snapshotDir, e.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].modTime.After(snapshots[j].modTime)
	})

	for _, old := range snapshots[min(len(snapshots), s.maxSnapshots):] {
		if err := os.Remove(old.path); err != nil {
			return fmt.Errorf("deleting old snapshot %s: %w", filepath.Base(old.path), err)
		}
		log.Info("deleted old snapshot", "file", filepath.Base(old.path))
	}
	return nil
}

// baseName is the document file name without its .json extension, used
// as the snapshot name prefix.
func (s *FileStore) baseName() string {
	return strings.TrimSuffix(filepath.Base(s.path), ".json")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
