// Package backup delivers store snapshots to a destination: a local
// directory or an S3 bucket.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Destination interface {
	Store(ctx context.Context, name string, data []byte) error
}

// SnapshotName returns the conventional backup file name for t.
func SnapshotName(t time.Time) string {
	return fmt.Sprintf("cafetill-backup-%s.json", t.Format("2006-01-02"))
}

// FileDestination writes snapshots into a local directory.
type FileDestination struct {
	Dir string
}

func (d *FileDestination) Store(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create backup directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write backup file: %w", err)
	}
	return nil
}
