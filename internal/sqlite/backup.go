package sqlite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

// backupTimestamp formats a time for embedding in a backup file name.
// Colons are avoided for Windows compatibility.
const backupTimestamp = "2006-01-02T15-04-05Z"

// backupFile copies path to a timestamped sibling before the store opens
// it. Returns the backup path, or "" when there is nothing to back up.
func backupFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking database file: %w", err)
	}

	ts := time.Now().UTC().Format(backupTimestamp)
	backupPath := strings.TrimSuffix(path, ".db") + "-backup-" + ts + ".db"

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening database file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", fmt.Errorf("copying to backup: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", fmt.Errorf("syncing backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing backup: %w", err)
	}
	return backupPath, nil
}
