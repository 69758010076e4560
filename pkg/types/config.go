package types

import "errors"

// Config holds the parameters for opening the persistent store.
type Config struct {
	// DataDir is the application-private directory holding the database
	// file and its backups. Created if it does not exist.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SkipBackup disables the best-effort backup copy made before the
	// first write-capable open of an existing database file.
	SkipBackup bool `json:"skip_backup" yaml:"skip_backup"`
}

// ErrDataDirEmpty is returned by Validate when no data directory is set.
var ErrDataDirEmpty = errors.New("data directory must not be empty")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
