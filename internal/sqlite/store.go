// Package sqlite implements the persistent store and data access layer for
// the notenew workspace: databases, typed property columns, pages, cell
// values, and saved views in a single SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "notenew.db"

// Store is the durable storage handle and the public operation set over
// it. One Store is constructed at process start and injected into every
// caller; there is no ambient global.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	log *logrus.Entry
}

// Open creates the data directory if needed, makes a best-effort backup of
// an existing database file, opens the SQLite database in WAL mode with
// foreign keys enforced, and applies schema migrations.
//
// A backup failure is logged and does not block startup; a migration
// failure closes the database and is returned (the store must not operate
// on an uninitialized schema). A nil logger falls back to the logrus
// standard logger.
func Open(cfg types.Config, logger *logrus.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("component", "store")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFileName)
	if !cfg.SkipBackup {
		backupPath, err := backupFile(dbPath)
		switch {
		case err != nil:
			// Best effort: a full disk must not prevent opening the store.
			log.WithError(err).Warn("backup before open failed, continuing")
		case backupPath != "":
			log.WithField("path", backupPath).Info("backup created")
		}
	}

	// WAL keeps readers unblocked by the single writer; foreign keys drive
	// the cascade deletes. Pragma DSN form per the modernc driver.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		dbPath,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	log.WithField("path", dbPath).Debug("store opened")
	return &Store{db: db, log: log}, nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.db = nil
	return nil
}

// migrate applies any schema generations beyond PRAGMA user_version, each
// inside its own transaction.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version >= len(migrations) {
		return nil
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}
		for _, stmt := range migrations[i] {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("applying migration %d: %w", i+1, err)
			}
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}
	return nil
}

// newID generates a random (v4) identifier. There is no fallback: if the
// entropy source fails, the operation fails.
func newID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id.String(), nil
}

// now returns the current time as Unix seconds, the timestamp unit used in
// every table.
func now() int64 {
	return time.Now().Unix()
}

// rowScanner abstracts sql.Row and sql.Rows for the hydrate helpers.
type rowScanner interface {
	Scan(dest ...any) error
}
