// Database container operations: creation, retrieval, partial update, and
// the cascading delete that removes a database's columns, row pages, cell
// values, and views in one transaction.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

const databaseColumns = "id, title, icon, cover_url, parent_page_id, created_at, updated_at"

// CreateDatabase creates a database container, optionally nested under a
// page. An empty title defaults to "Untitled".
func (s *Store) CreateDatabase(title string, parentPageID *string) (*types.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = types.DefaultTitle
	}
	ts := now()

	_, err = s.db.Exec(
		"INSERT INTO databases (id, title, parent_page_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		id, title, parentPageID, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting database: %w", err)
	}

	return s.getDatabase(id)
}

// GetDatabase retrieves a database by ID.
// Returns ErrNotFound if no database exists with that ID.
func (s *Store) GetDatabase(id string) (*types.Database, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getDatabase(id)
}

func (s *Store) getDatabase(id string) (*types.Database, error) {
	row := s.db.QueryRow(
		"SELECT "+databaseColumns+" FROM databases WHERE id = ?", id,
	)
	d, err := hydrateDatabase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting database %s: %w", id, err)
	}
	return d, nil
}

// GetDatabases returns every database, newest first.
func (s *Store) GetDatabases() ([]*types.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT " + databaseColumns + " FROM databases ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("fetching databases: %w", err)
	}
	defer rows.Close()

	results := []*types.Database{}
	for rows.Next() {
		d, err := hydrateDatabase(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating database: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating databases: %w", err)
	}
	return results, nil
}

// UpdateDatabase applies the recognized fields of u and bumps updated_at.
// A no-op when u is empty or when no database exists with that ID.
func (s *Store) UpdateDatabase(id string, u types.DatabaseUpdate) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if u.Empty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := []string{}
	args := []any{}
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *u.Icon)
	}
	if u.CoverURL != nil {
		sets = append(sets, "cover_url = ?")
		args = append(args, *u.CoverURL)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id)

	query := "UPDATE databases SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating database %s: %w", id, err)
	}
	return nil
}

// DeleteDatabase removes a database and everything it owns: its property
// columns and views (cascade), its row pages (deleted explicitly since the
// page parent is not a foreign key), and their cell values (cascade).
// A no-op when no database exists with that ID.
func (s *Store) DeleteDatabase(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM pages WHERE parent_id = ? AND parent_type = ?",
		id, string(types.ParentDatabase),
	); err != nil {
		return fmt.Errorf("deleting database rows: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM databases WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting database %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing database deletion: %w", err)
	}
	return nil
}

// hydrateDatabase converts a row into a *types.Database.
func hydrateDatabase(row rowScanner) (*types.Database, error) {
	var d types.Database
	err := row.Scan(&d.ID, &d.Title, &d.Icon, &d.CoverURL, &d.ParentPageID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
