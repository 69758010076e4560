// Property column operations. Columns are append-ordered: each new
// property takes max(order_index)+1 for its database, and indexes are
// never reused after deletion.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

const propertyColumns = "id, database_id, name, type, config, order_index, visible, created_at"

// AddProperty appends a typed column to a database. When config is nil the
// type's default configuration is applied; otherwise the config must
// conform to the type's schema.
// Returns ErrUnknownPropertyType for a tag outside the closed set,
// ErrSchemaMismatch for a malformed config, and ErrNotFound when the
// database does not exist.
func (s *Store) AddProperty(databaseID, name string, t types.PropertyType, config json.RawMessage) (*types.Property, error) {
	if databaseID == "" {
		return nil, types.ErrInvalidID
	}
	if !t.Valid() {
		return nil, types.ErrUnknownPropertyType
	}

	if config == nil {
		var err error
		config, err = types.DefaultConfig(t)
		if err != nil {
			return nil, err
		}
	} else if err := types.ValidateConfig(t, config); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exists("databases", databaseID); err != nil {
		return nil, fmt.Errorf("database %s: %w", databaseID, err)
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Append-only ordering: one past the current maximum, 1 for the first
	// column. Gaps left by deletions are never refilled.
	var order int64
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(order_index), 0) + 1 FROM database_properties WHERE database_id = ?",
		databaseID,
	).Scan(&order)
	if err != nil {
		return nil, fmt.Errorf("computing order index: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO database_properties (id, database_id, name, type, config, order_index, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, databaseID, name, string(t), string(config), order, now(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing property: %w", err)
	}

	return s.getProperty(id)
}

// GetProperty retrieves a property column by ID.
// Returns ErrNotFound if no property exists with that ID.
func (s *Store) GetProperty(id string) (*types.Property, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getProperty(id)
}

func (s *Store) getProperty(id string) (*types.Property, error) {
	row := s.db.QueryRow(
		"SELECT "+propertyColumns+" FROM database_properties WHERE id = ?", id,
	)
	p, err := hydrateProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting property %s: %w", id, err)
	}
	return p, nil
}

// GetProperties returns a database's columns ordered by order_index
// ascending, matching the order in which they were added.
func (s *Store) GetProperties(databaseID string) ([]*types.Property, error) {
	if databaseID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT "+propertyColumns+" FROM database_properties WHERE database_id = ? ORDER BY order_index ASC",
		databaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching properties: %w", err)
	}
	defer rows.Close()

	results := []*types.Property{}
	for rows.Next() {
		p, err := hydrateProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating property: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return results, nil
}

// UpdateProperty applies the recognized fields of u (name, config,
// visibility). A config update must conform to the property's declared
// type. A no-op when u is empty or when no property exists with that ID:
// missing targets are tolerated so retries stay idempotent.
func (s *Store) UpdateProperty(id string, u types.PropertyUpdate) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if u.Empty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var typeTag string
	err := s.db.QueryRow(
		"SELECT type FROM database_properties WHERE id = ?", id,
	).Scan(&typeTag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking property %s: %w", id, err)
	}

	sets := []string{}
	args := []any{}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Config != nil {
		if err := types.ValidateConfig(types.PropertyType(typeTag), u.Config); err != nil {
			return err
		}
		sets = append(sets, "config = ?")
		args = append(args, string(u.Config))
	}
	if u.Visible != nil {
		sets = append(sets, "visible = ?")
		args = append(args, boolToInt(*u.Visible))
	}
	args = append(args, id)

	query := "UPDATE database_properties SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating property %s: %w", id, err)
	}
	return nil
}

// DeleteProperty removes a column; its cell values cascade away with it.
// A no-op when no property exists with that ID.
func (s *Store) DeleteProperty(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM database_properties WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting property %s: %w", id, err)
	}
	return nil
}

// exists checks that a row with the given id is present in table.
// Returns ErrNotFound when it is not.
func (s *Store) exists(table, id string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", table, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// hydrateProperty converts a row into a *types.Property.
func hydrateProperty(row rowScanner) (*types.Property, error) {
	var p types.Property
	var typeTag, config string
	var visible int
	err := row.Scan(&p.ID, &p.DatabaseID, &p.Name, &typeTag, &config, &p.OrderIndex, &visible, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Type = types.PropertyType(typeTag)
	p.Config = json.RawMessage(config)
	p.Visible = visible != 0
	return &p, nil
}
