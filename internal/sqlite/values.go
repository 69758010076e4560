// Cell value operations. One row per (page, property) pair, enforced by a
// uniqueness constraint; writes are idempotent upserts with no history.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

// SetPropertyValue writes the value of one property for one page: an
// insert on first write, an in-place overwrite afterwards.
//
// The value shape is validated against the owning property's declared type
// before any mutation (ErrSchemaMismatch on conflict). Option-bearing
// values are stored as snapshots and are not checked against the
// property's current option list.
// Returns ErrNotFound when the property or the page does not exist.
func (s *Store) SetPropertyValue(pageID, propertyID string, value json.RawMessage) error {
	if pageID == "" || propertyID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var typeTag string
	err := s.db.QueryRow(
		"SELECT type FROM database_properties WHERE id = ?", propertyID,
	).Scan(&typeTag)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("property %s: %w", propertyID, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking property %s: %w", propertyID, err)
	}

	if err := types.ValidateValue(types.PropertyType(typeTag), value); err != nil {
		return err
	}

	if err := s.exists("pages", pageID); err != nil {
		return fmt.Errorf("page %s: %w", pageID, err)
	}

	id, err := newID()
	if err != nil {
		return err
	}

	// The freshly generated id is only used on insert; on conflict the
	// existing row keeps its id and the value is overwritten in place.
	_, err = s.db.Exec(
		`INSERT INTO page_properties (id, page_id, property_id, value)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(page_id, property_id) DO UPDATE SET value = excluded.value`,
		id, pageID, propertyID, string(value),
	)
	if err != nil {
		return fmt.Errorf("upserting value: %w", err)
	}
	return nil
}

// GetPropertyValue retrieves the value of one property for one page.
// Returns ErrNotFound when no cell has been written for the pair.
func (s *Store) GetPropertyValue(pageID, propertyID string) (json.RawMessage, error) {
	if pageID == "" || propertyID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(
		"SELECT value FROM page_properties WHERE page_id = ? AND property_id = ?",
		pageID, propertyID,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting value: %w", err)
	}
	return json.RawMessage(value), nil
}

// GetPageProperties returns all cells of one page keyed by property ID,
// the shape a table renderer consumes for one row. Pages with no cells get
// an empty map.
func (s *Store) GetPageProperties(pageID string) (map[string]json.RawMessage, error) {
	if pageID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT property_id, value FROM page_properties WHERE page_id = ?", pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching page values: %w", err)
	}
	defer rows.Close()

	values := map[string]json.RawMessage{}
	for rows.Next() {
		var propertyID, value string
		if err := rows.Scan(&propertyID, &value); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		values[propertyID] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating values: %w", err)
	}
	return values, nil
}
