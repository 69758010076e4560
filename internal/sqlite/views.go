// Saved view operations. Views borrow the property columns' append-only
// ordering; their filter/sort config is opaque to the data layer.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

const viewColumns = "id, database_id, name, type, config, order_index, created_at"

// AddView appends a saved view to a database. A nil config defaults to an
// empty object; the config must otherwise be valid JSON.
// Returns ErrUnknownViewType for an unrecognized tag and ErrNotFound when
// the database does not exist.
func (s *Store) AddView(databaseID, name string, t types.ViewType, config json.RawMessage) (*types.View, error) {
	if databaseID == "" {
		return nil, types.ErrInvalidID
	}
	if !t.Valid() {
		return nil, types.ErrUnknownViewType
	}
	if config == nil {
		config = json.RawMessage(`{}`)
	} else if !json.Valid(config) {
		return nil, types.ErrSchemaMismatch
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

	var order int64
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(order_index), 0) + 1 FROM database_views WHERE database_id = ?",
		databaseID,
	).Scan(&order)
	if err != nil {
		return nil, fmt.Errorf("computing order index: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO database_views (id, database_id, name, type, config, order_index, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, databaseID, name, string(t), string(config), order, now(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting view: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing view: %w", err)
	}

	return s.getView(id)
}

func (s *Store) getView(id string) (*types.View, error) {
	row := s.db.QueryRow(
		"SELECT "+viewColumns+" FROM database_views WHERE id = ?", id,
	)
	v, err := hydrateView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting view %s: %w", id, err)
	}
	return v, nil
}

// GetViews returns a database's views ordered by order_index ascending.
func (s *Store) GetViews(databaseID string) ([]*types.View, error) {
	if databaseID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT "+viewColumns+" FROM database_views WHERE database_id = ? ORDER BY order_index ASC",
		databaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching views: %w", err)
	}
	defer rows.Close()

	results := []*types.View{}
	for rows.Next() {
		v, err := hydrateView(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating view: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating views: %w", err)
	}
	return results, nil
}

// UpdateView applies the recognized fields of u (name, config). A no-op
// when u is empty or when no view exists with that ID.
func (s *Store) UpdateView(id string, u types.ViewUpdate) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if u.Empty() {
		return nil
	}
	if u.Config != nil && !json.Valid(u.Config) {
		return types.ErrSchemaMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := []string{}
	args := []any{}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Config != nil {
		sets = append(sets, "config = ?")
		args = append(args, string(u.Config))
	}
	args = append(args, id)

	query := "UPDATE database_views SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating view %s: %w", id, err)
	}
	return nil
}

// DeleteView removes a saved view. A no-op when no view exists with that ID.
func (s *Store) DeleteView(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM database_views WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting view %s: %w", id, err)
	}
	return nil
}

// hydrateView converts a row into a *types.View.
func hydrateView(row rowScanner) (*types.View, error) {
	var v types.View
	var typeTag, config string
	err := row.Scan(&v.ID, &v.DatabaseID, &v.Name, &typeTag, &config, &v.OrderIndex, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.Type = types.ViewType(typeTag)
	v.Config = json.RawMessage(config)
	return &v, nil
}
