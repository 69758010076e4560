// Page operations. A page is created under a database (as a row) or under
// another page (as a sub-document); archiving is a reversible flag flip,
// only DeletePage removes the row.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

const pageColumns = "id, parent_id, parent_type, title, icon, cover_image, content, is_archived, is_favorite, created_at, updated_at"

// CreatePage creates a page under the given parent. The parent must exist
// in the table named by the reference's kind; the store cannot express
// this as a foreign key, so it is checked here.
// Returns ErrInvalidParentType for an unrecognized kind and a wrapped
// ErrConstraintViolation when the referenced parent is missing.
func (s *Store) CreatePage(parent types.ParentRef) (*types.Page, error) {
	if !parent.Kind.Valid() {
		return nil, types.ErrInvalidParentType
	}
	if parent.ID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	parentTable := "pages"
	if parent.Kind == types.ParentDatabase {
		parentTable = "databases"
	}
	if err := s.exists(parentTable, parent.ID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("parent %s %s does not exist: %w",
				parent.Kind, parent.ID, types.ErrConstraintViolation)
		}
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	ts := now()

	_, err = s.db.Exec(
		"INSERT INTO pages (id, parent_id, parent_type, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		id, parent.ID, string(parent.Kind), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting page: %w", err)
	}

	return s.getPage(id)
}

// GetPage retrieves a page by ID, with content hydrated to its JSON block
// sequence. Returns ErrNotFound if no page exists with that ID.
func (s *Store) GetPage(id string) (*types.Page, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getPage(id)
}

func (s *Store) getPage(id string) (*types.Page, error) {
	row := s.db.QueryRow(
		"SELECT "+pageColumns+" FROM pages WHERE id = ?", id,
	)
	p, err := hydratePage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting page %s: %w", id, err)
	}
	return p, nil
}

// GetPages returns the pages under a parent, newest first. The parent may
// be a database (rows) or a page (sub-documents).
func (s *Store) GetPages(parentID string) ([]*types.Page, error) {
	if parentID == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	// rowid breaks ties between pages created within the same second.
	rows, err := s.db.Query(
		"SELECT "+pageColumns+" FROM pages WHERE parent_id = ? ORDER BY created_at DESC, rowid DESC",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching pages: %w", err)
	}
	defer rows.Close()

	results := []*types.Page{}
	for rows.Next() {
		p, err := hydratePage(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating page: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return results, nil
}

// UpdatePage applies the recognized fields of u and bumps updated_at.
// Content must be a JSON array (the opaque block sequence). A no-op when u
// is empty or when no page exists with that ID.
func (s *Store) UpdatePage(id string, u types.PageUpdate) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if u.Empty() {
		return nil
	}
	if u.Content != nil && !types.ValidContent(u.Content) {
		return fmt.Errorf("page content must be a JSON array: %w", types.ErrSchemaMismatch)
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
	if u.CoverImage != nil {
		sets = append(sets, "cover_image = ?")
		args = append(args, *u.CoverImage)
	}
	if u.IsArchived != nil {
		sets = append(sets, "is_archived = ?")
		args = append(args, boolToInt(*u.IsArchived))
	}
	if u.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, boolToInt(*u.IsFavorite))
	}
	if u.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, string(u.Content))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id)

	query := "UPDATE pages SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating page %s: %w", id, err)
	}
	return nil
}

// DeletePage hard-deletes a page; its cell values cascade away with it.
// Child pages are not touched. A no-op when no page exists with that ID.
func (s *Store) DeletePage(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM pages WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting page %s: %w", id, err)
	}
	return nil
}

// hydratePage converts a row into a *types.Page.
func hydratePage(row rowScanner) (*types.Page, error) {
	var p types.Page
	var parentID, parentType *string
	var content string
	var archived, favorite int
	err := row.Scan(&p.ID, &parentID, &parentType, &p.Title, &p.Icon, &p.CoverImage,
		&content, &archived, &favorite, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		p.ParentRef.ID = *parentID
	}
	if parentType != nil {
		p.ParentRef.Kind = types.ParentKind(*parentType)
	}
	if content == "" {
		p.Content = types.EmptyContent
	} else {
		p.Content = json.RawMessage(content)
	}
	p.IsArchived = archived != 0
	p.IsFavorite = favorite != 0
	return &p, nil
}
