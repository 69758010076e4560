// Unit tests for page operations: parent validation, hydration defaults,
// partial updates, content round-trips, and the archive flag.
package sqlite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

func TestCreatePage(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)

	t.Run("row under a database", func(t *testing.T) {
		p, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
		require.NoError(t, err)
		assert.Equal(t, types.ParentDatabase, p.Kind)
		assert.Equal(t, db.ID, p.ParentRef.ID)
		assert.Equal(t, types.DefaultTitle, p.Title)
		assert.JSONEq(t, `[]`, string(p.Content))
		assert.False(t, p.IsArchived)
		assert.False(t, p.IsFavorite)
	})

	t.Run("sub-document under a page", func(t *testing.T) {
		parent, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
		require.NoError(t, err)

		child, err := s.CreatePage(types.ParentRef{Kind: types.ParentPage, ID: parent.ID})
		require.NoError(t, err)
		assert.Equal(t, types.ParentPage, child.Kind)
		assert.Equal(t, parent.ID, child.ParentRef.ID)
	})

	t.Run("invalid parent kind", func(t *testing.T) {
		_, err := s.CreatePage(types.ParentRef{Kind: "workspace", ID: db.ID})
		assert.ErrorIs(t, err, types.ErrInvalidParentType)
	})

	t.Run("missing parent database", func(t *testing.T) {
		_, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: "no-such-db"})
		assert.ErrorIs(t, err, types.ErrConstraintViolation)
	})

	t.Run("kind must match the table the parent lives in", func(t *testing.T) {
		// A database id presented as a page parent is a constraint
		// violation, not a silent cross-table match.
		_, err := s.CreatePage(types.ParentRef{Kind: types.ParentPage, ID: db.ID})
		assert.ErrorIs(t, err, types.ErrConstraintViolation)
	})
}

func TestGetPages(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)

	rows, err := s.GetPages(db.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	first, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
	require.NoError(t, err)
	second, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
	require.NoError(t, err)

	// A sub-document of the first row must not appear among the
	// database's rows.
	_, err = s.CreatePage(types.ParentRef{Kind: types.ParentPage, ID: first.ID})
	require.NoError(t, err)

	rows, err = s.GetPages(db.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestUpdatePage(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)

	newPage := func(t *testing.T) *types.Page {
		t.Helper()
		p, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
		require.NoError(t, err)
		return p
	}

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		p := newPage(t)
		require.NoError(t, s.UpdatePage(p.ID, types.PageUpdate{Title: strPtr("Ship it")}))

		got, err := s.GetPage(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ship it", got.Title)
		assert.JSONEq(t, `[]`, string(got.Content))
		assert.False(t, got.IsFavorite)
	})

	t.Run("content round-trips byte-compatibly", func(t *testing.T) {
		p := newPage(t)
		content := json.RawMessage(`[{"type":"heading","level":1,"text":"Notes"},{"type":"paragraph","text":"hello"}]`)
		require.NoError(t, s.UpdatePage(p.ID, types.PageUpdate{Content: content}))

		got, err := s.GetPage(p.ID)
		require.NoError(t, err)
		assert.Equal(t, string(content), string(got.Content))
	})

	t.Run("content must be a JSON array", func(t *testing.T) {
		p := newPage(t)
		err := s.UpdatePage(p.ID, types.PageUpdate{Content: json.RawMessage(`{"type":"paragraph"}`)})
		assert.ErrorIs(t, err, types.ErrSchemaMismatch)
	})

	t.Run("archive and restore", func(t *testing.T) {
		p := newPage(t)

		require.NoError(t, s.UpdatePage(p.ID, types.PageUpdate{IsArchived: boolPtr(true)}))
		got, err := s.GetPage(p.ID)
		require.NoError(t, err)
		assert.True(t, got.IsArchived)

		require.NoError(t, s.UpdatePage(p.ID, types.PageUpdate{IsArchived: boolPtr(false)}))
		got, err = s.GetPage(p.ID)
		require.NoError(t, err)
		assert.False(t, got.IsArchived)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, string(p.Content), string(got.Content))
	})

	t.Run("missing id succeeds silently", func(t *testing.T) {
		assert.NoError(t, s.UpdatePage("no-such-id", types.PageUpdate{Title: strPtr("X")}))
	})
}

func TestDeletePage(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)
	prop, err := s.AddProperty(db.ID, "Note", types.PropertyText, nil)
	require.NoError(t, err)

	page, err := s.CreatePage(types.ParentRef{Kind: types.ParentDatabase, ID: db.ID})
	require.NoError(t, err)
	child, err := s.CreatePage(types.ParentRef{Kind: types.ParentPage, ID: page.ID})
	require.NoError(t, err)
	require.NoError(t, s.SetPropertyValue(page.ID, prop.ID, json.RawMessage(`{"text":"bye"}`)))

	require.NoError(t, s.DeletePage(page.ID))

	_, err = s.GetPage(page.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.GetPropertyValue(page.ID, prop.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Children are left in place, now orphaned.
	_, err = s.GetPage(child.ID)
	assert.NoError(t, err)

	t.Run("missing id succeeds silently", func(t *testing.T) {
		assert.NoError(t, s.DeletePage("no-such-id"))
	})
}
