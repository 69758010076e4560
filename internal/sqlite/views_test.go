// Unit tests for saved view operations.
package sqlite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehmetDevlp/notenew/pkg/types"
)

func TestAddView(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)

	t.Run("first view gets order index 1", func(t *testing.T) {
		v, err := s.AddView(db.ID, "All tasks", types.ViewTable, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.OrderIndex)
		assert.Equal(t, types.ViewTable, v.Type)
		assert.JSONEq(t, `{}`, string(v.Config))
	})

	t.Run("config is stored verbatim", func(t *testing.T) {
		cfg := json.RawMessage(`{"groupBy":"status","hideEmpty":true}`)
		v, err := s.AddView(db.ID, "By status", types.ViewBoard, cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v.OrderIndex)
		assert.JSONEq(t, string(cfg), string(v.Config))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := s.AddView(db.ID, "Timeline", types.ViewType("timeline"), nil)
		assert.ErrorIs(t, err, types.ErrUnknownViewType)
	})

	t.Run("malformed config", func(t *testing.T) {
		_, err := s.AddView(db.ID, "Broken", types.ViewTable, json.RawMessage(`{`))
		assert.ErrorIs(t, err, types.ErrSchemaMismatch)
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := s.AddView("no-such-db", "All", types.ViewTable, nil)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestGetViews(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)

	views, err := s.GetViews(db.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	table, err := s.AddView(db.ID, "Table", types.ViewTable, nil)
	require.NoError(t, err)
	board, err := s.AddView(db.ID, "Board", types.ViewBoard, nil)
	require.NoError(t, err)

	views, err = s.GetViews(db.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, table.ID, views[0].ID)
	assert.Equal(t, board.ID, views[1].ID)
}

func TestUpdateView(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)
	v, err := s.AddView(db.ID, "Calendar", types.ViewCalendar, nil)
	require.NoError(t, err)

	err = s.UpdateView(v.ID, types.ViewUpdate{
		Name:   strPtr("Deadlines"),
		Config: json.RawMessage(`{"dateProperty":"due"}`),
	})
	require.NoError(t, err)

	views, err := s.GetViews(db.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Deadlines", views[0].Name)
	assert.JSONEq(t, `{"dateProperty":"due"}`, string(views[0].Config))
	// Type is immutable.
	assert.Equal(t, types.ViewCalendar, views[0].Type)

	t.Run("malformed config", func(t *testing.T) {
		err := s.UpdateView(v.ID, types.ViewUpdate{Config: json.RawMessage(`not json`)})
		assert.ErrorIs(t, err, types.ErrSchemaMismatch)
	})

	t.Run("missing id succeeds silently", func(t *testing.T) {
		assert.NoError(t, s.UpdateView("no-such-id", types.ViewUpdate{Name: strPtr("X")}))
	})
}

func TestDeleteView(t *testing.T) {
	s := newTestStore(t)

	db, err := s.CreateDatabase("Tasks", nil)
	require.NoError(t, err)
	v, err := s.AddView(db.ID, "Table", types.ViewTable, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteView(v.ID))

	views, err := s.GetViews(db.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	assert.NoError(t, s.DeleteView("no-such-id"))
}
