package types

import "encoding/json"

// ViewType is the closed set of saved view presentations.
type ViewType string

const (
	ViewTable    ViewType = "table"
	ViewBoard    ViewType = "board"
	ViewCalendar ViewType = "calendar"
)

// Valid reports whether the tag is a recognized view type.
func (t ViewType) Valid() bool {
	return t == ViewTable || t == ViewBoard || t == ViewCalendar
}

// View is a saved presentation of a database: a named layout with opaque
// filter/sort configuration. Filtering and sorting semantics are a UI
// concern; the data layer stores the config verbatim.
type View struct {
	ID         string          `json:"id"`
	DatabaseID string          `json:"databaseId"`
	Name       string          `json:"name"`
	Type       ViewType        `json:"type"`
	Config     json.RawMessage `json:"config"`
	OrderIndex int64           `json:"orderIndex"`
	CreatedAt  int64           `json:"createdAt"`
}

// ViewUpdate carries the recognized partial-update fields for a view.
type ViewUpdate struct {
	Name   *string         `json:"name,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Empty reports whether the update carries no recognized field.
func (u ViewUpdate) Empty() bool {
	return u.Name == nil && u.Config == nil
}
