package types

import (
	"bytes"
	"encoding/json"
)

// ParentKind discriminates what a page's ParentRef points at.
type ParentKind string

// A page lives either directly under a database (as a row) or under
// another page (as a sub-document).
const (
	ParentDatabase ParentKind = "database"
	ParentPage     ParentKind = "page"
)

// Valid reports whether the kind is one of the two recognized discriminators.
func (k ParentKind) Valid() bool {
	return k == ParentDatabase || k == ParentPage
}

// ParentRef is a tagged reference into either the databases or the pages
// table, depending on Kind. Modeling the pair as one value keeps the
// exclusivity invariant representable in the type system.
type ParentRef struct {
	Kind ParentKind `json:"parentType"`
	ID   string     `json:"parentId"`
}

// EmptyContent is the serialized form of an empty block sequence.
var EmptyContent = json.RawMessage("[]")

// Page is a node in the workspace hierarchy. It doubles as a free-standing
// document and as a database row; the two share one lifecycle and are
// distinguished only by the parent reference.
type Page struct {
	ID string `json:"id"`
	ParentRef
	Title      string          `json:"title"`
	Icon       *string         `json:"icon,omitempty"`
	CoverImage *string         `json:"coverImage,omitempty"`
	Content    json.RawMessage `json:"content"`
	IsArchived bool            `json:"isArchived"`
	IsFavorite bool            `json:"isFavorite"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

// PageUpdate carries the recognized partial-update fields for a page.
// Nil fields are left untouched; unknown JSON keys are dropped during
// decoding, matching the wire contract's silent-ignore rule.
type PageUpdate struct {
	Title      *string         `json:"title,omitempty"`
	Icon       *string         `json:"icon,omitempty"`
	CoverImage *string         `json:"coverImage,omitempty"`
	IsArchived *bool           `json:"isArchived,omitempty"`
	IsFavorite *bool           `json:"isFavorite,omitempty"`
	Content    json.RawMessage `json:"content,omitempty"`
}

// Empty reports whether the update carries no recognized field.
func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Icon == nil && u.CoverImage == nil &&
		u.IsArchived == nil && u.IsFavorite == nil && u.Content == nil
}

// ValidContent reports whether raw is a well-formed block sequence: any
// valid JSON array, including the empty one. The block structure itself is
// opaque to the data layer.
func ValidContent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	return json.Valid(trimmed)
}
