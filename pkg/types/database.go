package types

// DefaultTitle is applied when a database or page is created without one.
const DefaultTitle = "Untitled"

// Database is a container of structured rows: pages whose cells are typed
// by the database's property columns. A database may itself be nested
// under a page via ParentPageID.
type Database struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Icon         *string `json:"icon,omitempty"`
	CoverURL     *string `json:"coverUrl,omitempty"`
	ParentPageID *string `json:"parentPageId,omitempty"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// DatabaseUpdate carries the recognized partial-update fields for a
// database. Nil fields are left untouched.
type DatabaseUpdate struct {
	Title    *string `json:"title,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

// Empty reports whether the update carries no recognized field.
func (u DatabaseUpdate) Empty() bool {
	return u.Title == nil && u.Icon == nil && u.CoverURL == nil
}
