package types

import "encoding/json"

// PropertyType is the closed set of column types a database may define.
type PropertyType string

const (
	PropertyText        PropertyType = "text"
	PropertyNumber      PropertyType = "number"
	PropertySelect      PropertyType = "select"
	PropertyMultiSelect PropertyType = "multi_select"
	PropertyDate        PropertyType = "date"
	PropertyCheckbox    PropertyType = "checkbox"
	PropertyStatus      PropertyType = "status"
)

// validPropertyTypes is the set of recognized property type tags.
var validPropertyTypes = map[PropertyType]bool{
	PropertyText:        true,
	PropertyNumber:      true,
	PropertySelect:      true,
	PropertyMultiSelect: true,
	PropertyDate:        true,
	PropertyCheckbox:    true,
	PropertyStatus:      true,
}

// Valid reports whether the tag is one of the seven recognized types.
func (t PropertyType) Valid() bool {
	return validPropertyTypes[t]
}

// Color is a presentation token for select options. Closed palette.
type Color string

const (
	ColorGray   Color = "gray"
	ColorBrown  Color = "brown"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorRed    Color = "red"
)

var validColors = map[Color]bool{
	ColorGray:   true,
	ColorBrown:  true,
	ColorOrange: true,
	ColorYellow: true,
	ColorGreen:  true,
	ColorBlue:   true,
	ColorPurple: true,
	ColorPink:   true,
	ColorRed:    true,
}

// Valid reports whether the color is in the palette.
func (c Color) Valid() bool {
	return validColors[c]
}

// SelectOption is one choice of a select, multi-select, or status property.
// Stored values embed a full copy of the chosen option; renaming or
// recoloring an option later does not rewrite previously stored cells.
type SelectOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// validate checks an option for a non-empty id and a known color.
func (o SelectOption) validate() error {
	if o.ID == "" {
		return ErrSchemaMismatch
	}
	if !o.Color.Valid() {
		return ErrSchemaMismatch
	}
	return nil
}

// StatusGroup is a named bucket of status options, conventionally one of
// to-do, in-progress, and complete.
type StatusGroup struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Options []SelectOption `json:"options"`
}

// Property is a typed column definition owned by exactly one database.
// Config is the raw type-specific configuration; DecodeConfig interprets
// it according to Type.
type Property struct {
	ID         string          `json:"id"`
	DatabaseID string          `json:"databaseId"`
	Name       string          `json:"name"`
	Type       PropertyType    `json:"type"`
	Config     json.RawMessage `json:"config"`
	OrderIndex int64           `json:"orderIndex"`
	Visible    bool            `json:"visible"`
	CreatedAt  int64           `json:"createdAt"`
}

// PropertyUpdate carries the recognized partial-update fields for a
// property. Nil fields are left untouched.
type PropertyUpdate struct {
	Name    *string         `json:"name,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Visible *bool           `json:"visible,omitempty"`
}

// Empty reports whether the update carries no recognized field.
func (u PropertyUpdate) Empty() bool {
	return u.Name == nil && u.Config == nil && u.Visible == nil
}
