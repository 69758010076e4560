package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PropertyConfig is the decoded, type-specific configuration of a property.
// One concrete shape exists per property type tag.
type PropertyConfig interface {
	isPropertyConfig()
}

// TextConfig has no configuration.
type TextConfig struct{}

// NumberFormat selects how a number cell is rendered. Formatting is a
// presentation concern; the stored value is the bare number.
type NumberFormat string

const (
	FormatNumber  NumberFormat = "number"
	FormatPercent NumberFormat = "percent"
	FormatDollar  NumberFormat = "dollar"
)

// NumberConfig configures a number property.
type NumberConfig struct {
	Format NumberFormat `json:"format"`
}

// SelectConfig configures a select property.
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// MultiSelectConfig configures a multi-select property.
type MultiSelectConfig struct {
	Options []SelectOption `json:"options"`
}

// DateConfig has no configuration; range and time-of-day flags live on the
// value.
type DateConfig struct{}

// CheckboxConfig has no configuration.
type CheckboxConfig struct{}

// StatusConfig configures a status property as option groups.
type StatusConfig struct {
	Groups []StatusGroup `json:"groups"`
}

func (TextConfig) isPropertyConfig()        {}
func (NumberConfig) isPropertyConfig()      {}
func (SelectConfig) isPropertyConfig()      {}
func (MultiSelectConfig) isPropertyConfig() {}
func (DateConfig) isPropertyConfig()        {}
func (CheckboxConfig) isPropertyConfig()    {}
func (StatusConfig) isPropertyConfig()      {}

// DefaultConfig returns the serialized default configuration applied when
// a property is created without one.
// Returns ErrUnknownPropertyType for tags outside the closed set.
func DefaultConfig(t PropertyType) (json.RawMessage, error) {
	switch t {
	case PropertyText, PropertyDate, PropertyCheckbox:
		return json.RawMessage(`{}`), nil
	case PropertyNumber:
		return json.RawMessage(`{"format":"number"}`), nil
	case PropertySelect, PropertyMultiSelect:
		return json.RawMessage(`{"options":[]}`), nil
	case PropertyStatus:
		return defaultStatusConfig()
	default:
		return nil, ErrUnknownPropertyType
	}
}

// defaultStatusConfig builds the conventional three-group status layout
// with one seeded option per group. Group and option ids are fixed slugs
// so defaults are deterministic.
func defaultStatusConfig() (json.RawMessage, error) {
	cfg := StatusConfig{
		Groups: []StatusGroup{
			{ID: "todo", Name: "To-do", Options: []SelectOption{
				{ID: "not-started", Name: "Not started", Color: ColorGray},
			}},
			{ID: "in-progress", Name: "In Progress", Options: []SelectOption{
				{ID: "in-progress", Name: "In progress", Color: ColorBlue},
			}},
			{ID: "complete", Name: "Complete", Options: []SelectOption{
				{ID: "done", Name: "Done", Color: ColorGreen},
			}},
		},
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling default status config: %w", err)
	}
	return raw, nil
}

// DecodeConfig parses and validates raw against the config shape dictated
// by the property type. The structure is closed: unknown fields are
// rejected with ErrSchemaMismatch.
func DecodeConfig(t PropertyType, raw json.RawMessage) (PropertyConfig, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrSchemaMismatch
	}
	switch t {
	case PropertyText:
		var cfg TextConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case PropertyNumber:
		var cfg NumberConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		switch cfg.Format {
		case FormatNumber, FormatPercent, FormatDollar:
		default:
			return nil, ErrSchemaMismatch
		}
		return cfg, nil
	case PropertySelect:
		var cfg SelectConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		if err := validateOptions(cfg.Options); err != nil {
			return nil, err
		}
		return cfg, nil
	case PropertyMultiSelect:
		var cfg MultiSelectConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		if err := validateOptions(cfg.Options); err != nil {
			return nil, err
		}
		return cfg, nil
	case PropertyDate:
		var cfg DateConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case PropertyCheckbox:
		var cfg CheckboxConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case PropertyStatus:
		var cfg StatusConfig
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		for _, g := range cfg.Groups {
			if g.ID == "" {
				return nil, ErrSchemaMismatch
			}
			if err := validateOptions(g.Options); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	default:
		return nil, ErrUnknownPropertyType
	}
}

// ValidateConfig checks raw against the property type's config schema.
func ValidateConfig(t PropertyType, raw json.RawMessage) error {
	_, err := DecodeConfig(t, raw)
	return err
}

func validateOptions(options []SelectOption) error {
	for _, o := range options {
		if err := o.validate(); err != nil {
			return err
		}
	}
	return nil
}

// strictUnmarshal decodes raw into v, rejecting unknown fields and
// trailing data with ErrSchemaMismatch.
func strictUnmarshal(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrSchemaMismatch
	}
	if dec.More() {
		return ErrSchemaMismatch
	}
	return nil
}
