package types

import (
	"bytes"
	"encoding/json"
)

// Value shapes, one per property type. Cells are stored and transported as
// raw JSON; DecodeValue interprets them according to the owning property's
// type.

// TextValue holds a text cell. The empty string is a valid value, distinct
// from an absent cell.
type TextValue struct {
	Text string `json:"text"`
}

// NumberValue holds a number cell. A nil Number is an empty cell kept in
// place.
type NumberValue struct {
	Number *float64 `json:"number"`
}

// DateValue holds a date or date-range cell. Start and End are ISO 8601
// strings stored as given; no timezone normalization is applied.
type DateValue struct {
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	IncludeTime bool   `json:"includeTime,omitempty"`
}

// CheckboxValue holds a checkbox cell.
type CheckboxValue struct {
	Checked bool `json:"checked"`
}

// SelectValue is the chosen option of a select or status cell, or nil for
// an explicit empty choice. The option is a snapshot: it is not re-read
// from the property config when options are renamed.
type SelectValue = *SelectOption

// MultiSelectValue is the ordered chosen options of a multi-select cell.
type MultiSelectValue = []SelectOption

// isJSONNull reports whether raw is the JSON null literal.
func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// DecodeValue parses and validates a raw cell value against the value
// shape dictated by the property type, returning the concrete shape.
// Returns ErrSchemaMismatch when the shape does not conform and
// ErrUnknownPropertyType for an unrecognized tag.
//
// Select and status values are not checked against the property's current
// option list: a cell may keep referencing an option that was since
// removed from the config.
func DecodeValue(t PropertyType, raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrSchemaMismatch
	}
	switch t {
	case PropertyText:
		var aux struct {
			Text *string `json:"text"`
		}
		if err := strictUnmarshal(raw, &aux); err != nil {
			return nil, err
		}
		if aux.Text == nil {
			return nil, ErrSchemaMismatch
		}
		return TextValue{Text: *aux.Text}, nil
	case PropertyNumber:
		// The number key must be present; its value may be null (an empty
		// cell) or a number.
		var aux struct {
			Number json.RawMessage `json:"number"`
		}
		if err := strictUnmarshal(raw, &aux); err != nil {
			return nil, err
		}
		if aux.Number == nil {
			return nil, ErrSchemaMismatch
		}
		var v NumberValue
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case PropertySelect, PropertyStatus:
		if isJSONNull(raw) {
			return SelectValue(nil), nil
		}
		var opt SelectOption
		if err := strictUnmarshal(raw, &opt); err != nil {
			return nil, err
		}
		if err := opt.validate(); err != nil {
			return nil, err
		}
		return &opt, nil
	case PropertyMultiSelect:
		if bytes.TrimSpace(raw)[0] != '[' {
			return nil, ErrSchemaMismatch
		}
		var opts MultiSelectValue
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		if err := validateOptions(opts); err != nil {
			return nil, err
		}
		return opts, nil
	case PropertyDate:
		var aux struct {
			Start       *string `json:"start"`
			End         *string `json:"end"`
			IncludeTime *bool   `json:"includeTime"`
		}
		if err := strictUnmarshal(raw, &aux); err != nil {
			return nil, err
		}
		if aux.Start == nil || *aux.Start == "" {
			return nil, ErrSchemaMismatch
		}
		v := DateValue{Start: *aux.Start}
		if aux.End != nil {
			v.End = *aux.End
		}
		if aux.IncludeTime != nil {
			v.IncludeTime = *aux.IncludeTime
		}
		return v, nil
	case PropertyCheckbox:
		var aux struct {
			Checked *bool `json:"checked"`
		}
		if err := strictUnmarshal(raw, &aux); err != nil {
			return nil, err
		}
		if aux.Checked == nil {
			return nil, ErrSchemaMismatch
		}
		return CheckboxValue{Checked: *aux.Checked}, nil
	default:
		return nil, ErrUnknownPropertyType
	}
}

// ValidateValue checks raw against the property type's value schema.
func ValidateValue(t PropertyType, raw json.RawMessage) error {
	_, err := DecodeValue(t, raw)
	return err
}
