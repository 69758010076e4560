package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     PropertyType
		raw     string
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "text",
			typ:  PropertyText,
			raw:  `{"text":"hello"}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, TextValue{Text: "hello"}, v)
			},
		},
		{
			name: "empty text is a value, not an absent cell",
			typ:  PropertyText,
			raw:  `{"text":""}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, TextValue{Text: ""}, v)
			},
		},
		{name: "text rejects missing key", typ: PropertyText, raw: `{}`, wantErr: ErrSchemaMismatch},
		{name: "text rejects wrong key", typ: PropertyText, raw: `{"value":"hello"}`, wantErr: ErrSchemaMismatch},
		{
			name: "number",
			typ:  PropertyNumber,
			raw:  `{"number":3.5}`,
			check: func(t *testing.T, v any) {
				nv := v.(NumberValue)
				require.NotNil(t, nv.Number)
				assert.Equal(t, 3.5, *nv.Number)
			},
		},
		{
			name: "number null keeps the cell empty",
			typ:  PropertyNumber,
			raw:  `{"number":null}`,
			check: func(t *testing.T, v any) {
				assert.Nil(t, v.(NumberValue).Number)
			},
		},
		{name: "number rejects missing key", typ: PropertyNumber, raw: `{}`, wantErr: ErrSchemaMismatch},
		{name: "number rejects string", typ: PropertyNumber, raw: `{"number":"3"}`, wantErr: ErrSchemaMismatch},
		{
			name: "select option",
			typ:  PropertySelect,
			raw:  `{"id":"high","name":"High","color":"red"}`,
			check: func(t *testing.T, v any) {
				opt := v.(*SelectOption)
				require.NotNil(t, opt)
				assert.Equal(t, "High", opt.Name)
				assert.Equal(t, ColorRed, opt.Color)
			},
		},
		{
			name: "select null clears the choice",
			typ:  PropertySelect,
			raw:  `null`,
			check: func(t *testing.T, v any) {
				assert.Nil(t, v.(*SelectOption))
			},
		},
		{name: "select rejects bad color", typ: PropertySelect, raw: `{"id":"h","name":"H","color":"neon"}`, wantErr: ErrSchemaMismatch},
		{name: "select rejects extra fields", typ: PropertySelect, raw: `{"id":"h","name":"H","color":"red","weight":1}`, wantErr: ErrSchemaMismatch},
		{
			name: "status shares the select shape",
			typ:  PropertyStatus,
			raw:  `{"id":"done","name":"Done","color":"green"}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, "done", v.(*SelectOption).ID)
			},
		},
		{
			name: "multi_select",
			typ:  PropertyMultiSelect,
			raw:  `[{"id":"a","name":"A","color":"blue"},{"id":"b","name":"B","color":"pink"}]`,
			check: func(t *testing.T, v any) {
				opts := v.(MultiSelectValue)
				require.Len(t, opts, 2)
				assert.Equal(t, "a", opts[0].ID)
				assert.Equal(t, "b", opts[1].ID)
			},
		},
		{
			name: "multi_select empty list",
			typ:  PropertyMultiSelect,
			raw:  `[]`,
			check: func(t *testing.T, v any) {
				assert.Empty(t, v.(MultiSelectValue))
			},
		},
		{name: "multi_select rejects a bare option", typ: PropertyMultiSelect, raw: `{"id":"a","name":"A","color":"blue"}`, wantErr: ErrSchemaMismatch},
		{
			name: "date",
			typ:  PropertyDate,
			raw:  `{"start":"2026-03-01"}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, DateValue{Start: "2026-03-01"}, v)
			},
		},
		{
			name: "date range with time",
			typ:  PropertyDate,
			raw:  `{"start":"2026-03-01T09:00:00Z","end":"2026-03-02T17:00:00Z","includeTime":true}`,
			check: func(t *testing.T, v any) {
				dv := v.(DateValue)
				assert.Equal(t, "2026-03-02T17:00:00Z", dv.End)
				assert.True(t, dv.IncludeTime)
			},
		},
		{name: "date rejects empty start", typ: PropertyDate, raw: `{"start":""}`, wantErr: ErrSchemaMismatch},
		{name: "date rejects missing start", typ: PropertyDate, raw: `{"end":"2026-03-02"}`, wantErr: ErrSchemaMismatch},
		{
			name: "checkbox",
			typ:  PropertyCheckbox,
			raw:  `{"checked":true}`,
			check: func(t *testing.T, v any) {
				assert.Equal(t, CheckboxValue{Checked: true}, v)
			},
		},
		{name: "checkbox rejects missing key", typ: PropertyCheckbox, raw: `{}`, wantErr: ErrSchemaMismatch},
		{name: "empty raw", typ: PropertyText, raw: ``, wantErr: ErrSchemaMismatch},
		{name: "unknown type", typ: PropertyType("rollup"), raw: `{}`, wantErr: ErrUnknownPropertyType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeValue(tt.typ, json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

// A cell may keep referencing an option that was since removed from the
// property config; decoding does not consult the option list.
func TestDecodeValueOrphanOptionAllowed(t *testing.T) {
	v, err := DecodeValue(PropertySelect, json.RawMessage(`{"id":"gone","name":"Removed","color":"gray"}`))
	require.NoError(t, err)
	assert.Equal(t, "gone", v.(*SelectOption).ID)
}
