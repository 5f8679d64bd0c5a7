package jtd

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustDecode parses a JSON literal into the generic value tree ParseSchema
// consumes.
func mustDecode(t *testing.T, src string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	return doc
}

func TestParseSchemaForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want func(t *testing.T, s *Schema)
	}{
		{
			name: "empty form",
			src:  `{}`,
			want: func(t *testing.T, s *Schema) {
				assert.IsType(t, Empty{}, s.Form)
				assert.False(t, s.Nullable)
			},
		},
		{
			name: "type form",
			src:  `{"type": "timestamp"}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Type{}, s.Form)
				assert.Equal(t, TypeTimestamp, s.Form.(Type).Type)
			},
		},
		{
			name: "enum form",
			src:  `{"enum": ["red", "green"]}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Enum{}, s.Form)
				assert.Equal(t, []string{"red", "green"}, s.Form.(Enum).Values)
			},
		},
		{
			name: "elements form",
			src:  `{"elements": {"type": "string"}}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Elements{}, s.Form)
				assert.IsType(t, Type{}, s.Form.(Elements).Schema.Form)
			},
		},
		{
			name: "properties form with required only",
			src:  `{"properties": {"name": {"type": "string"}}}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Properties{}, s.Form)
				form := s.Form.(Properties)
				assert.Contains(t, form.Required, "name")
				assert.Nil(t, form.Optional)
				assert.False(t, form.Additional)
			},
		},
		{
			name: "properties form with optional and additional",
			src:  `{"optionalProperties": {"nick": {}}, "additionalProperties": true}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Properties{}, s.Form)
				form := s.Form.(Properties)
				assert.Nil(t, form.Required)
				assert.Contains(t, form.Optional, "nick")
				assert.True(t, form.Additional)
			},
		},
		{
			name: "explicitly empty properties map is still the properties form",
			src:  `{"properties": {}}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Properties{}, s.Form)
				form := s.Form.(Properties)
				assert.NotNil(t, form.Required)
				assert.Empty(t, form.Required)
			},
		},
		{
			name: "values form",
			src:  `{"values": {"type": "float64"}}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Values{}, s.Form)
			},
		},
		{
			name: "discriminator form",
			src: `{
				"discriminator": "kind",
				"mapping": {"x": {"properties": {"n": {"type": "float64"}}}}
			}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Discriminator{}, s.Form)
				form := s.Form.(Discriminator)
				assert.Equal(t, "kind", form.Tag)
				assert.Contains(t, form.Mapping, "x")
			},
		},
		{
			name: "ref form with definitions",
			src:  `{"definitions": {"node": {"type": "string"}}, "ref": "node"}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Ref{}, s.Form)
				assert.Equal(t, "node", s.Form.(Ref).Name)
				assert.Contains(t, s.Definitions, "node")
			},
		},
		{
			name: "self-referential definition parses",
			src:  `{"definitions": {"a": {"ref": "a"}}, "ref": "a"}`,
			want: func(t *testing.T, s *Schema) {
				require.IsType(t, Ref{}, s.Form)
			},
		},
		{
			name: "nullable and metadata on any form",
			src:  `{"nullable": true, "metadata": {"description": "anything"}, "type": "boolean"}`,
			want: func(t *testing.T, s *Schema) {
				assert.True(t, s.Nullable)
				assert.Equal(t, "anything", s.Metadata["description"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := ParseSchema(mustDecode(t, tt.src))
			require.NoError(t, err)
			tt.want(t, s)
		})
	}
}

func TestParseSchemaRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "not an object",
			src:     `true`,
			wantErr: &NotAnObjectError{},
		},
		{
			name:    "unknown key",
			src:     `{"tyep": "string"}`,
			wantErr: &UnknownKeyError{},
		},
		{
			name:    "type and enum collide",
			src:     `{"type": "string", "enum": ["a"]}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "elements and values collide",
			src:     `{"elements": {}, "values": {}}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "ref and properties collide",
			src:     `{"ref": "a", "properties": {}, "definitions": {"a": {}}}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "additionalProperties alone",
			src:     `{"additionalProperties": true}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "mapping without discriminator",
			src:     `{"mapping": {"x": {"properties": {}}}}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "discriminator without mapping",
			src:     `{"discriminator": "kind"}`,
			wantErr: &InvalidFormError{},
		},
		{
			name:    "nullable must be boolean",
			src:     `{"nullable": "yes"}`,
			wantErr: &WrongValueTypeError{},
		},
		{
			name:    "metadata must be an object",
			src:     `{"metadata": 7}`,
			wantErr: &WrongValueTypeError{},
		},
		{
			name:    "invalid primitive type",
			src:     `{"type": "int64"}`,
			wantErr: &InvalidTypeError{},
		},
		{
			name:    "empty enum",
			src:     `{"enum": []}`,
			wantErr: &EmptyEnumError{},
		},
		{
			name:    "duplicate enum value",
			src:     `{"enum": ["a", "b", "a"]}`,
			wantErr: &DuplicateEnumValueError{},
		},
		{
			name:    "non-string enum value",
			src:     `{"enum": ["a", 1]}`,
			wantErr: &WrongValueTypeError{},
		},
		{
			name:    "shared required and optional property",
			src:     `{"properties": {"id": {}}, "optionalProperties": {"id": {}}}`,
			wantErr: &SharedPropertyError{},
		},
		{
			name:    "nested definitions",
			src:     `{"elements": {"definitions": {}}}`,
			wantErr: &NonRootDefinitionsError{},
		},
		{
			name:    "dangling ref",
			src:     `{"definitions": {"a": {}}, "ref": "b"}`,
			wantErr: &DanglingRefError{},
		},
		{
			name:    "dangling ref with no definitions",
			src:     `{"ref": "a"}`,
			wantErr: &DanglingRefError{},
		},
		{
			name:    "dangling ref nested in a definition",
			src:     `{"definitions": {"a": {"elements": {"ref": "missing"}}}, "ref": "a"}`,
			wantErr: &DanglingRefError{},
		},
		{
			name:    "empty discriminator",
			src:     `{"discriminator": "", "mapping": {"x": {"properties": {}}}}`,
			wantErr: &EmptyDiscriminatorError{},
		},
		{
			name:    "empty mapping",
			src:     `{"discriminator": "kind", "mapping": {}}`,
			wantErr: &EmptyMappingError{},
		},
		{
			name:    "mapping value not of the properties form",
			src:     `{"discriminator": "kind", "mapping": {"x": {"type": "string"}}}`,
			wantErr: &NonPropertiesMappingError{},
		},
		{
			name:    "nullable mapping value",
			src:     `{"discriminator": "kind", "mapping": {"x": {"nullable": true, "properties": {}}}}`,
			wantErr: &NullableMappingError{},
		},
		{
			name:    "mapping value re-declares the tag",
			src:     `{"discriminator": "kind", "mapping": {"x": {"properties": {"kind": {}}}}}`,
			wantErr: &MappingDiscriminatorClashError{},
		},
		{
			name:    "mapping value re-declares the tag as optional",
			src:     `{"discriminator": "kind", "mapping": {"x": {"optionalProperties": {"kind": {}}}}}`,
			wantErr: &MappingDiscriminatorClashError{},
		},
		{
			name:    "malformed nested property schema",
			src:     `{"properties": {"name": {"type": 3}}}`,
			wantErr: &WrongValueTypeError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSchema(mustDecode(t, tt.src))
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
		})
	}
}

// TestParseSchemaErrorPaths checks that parse errors identify the offending
// schema path.
func TestParseSchemaErrorPaths(t *testing.T) {
	t.Parallel()

	_, err := ParseSchema(mustDecode(t, `{"properties": {"pet": {"type": "dog"}}}`))
	require.Error(t, err)

	var typeErr *InvalidTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "/properties/pet/type", Pointer(typeErr.Path))
	assert.Equal(t, "dog", typeErr.Value)
}
