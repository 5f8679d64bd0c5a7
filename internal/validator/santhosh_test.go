package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchemaID = "http://example.com/schema.json"

func TestNewSanthoshCompiler(t *testing.T) {
	t.Parallel()
	c := NewSanthoshCompiler()
	assert.NotNil(t, c)
}

func TestSanthoshCompiler_AddSchema(t *testing.T) {
	t.Parallel()
	c := NewSanthoshCompiler()
	data := map[string]interface{}{
		"$id":  testSchemaID,
		"type": "object",
	}

	err := c.AddSchema(testSchemaID, data)
	require.NoError(t, err)
}

func TestSanthoshCompiler_Compile(t *testing.T) {
	t.Parallel()
	t.Run("successful compile", func(t *testing.T) {
		t.Parallel()
		c := NewSanthoshCompiler()
		data := map[string]interface{}{
			"$id":  testSchemaID,
			"type": "object",
		}

		_ = c.AddSchema(testSchemaID, data)
		v, err := c.Compile(testSchemaID)
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("compile missing schema", func(t *testing.T) {
		t.Parallel()
		c := NewSanthoshCompiler()

		v, err := c.Compile("http://example.com/missing.json")
		require.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("compile invalid schema", func(t *testing.T) {
		t.Parallel()
		c := NewSanthoshCompiler()
		id := "http://example.com/invalid.json"
		data := map[string]interface{}{
			"type": 123, // type must be string or array
		}

		_ = c.AddSchema(id, data)
		v, err := c.Compile(id)
		require.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestSanthoshValidator_Validate(t *testing.T) {
	t.Parallel()
	c := NewSanthoshCompiler()
	data := map[string]interface{}{
		"$id":  testSchemaID,
		"type": "object",
		"properties": map[string]interface{}{
			"maxErrors": map[string]interface{}{
				"type":    "integer",
				"minimum": float64(0),
			},
		},
		"additionalProperties": false,
	}

	_ = c.AddSchema(testSchemaID, data)
	v, err := c.Compile(testSchemaID)
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		err := v.Validate(map[string]interface{}{"maxErrors": float64(5)})
		require.NoError(t, err)
	})

	t.Run("invalid property type", func(t *testing.T) {
		t.Parallel()
		err := v.Validate(map[string]interface{}{"maxErrors": "lots"})
		require.Error(t, err)
	})

	t.Run("unknown property", func(t *testing.T) {
		t.Parallel()
		err := v.Validate(map[string]interface{}{"maxDeth": float64(1)})
		require.Error(t, err)
	})
}
