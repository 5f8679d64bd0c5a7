package instances

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder(t *testing.T) {
	t.Parallel()

	t.Run("streams whitespace-separated values", func(t *testing.T) {
		t.Parallel()
		dec := NewDecoder(strings.NewReader("{\"a\": 1}\n[1, 2]\n\"three\" 4 null"), "in.json")

		var got []any
		for {
			v, err := dec.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Len(t, got, 5)
		assert.Equal(t, map[string]any{"a": float64(1)}, got[0])
		assert.Equal(t, "three", got[2])
		assert.Nil(t, got[4])
	})

	t.Run("empty stream yields EOF immediately", func(t *testing.T) {
		t.Parallel()
		dec := NewDecoder(strings.NewReader("  \n"), "in.json")
		_, err := dec.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("malformed value reports path and index", func(t *testing.T) {
		t.Parallel()
		dec := NewDecoder(strings.NewReader("{} {nope}"), "data/in.json")

		_, err := dec.Next()
		require.NoError(t, err)

		_, err = dec.Next()
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "data/in.json", decodeErr.Path)
		assert.Equal(t, 1, decodeErr.Index)
	})
}
