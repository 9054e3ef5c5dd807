package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

func TestCodecsRoundTrip(t *testing.T) {
	in := record{ID: "a", Data: map[string]any{"name": "ann", "tags": []any{"x", "y"}}}

	for _, c := range []Codec{JSON{}, NewZstd(), LZ4{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Marshal(in)
			require.NoError(t, err)

			var out record
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in.ID, out.ID)
			assert.Equal(t, "ann", out.Data["name"])
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "zstd", "lz4"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestUnmarshalGarbage(t *testing.T) {
	for _, c := range []Codec{NewZstd(), LZ4{}} {
		var out record
		assert.Error(t, c.Unmarshal([]byte("not compressed"), &out))
	}
}
