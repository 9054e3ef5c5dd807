// Package codec centralizes persisted-unit encoding.
//
// Codec selection is a compatibility boundary: units written with one codec
// are decoded by selecting the same codec, and the unit file extension is
// derived from the codec name so a store directory is self-describing.
package codec

import "fmt"

// Codec encodes/decodes persisted values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "zstd":
		return NewZstd(), true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
