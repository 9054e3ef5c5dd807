package codec

import (
	"encoding/json"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses the JSON encoding with zstandard. Worth it for stores with
// large documents; for small units the JSON codec is simpler to debug.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd creates a zstd codec with default compression settings.
func NewZstd() *Zstd {
	// EncodeAll/DecodeAll on shared instances are safe for concurrent use.
	enc, _ := zstd.NewWriter(nil)
	dec, _ := zstd.NewReader(nil)
	return &Zstd{enc: enc, dec: dec}
}

// Marshal encodes the value to zstd-compressed JSON.
func (c *Zstd) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(b, nil), nil
}

// Unmarshal decodes zstd-compressed JSON data into v.
func (c *Zstd) Unmarshal(data []byte, v any) error {
	b, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Name returns the unique name of the codec ("zstd").
func (c *Zstd) Name() string { return "zstd" }
