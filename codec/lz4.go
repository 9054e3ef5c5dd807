package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 compresses the JSON encoding with lz4 frames: faster than zstd at a
// lower compression ratio.
type LZ4 struct{}

// Marshal encodes the value to lz4-compressed JSON.
func (LZ4) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes lz4-compressed JSON data into v.
func (LZ4) Unmarshal(data []byte, v any) error {
	b, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Name returns the unique name of the codec ("lz4").
func (LZ4) Name() string { return "lz4" }
