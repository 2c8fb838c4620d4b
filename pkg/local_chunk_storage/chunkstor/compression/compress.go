package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// PrefixLength is a length of compression marker in compressed data.
const PrefixLength = 4

// Config represents common compression-related configuration.
//
// Stored data is decompressed on read if and only if it starts with ZSTD
// frame magic. To keep this unambiguous for arbitrary chunk contents, data
// that already starts with the magic is compressed on write even if
// compression is disabled.
type Config struct {
	Enabled bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// zstdFrameMagic contains first 4 bytes of any compressed chunk
// https://github.com/klauspost/compress/blob/master/zstd/framedec.go#L58 .
var zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Init initializes compression routines.
func (c *Config) Init() error {
	var err error

	c.encoder, err = zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	c.decoder, err = zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}

	return nil
}

// NeedsCompression returns true if data should be compressed before
// storing: either compression is enabled or data looks like compressed one.
func (c *Config) NeedsCompression(data []byte) bool {
	return c.Enabled || c.IsCompressed(data)
}

// IsCompressed checks whether given data is compressed.
func (c *Config) IsCompressed(data []byte) bool {
	return len(data) >= PrefixLength && bytes.Equal(data[:PrefixLength], zstdFrameMagic)
}

// Decompress decompresses data if it starts with the magic
// and returns data untouched otherwise.
func (c *Config) Decompress(data []byte) ([]byte, error) {
	if !c.IsCompressed(data) {
		return data, nil
	}
	return c.decoder.DecodeAll(data, nil)
}

// Compress compresses data if NeedsCompression and returns data
// untouched otherwise.
func (c *Config) Compress(data []byte) []byte {
	if !c.NeedsCompression(data) {
		return data
	}
	maxSize := c.encoder.MaxEncodedSize(len(data))
	return c.encoder.EncodeAll(data, make([]byte, 0, maxSize))
}

// Close closes encoder and decoder, returns any error occurred.
func (c *Config) Close() error {
	var err error
	if c.encoder != nil {
		err = c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return err
}
