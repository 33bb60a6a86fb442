package tmx

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDecodeBase64(t *testing.T) {
	data, err := decodeBase64("\n   " + b64([]byte("tiles")) + "\n  ")

	assert.Nil(t, err)
	assert.Equal(t, []byte("tiles"), data)
}

func TestDecodeBase64Invalid(t *testing.T) {
	for _, in := range []string{"not*base64", "QUJD=", "QQ"} {
		_, err := decodeBase64(in)

		assert.ErrorIs(t, err, ErrBase64Decoding, in)
		var cerr base64.CorruptInputError
		assert.True(t, errors.As(err, &cerr), in)
	}
}

func TestDecompressRoundTrip(t *testing.T) {
	dataCases := []struct {
		Name string
		Data []byte
	}{
		{Name: "Repeat", Data: bytes.Repeat([]byte{42, 0, 0, 0}, 4096)},
		{Name: "Grid", Data: tileBytes(testGrid)},
	}
	compressionCases := []struct {
		Name     string
		Compress func(*testing.T, []byte) []byte
		Inflate  decompressor
	}{
		{Name: "Zlib", Compress: zlibBytes, Inflate: decodeZlib},
		{Name: "Gzip", Compress: gzipBytes, Inflate: decodeGzip},
	}

	for _, dc := range dataCases {
		for _, cc := range compressionCases {
			t.Run(dc.Name+cc.Name, func(t *testing.T) {
				out, err := cc.Inflate(cc.Compress(t, dc.Data))
				if err != nil {
					t.Fatalf("decompress failed: %v", err)
				}
				if diff := cmp.Diff(dc.Data, out); diff != "" {
					t.Errorf("decompress(compress(input)) != input (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestDecompressCorrupt(t *testing.T) {
	good := zlibBytes(t, tileBytes(testGrid))
	truncated := good[:len(good)/2]

	for name, fn := range map[string]decompressor{"zlib": decodeZlib, "gzip": decodeGzip} {
		_, err := fn([]byte("definitely not compressed"))
		assert.ErrorIs(t, err, ErrDecompressing, name)
	}

	_, err := decodeZlib(truncated)
	assert.ErrorIs(t, err, ErrDecompressing)

	_, err = decodeGzip(gzipBytes(t, tileBytes(testGrid))[:20])
	assert.ErrorIs(t, err, ErrDecompressing)
}

func TestCompressions(t *testing.T) {
	names := Compressions()

	assert.Contains(t, names, "zlib")
	assert.Contains(t, names, "gzip")
}
