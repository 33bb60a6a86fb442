package tmx

import (
	"bytes"
	"encoding/base64"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// decompressor inflates a whole tile payload in memory.
type decompressor func(data []byte) ([]byte, error)

// decompressors by the value of a data tag's compression attribute.
// Optional codecs (zstd) add themselves when compiled in.
var decompressors = map[string]decompressor{
	"zlib": decodeZlib,
	"gzip": decodeGzip,
}

// Compressions returns the compression names this build can decode.
func Compressions() []string {
	names := make([]string, 0, len(decompressors))
	for name := range decompressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeBase64 decodes the (whitespace padded) text of a data tag.
func decodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, newError(ErrBase64Decoding, err, "")
	}
	return data, nil
}

func decodeZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, newError(ErrDecompressing, err, "zlib")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(ErrDecompressing, err, "zlib")
	}
	return out, nil
}

func decodeGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, newError(ErrDecompressing, err, "gzip")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(ErrDecompressing, err, "gzip")
	}
	return out, nil
}
