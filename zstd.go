//go:build !nozstd

package tmx

import (
	"github.com/klauspost/compress/zstd"
)

// zstdDecoder is shared by every decode. DecodeAll is safe for concurrent use.
var zstdDecoder *zstd.Decoder

// zstd support is on by default; build with -tags nozstd to leave it out, in
// which case "zstd" data is rejected like any other unknown compression.
func init() {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return
	}
	zstdDecoder = dec
	decompressors["zstd"] = decodeZstd
}

func decodeZstd(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, newError(ErrDecompressing, err, "zstd")
	}
	return out, nil
}
