package tmx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// testGrid is a 4x3 grid with flip flags on a couple of tiles
var testGrid = [][]LayerTile{
	{1, 2, 3, 4},
	{0, 0, 5 | FlipHorizontal, 6},
	{7, 8 | FlipVertical | FlipDiagonal, 9, 10},
}

// tileBytes encodes rows as TMX binary tile data
func tileBytes(rows [][]LayerTile) []byte {
	buf := bytes.Buffer{}
	for _, row := range rows {
		for _, t := range row {
			binary.Write(&buf, binary.LittleEndian, uint32(t))
		}
	}
	return buf.Bytes()
}

// tileCSV encodes rows the way Tiled writes csv tile data
func tileCSV(rows [][]LayerTile) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, t := range row {
			cells[j] = strconv.FormatUint(uint64(t), 10)
		}
		lines[i] = strings.Join(cells, ",")
	}
	return "\n" + strings.Join(lines, ",\n") + "\n"
}

func zlibBytes(t *testing.T, data []byte) []byte {
	buf := bytes.Buffer{}
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.Nil(t, err)
	require.Nil(t, w.Close())
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	buf := bytes.Buffer{}
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.Nil(t, err)
	require.Nil(t, w.Close())
	return buf.Bytes()
}

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// startAt returns a parser over doc positioned just after the first start tag
// called `name`.
func startAt(t *testing.T, doc, name string) (*parser, xml.StartElement) {
	t.Helper()
	p := newParser(strings.NewReader(doc), nil)
	start, err := p.root(name)
	require.Nil(t, err)
	return p, start
}

func xmlAttrs(kv ...string) []xml.Attr {
	attrs := []xml.Attr{}
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: kv[i]}, Value: kv[i+1]})
	}
	return attrs
}
