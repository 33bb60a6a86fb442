package tmx

import (
	"encoding/binary"
	"math"
)

// Flip flags stored in the high bits of a LayerTile.
// see doc.mapeditor.org/en/stable/reference/global-tile-ids/
const (
	FlipHorizontal LayerTile = 0x80000000
	FlipVertical   LayerTile = 0x40000000
	FlipDiagonal   LayerTile = 0x20000000

	flipMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// LayerTile is one cell of a tile layer: a global tile ID (gid) packed
// together with flip flags. The zero value is the nil tile (nothing drawn).
type LayerTile uint32

// GID returns the global tile id without flip flags.
func (t LayerTile) GID() uint32 {
	return uint32(t &^ flipMask)
}

// IsNil returns if this is the empty tile
func (t LayerTile) IsNil() bool {
	return t.GID() == 0
}

func (t LayerTile) FlipH() bool {
	return t&FlipHorizontal != 0
}

func (t LayerTile) FlipV() bool {
	return t&FlipVertical != 0
}

func (t LayerTile) FlipD() bool {
	return t&FlipDiagonal != 0
}

// bytesPerTile is the size of a LayerTile in binary (base64) tile data.
const bytesPerTile = 4

// maxRowWidth is the widest row of tiles we accept. A row this wide is 2GiB
// of binary tile data.
const maxRowWidth = math.MaxInt32 / bytesPerTile

// tilesFromBytes rebuilds rows of `width` tiles from little endian uint32s.
// Width must be in 1..maxRowWidth.
// A short final row is kept; trailing bytes that don't make a whole tile
// are dropped.
func tilesFromBytes(data []byte, width int) [][]LayerTile {
	stride := width * bytesPerTile
	rows := make([][]LayerTile, 0, len(data)/stride+1)

	for start := 0; start < len(data); start += stride {
		end := start + stride
		if end > len(data) {
			end = len(data)
		}
		group := data[start:end]

		row := make([]LayerTile, 0, len(group)/bytesPerTile)
		for i := 0; i+bytesPerTile <= len(group); i += bytesPerTile {
			row = append(row, LayerTile(binary.LittleEndian.Uint32(group[i:i+bytesPerTile])))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// rowsOf splits a flat run of tiles into rows of `width`, the last of which
// may be shorter.
func rowsOf(tiles []LayerTile, width int) [][]LayerTile {
	rows := make([][]LayerTile, 0, len(tiles)/width+1)
	for len(tiles) > 0 {
		n := width
		if n > len(tiles) {
			n = len(tiles)
		}
		rows = append(rows, tiles[:n:n])
		tiles = tiles[n:]
	}
	return rows
}
