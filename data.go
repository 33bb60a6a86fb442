package tmx

import (
	"encoding/xml"

	"go.uber.org/zap"
)

// LayerData holds the tiles of one layer. Finite maps fill Tiles; infinite
// maps fill Chunks instead (never both).
type LayerData struct {
	// Tiles are rows top -> bottom, each left -> right
	Tiles [][]LayerTile

	// Chunks of an infinite layer by their origin (in tiles)
	Chunks map[ChunkKey]*Chunk
}

// Infinite returns if this layer is stored as chunks
func (d *LayerData) Infinite() bool {
	return d.Chunks != nil
}

// Each calls fn for every cell of the layer in map coordinates (chunk cells
// are offset by their chunk's origin). Iteration stops at the first error.
func (d *LayerData) Each(fn func(x, y int, t LayerTile) error) error {
	if !d.Infinite() {
		return eachCell(0, 0, d.Tiles, fn)
	}
	for _, ch := range d.Chunks {
		if err := eachCell(ch.X, ch.Y, ch.Tiles, fn); err != nil {
			return err
		}
	}
	return nil
}

// At returns the tile at map coordinates (x,y) or the nil tile if there
// isn't one.
func (d *LayerData) At(x, y int) LayerTile {
	if !d.Infinite() {
		return cellAt(d.Tiles, x, y)
	}
	for _, ch := range d.Chunks {
		if x >= ch.X && x < ch.X+ch.Width && y >= ch.Y && y < ch.Y+ch.Height {
			return cellAt(ch.Tiles, x-ch.X, y-ch.Y)
		}
	}
	return 0
}

// Count returns the number of non nil tiles.
func (d *LayerData) Count() int {
	n := 0
	d.Each(func(_, _ int, t LayerTile) error {
		if !t.IsNil() {
			n++
		}
		return nil
	})
	return n
}

func eachCell(x0, y0 int, rows [][]LayerTile, fn func(x, y int, t LayerTile) error) error {
	for y, row := range rows {
		for x, t := range row {
			if err := fn(x0+x, y0+y, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellAt(rows [][]LayerTile, x, y int) LayerTile {
	if y < 0 || y >= len(rows) || x < 0 || x >= len(rows[y]) {
		return 0
	}
	return rows[y][x]
}

// ChunkKey is the origin of a chunk.
type ChunkKey struct {
	X int
	Y int
}

// Chunk is a rectangle of an infinite layer. It's size comes from it's own
// width & height, not the layer's.
type Chunk struct {
	X      int
	Y      int
	Width  int
	Height int
	Tiles  [][]LayerTile
}

// Key returns the chunk's origin
func (c *Chunk) Key() ChunkKey {
	return ChunkKey{X: c.X, Y: c.Y}
}

// dataFormat reads the encoding & compression of a data tag.
// Both are optional; nil means absent.
func dataFormat(attrs []xml.Attr) (encoding, compression *string, err error) {
	err = getAttrs(
		attrs,
		[]attrSpec{
			attr("encoding", &encoding, present),
			attr("compression", &compression, present),
		},
		nil,
		"data must have an encoding and a compression",
	)
	return encoding, compression, err
}

// parseData reads the <data> tag of a finite layer `width` tiles wide.
func (p *parser) parseData(start xml.StartElement, width int) (*LayerData, error) {
	encoding, compression, err := dataFormat(start.Attr)
	if err != nil {
		return nil, err
	}

	tiles, err := p.parseTiles(encoding, compression, width)
	if err != nil {
		return nil, err
	}
	return &LayerData{Tiles: tiles}, nil
}

// parseInfiniteData reads the <data> tag of an infinite layer: a list of
// <chunk> tags sharing the data tag's encoding & compression.
// A chunk at the same origin as an earlier one replaces it.
func (p *parser) parseInfiniteData(start xml.StartElement) (*LayerData, error) {
	encoding, compression, err := dataFormat(start.Attr)
	if err != nil {
		return nil, err
	}

	chunks := map[ChunkKey]*Chunk{}
	err = p.c.run("data", handlers{
		"chunk": func(s xml.StartElement) error {
			ch, err := p.parseChunk(s, encoding, compression)
			if err != nil {
				return err
			}
			if _, ok := chunks[ch.Key()]; ok {
				p.log.Warn("duplicate chunk replaced", zap.Int("x", ch.X), zap.Int("y", ch.Y))
			}
			chunks[ch.Key()] = ch
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &LayerData{Chunks: chunks}, nil
}

func (p *parser) parseChunk(start xml.StartElement, encoding, compression *string) (*Chunk, error) {
	ch := &Chunk{}
	err := getAttrs(
		start.Attr,
		nil,
		[]attrSpec{
			attr("x", &ch.X, asInt),
			attr("y", &ch.Y, asInt),
			attr("width", &ch.Width, asInt),
			attr("height", &ch.Height, asInt),
		},
		"chunk must have x, y, width and height",
	)
	if err != nil {
		return nil, err
	}

	ch.Tiles, err = p.parseTiles(encoding, compression, ch.Width)
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed chunk", zap.Int("x", ch.X), zap.Int("y", ch.Y), zap.Int("rows", len(ch.Tiles)))
	return ch, nil
}

// parseTiles decodes the content of the current tag according to it's
// encoding / compression pair:
//
//	encoding  compression  result
//	-         -            unsupported (inline <tile> xml)
//	csv       -            csv text
//	base64    -            raw little endian tiles
//	base64    name         decompressed little endian tiles
//	-         name         invalid
func (p *parser) parseTiles(encoding, compression *string, width int) ([][]LayerTile, error) {
	if encoding == nil {
		if compression == nil {
			return nil, newError(ErrUnrecognizedFormat, nil, "XML tile data is not supported")
		}
		return nil, newError(ErrUnrecognizedFormat, nil, "compression %q without an encoding", *compression)
	}

	var inflate decompressor
	if compression != nil {
		d, ok := decompressors[*compression]
		if !ok || *encoding != "base64" {
			return nil, newError(
				ErrUnrecognizedFormat, nil,
				"unknown combination of %s encoding and %s compression", *encoding, *compression,
			)
		}
		inflate = d
	} else if *encoding != "base64" && *encoding != "csv" {
		return nil, newError(ErrUnrecognizedFormat, nil, "unknown encoding format %s", *encoding)
	}

	if width <= 0 || width > maxRowWidth {
		return nil, newError(ErrMalformedAttributes, nil, "tile data width must be in 1..%d, got %d", maxRowWidth, width)
	}

	text, err := p.c.text()
	if err != nil {
		return nil, err
	}

	if *encoding == "csv" {
		return decodeCSV(text, width)
	}

	data, err := decodeBase64(text)
	if err != nil {
		return nil, err
	}
	if inflate != nil {
		data, err = inflate(data)
		if err != nil {
			return nil, err
		}
	}

	return tilesFromBytes(data, width), nil
}
