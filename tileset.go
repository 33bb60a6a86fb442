package tmx

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Tileset is a set of tiles, either embedded in a map or loaded from an
// external .tsx file.
type Tileset struct {
	// FirstGID is the gid of the first tile in this set (within a map)
	FirstGID uint32

	// Source is the .tsx file of an external tileset ("" if embedded)
	Source string

	Name       string
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	TileCount  int
	Columns    int

	Images     []*Image
	Tiles      []*Tile
	Properties *Properties
}

// Tile returns the tileset entry for a (local) tile id, if the tileset has
// one. Tiles without properties, animation etc. have no entry.
func (ts *Tileset) Tile(id uint32) *Tile {
	for _, t := range ts.Tiles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Tile is a tileset entry with data beyond it's place in the tileset image.
type Tile struct {
	ID          uint32
	Type        string
	Probability float64
	Image       *Image
	Properties  *Properties
	Animation   []Frame
	ObjectGroup *ObjectGroup
}

// Image is an image reference
type Image struct {
	Source string
	Width  int
	Height int

	// Trans is the colour treated as transparent (or nil)
	Trans *Colour
}

// OpenTileset reads an external .tsx tileset file. It's FirstGID is 1.
func OpenTileset(fname string) (*Tileset, error) {
	return openTileset(fname, 1, DefaultConfig())
}

func openTileset(fname string, firstgid uint32, cfg *Config) (*Tileset, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := newParser(f, cfg)
	start, err := p.root("tileset")
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", fname, err)
	}

	ts, err := p.parseTileset(start, firstgid)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", fname, err)
	}
	ts.Source = filepath.Base(fname)
	return ts, nil
}

// parseMapTileset reads a <tileset> tag within a map. External tilesets are
// loaded relative to BaseDir if we have one.
func (p *parser) parseMapTileset(start xml.StartElement) (*Tileset, error) {
	var firstgid uint32
	source := ""

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("source", &source, asString),
		},
		[]attrSpec{
			attr("firstgid", &firstgid, asUint32),
		},
		"tileset must have a firstgid",
	)
	if err != nil {
		return nil, err
	}

	if source == "" {
		return p.parseTileset(start, firstgid)
	}

	if p.cfg.BaseDir == "" {
		p.log.Debug("external tileset not loaded, no base dir", zap.String("source", source))
		return &Tileset{FirstGID: firstgid, Source: source, Properties: NewProperties()}, nil
	}

	ts, err := openTileset(filepath.Join(p.cfg.BaseDir, source), firstgid, p.cfg)
	if err != nil {
		return nil, err
	}
	ts.Source = source
	return ts, nil
}

// parseTileset reads the body of a <tileset> tag.
func (p *parser) parseTileset(start xml.StartElement, firstgid uint32) (*Tileset, error) {
	ts := &Tileset{FirstGID: firstgid, Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("spacing", &ts.Spacing, asInt),
			attr("margin", &ts.Margin, asInt),
			attr("tilecount", &ts.TileCount, asInt),
			attr("columns", &ts.Columns, asInt),
		},
		[]attrSpec{
			attr("name", &ts.Name, asString),
			attr("tilewidth", &ts.TileWidth, asInt),
			attr("tileheight", &ts.TileHeight, asInt),
		},
		"tileset must have a name, tilewidth and tileheight",
	)
	if err != nil {
		return nil, err
	}

	err = p.c.run("tileset", handlers{
		"image": func(s xml.StartElement) error {
			img, err := parseImage(s)
			if err != nil {
				return err
			}
			ts.Images = append(ts.Images, img)
			return nil
		},
		"tile": func(s xml.StartElement) error {
			t, err := p.parseTile(s)
			if err != nil {
				return err
			}
			ts.Tiles = append(ts.Tiles, t)
			return nil
		},
		"properties": func(xml.StartElement) error {
			return p.parseProperties(ts.Properties)
		},
		"wangsets":     p.c.skipTag,
		"terraintypes": p.c.skipTag,
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed tileset", zap.String("name", ts.Name), zap.Uint32("firstgid", ts.FirstGID))
	return ts, nil
}

func (p *parser) parseTile(start xml.StartElement) (*Tile, error) {
	t := &Tile{Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("type", &t.Type, asString),
			attr("probability", &t.Probability, asFloat),
		},
		[]attrSpec{
			attr("id", &t.ID, asUint32),
		},
		"tile must have an id",
	)
	if err != nil {
		return nil, err
	}

	err = p.c.run("tile", handlers{
		"image": func(s xml.StartElement) error {
			img, err := parseImage(s)
			t.Image = img
			return err
		},
		"properties": func(xml.StartElement) error {
			return p.parseProperties(t.Properties)
		},
		"animation": func(xml.StartElement) error {
			frames, err := p.parseAnimation()
			t.Animation = frames
			return err
		},
		"objectgroup": func(s xml.StartElement) error {
			g, err := p.parseObjectGroup(s)
			t.ObjectGroup = g
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parseImage reads the attributes of an <image> tag.
func parseImage(start xml.StartElement) (*Image, error) {
	img := &Image{}
	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("width", &img.Width, asInt),
			attr("height", &img.Height, asInt),
			attr("trans", &img.Trans, asColourRef),
		},
		[]attrSpec{
			attr("source", &img.Source, asString),
		},
		"image must have a source",
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}
