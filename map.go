/* file holds the entry points for reading TMX maps & the map structure itself.
 */
package tmx

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Orientation of a map
type Orientation string

const (
	Orthogonal Orientation = "orthogonal"
	Isometric  Orientation = "isometric"
	Staggered  Orientation = "staggered"
	Hexagonal  Orientation = "hexagonal"
)

func asOrientation(s string) (Orientation, bool) {
	switch o := Orientation(s); o {
	case Orthogonal, Isometric, Staggered, Hexagonal:
		return o, true
	}
	return "", false
}

// Map is a parsed TMX map.
type Map struct {
	Version     string
	Orientation Orientation
	RenderOrder string

	// in tiles
	Width  int
	Height int

	// in pixels
	TileWidth  int
	TileHeight int

	// Infinite maps store their layers as chunks
	Infinite bool

	BackgroundColour *Colour
	NextLayerID      int
	NextObjectID     int

	Tilesets []*Tileset

	// Layers, ImageLayers & ObjectGroups include those within groups
	Layers       []*Layer
	ImageLayers  []*ImageLayer
	ObjectGroups []*ObjectGroup

	// Groups are the top level group layers
	Groups []*Group

	Properties *Properties
}

// Layer returns the tile layer with the given name (or nil).
func (m *Map) Layer(name string) *Layer {
	for _, l := range m.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// At returns the tile at (x, y) on the named layer. Unknown layers & cells
// outside the layer give the nil tile.
func (m *Map) At(layer string, x, y int) (LayerTile, error) {
	l := m.Layer(layer)
	if l == nil || l.Data == nil {
		return 0, nil
	}
	return l.Data.At(x, y), nil
}

// TilesetFor returns the tileset a gid belongs to, that is the one with
// the highest FirstGID <= gid (or nil).
func (m *Map) TilesetFor(t LayerTile) *Tileset {
	if t.IsNil() {
		return nil
	}
	var found *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID <= t.GID() && (found == nil || ts.FirstGID > found.FirstGID) {
			found = ts
		}
	}
	return found
}

// parser holds the state of a single decode
type parser struct {
	c   *cursor
	cfg *Config
	log *zap.Logger
}

func newParser(r io.Reader, cfg *Config) *parser {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &parser{c: newCursor(r, log), cfg: cfg, log: log}
}

// root scans forward to the start of the root tag `name`.
func (p *parser) root(name string) (xml.StartElement, error) {
	for {
		tok, err := p.c.next()
		if errors.Is(err, ErrPrematureEnd) {
			return xml.StartElement{}, newError(ErrPrematureEnd, nil, "document ended before %s was parsed", name)
		} else if err != nil {
			return xml.StartElement{}, err
		}

		if s, ok := tok.(xml.StartElement); ok && s.Name.Local == name {
			return s, nil
		}
	}
}

// Decode an input TMX map XML
func Decode(r io.Reader) (*Map, error) {
	return DecodeWithConfig(r, DefaultConfig())
}

// DecodeWithConfig decodes an input TMX map XML with the given settings.
func DecodeWithConfig(r io.Reader, cfg *Config) (*Map, error) {
	p := newParser(r, cfg)

	start, err := p.root("map")
	if err != nil {
		return nil, err
	}
	p.log.Debug("found map")

	return p.parseMap(start)
}

// Open reads a TMX map from disk, loading external tilesets next to it.
func Open(fname string) (*Map, error) {
	return OpenWithConfig(fname, DefaultConfig())
}

// OpenWithConfig reads a TMX map from disk. The config BaseDir is set to the
// map's directory.
func OpenWithConfig(fname string, cfg *Config) (*Map, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.BaseDir = filepath.Dir(fname)
	return DecodeWithConfig(f, &c)
}

func (p *parser) parseMap(start xml.StartElement) (*Map, error) {
	m := &Map{Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("version", &m.Version, asString),
			attr("renderorder", &m.RenderOrder, asString),
			attr("infinite", &m.Infinite, asBool),
			attr("backgroundcolor", &m.BackgroundColour, asColourRef),
			attr("nextlayerid", &m.NextLayerID, asInt),
			attr("nextobjectid", &m.NextObjectID, asInt),
		},
		[]attrSpec{
			attr("orientation", &m.Orientation, asOrientation),
			attr("width", &m.Width, asInt),
			attr("height", &m.Height, asInt),
			attr("tilewidth", &m.TileWidth, asInt),
			attr("tileheight", &m.TileHeight, asInt),
		},
		"map must have an orientation, width, height, tilewidth and tileheight",
	)
	if err != nil {
		return nil, err
	}

	hs := p.layerHandlers(m, nil)
	hs["tileset"] = func(s xml.StartElement) error {
		ts, err := p.parseMapTileset(s)
		if err != nil {
			return err
		}
		m.Tilesets = append(m.Tilesets, ts)
		return nil
	}
	hs["properties"] = func(xml.StartElement) error {
		return p.parseProperties(m.Properties)
	}
	hs["editorsettings"] = p.c.skipTag

	err = p.c.run("map", hs)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// layerHandlers parses the layers of a map or of group `g` (nil for the map
// itself). Every layer is added to the map's flat lists, in document order,
// as well as to the group holding it.
func (p *parser) layerHandlers(m *Map, g *Group) handlers {
	return handlers{
		"layer": func(s xml.StartElement) error {
			l, err := p.parseLayer(s, m.Infinite)
			if err != nil {
				return err
			}
			m.Layers = append(m.Layers, l)
			if g != nil {
				g.Layers = append(g.Layers, l)
			}
			return nil
		},
		"imagelayer": func(s xml.StartElement) error {
			l, err := p.parseImageLayer(s)
			if err != nil {
				return err
			}
			m.ImageLayers = append(m.ImageLayers, l)
			if g != nil {
				g.ImageLayers = append(g.ImageLayers, l)
			}
			return nil
		},
		"objectgroup": func(s xml.StartElement) error {
			og, err := p.parseObjectGroup(s)
			if err != nil {
				return err
			}
			m.ObjectGroups = append(m.ObjectGroups, og)
			if g != nil {
				g.ObjectGroups = append(g.ObjectGroups, og)
			}
			return nil
		},
		"group": func(s xml.StartElement) error {
			sub, err := p.parseGroup(s, m)
			if err != nil {
				return err
			}
			if g != nil {
				g.Groups = append(g.Groups, sub)
			} else {
				m.Groups = append(m.Groups, sub)
			}
			return nil
		},
	}
}
