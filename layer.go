package tmx

import (
	"encoding/xml"

	"go.uber.org/zap"
)

// Layer is a tile layer.
type Layer struct {
	ID      int
	Name    string
	Width   int // in tiles
	Height  int // in tiles
	Opacity float64
	Visible bool
	OffsetX float64 // in pixels
	OffsetY float64 // in pixels

	Data       *LayerData
	Properties *Properties
}

// ImageLayer is a layer showing a single image.
type ImageLayer struct {
	ID      int
	Name    string
	Opacity float64
	Visible bool
	OffsetX float64
	OffsetY float64

	Image      *Image
	Properties *Properties
}

// Group is a group layer. It's members are also listed on the Map.
type Group struct {
	ID      int
	Name    string
	Opacity float64
	Visible bool
	OffsetX float64
	OffsetY float64

	Layers       []*Layer
	ImageLayers  []*ImageLayer
	ObjectGroups []*ObjectGroup
	Groups       []*Group

	Properties *Properties
}

// parseGroup reads a <group> tag, adding the layers in it to `m` as well.
func (p *parser) parseGroup(start xml.StartElement, m *Map) (*Group, error) {
	g := &Group{Opacity: 1, Visible: true, Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("id", &g.ID, asInt),
			attr("name", &g.Name, asString),
			attr("opacity", &g.Opacity, asFloat),
			attr("visible", &g.Visible, asBool),
			attr("offsetx", &g.OffsetX, asFloat),
			attr("offsety", &g.OffsetY, asFloat),
		},
		nil,
		"",
	)
	if err != nil {
		return nil, err
	}

	hs := p.layerHandlers(m, g)
	hs["properties"] = func(xml.StartElement) error {
		return p.parseProperties(g.Properties)
	}

	err = p.c.run("group", hs)
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed group", zap.String("name", g.Name), zap.Int("layers", len(g.Layers)))
	return g, nil
}

// parseLayer reads a <layer> tag. Tile data of infinite maps is read as chunks.
func (p *parser) parseLayer(start xml.StartElement, infinite bool) (*Layer, error) {
	l := &Layer{Opacity: 1, Visible: true, Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("id", &l.ID, asInt),
			attr("opacity", &l.Opacity, asFloat),
			attr("visible", &l.Visible, asBool),
			attr("offsetx", &l.OffsetX, asFloat),
			attr("offsety", &l.OffsetY, asFloat),
		},
		[]attrSpec{
			attr("name", &l.Name, asString),
			attr("width", &l.Width, asInt),
			attr("height", &l.Height, asInt),
		},
		"layer must have a name, width and height",
	)
	if err != nil {
		return nil, err
	}

	if infinite {
		l.Data = &LayerData{Chunks: map[ChunkKey]*Chunk{}}
	} else {
		l.Data = &LayerData{Tiles: [][]LayerTile{}}
	}

	err = p.c.run("layer", handlers{
		"data": func(s xml.StartElement) error {
			var d *LayerData
			var err error
			if infinite {
				d, err = p.parseInfiniteData(s)
			} else {
				d, err = p.parseData(s, l.Width)
			}
			if err != nil {
				return err
			}
			l.Data = d
			return nil
		},
		"properties": func(xml.StartElement) error {
			return p.parseProperties(l.Properties)
		},
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed layer", zap.String("name", l.Name), zap.Bool("infinite", infinite))
	return l, nil
}

func (p *parser) parseImageLayer(start xml.StartElement) (*ImageLayer, error) {
	l := &ImageLayer{Opacity: 1, Visible: true, Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("id", &l.ID, asInt),
			attr("opacity", &l.Opacity, asFloat),
			attr("visible", &l.Visible, asBool),
			attr("offsetx", &l.OffsetX, asFloat),
			attr("offsety", &l.OffsetY, asFloat),
		},
		[]attrSpec{
			attr("name", &l.Name, asString),
		},
		"image layer must have a name",
	)
	if err != nil {
		return nil, err
	}

	err = p.c.run("imagelayer", handlers{
		"image": func(s xml.StartElement) error {
			img, err := parseImage(s)
			l.Image = img
			return err
		},
		"properties": func(xml.StartElement) error {
			return p.parseProperties(l.Properties)
		},
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
