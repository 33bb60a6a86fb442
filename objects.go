package tmx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Shape of an object
type Shape int

const (
	ShapeRect Shape = iota
	ShapeEllipse
	ShapePoint
	ShapePolygon
	ShapePolyline
)

// Point is a polygon / polyline vertex, relative to it's object.
type Point struct {
	X float64
	Y float64
}

// ObjectGroup is an object layer (or the collision shapes of a tile).
type ObjectGroup struct {
	ID        int
	Name      string
	Colour    *Colour
	Opacity   float64
	Visible   bool
	DrawOrder string

	Objects    []*Object
	Properties *Properties
}

// Object is a single object in an ObjectGroup.
type Object struct {
	ID       int
	GID      LayerTile // for tile objects, else nil tile
	Name     string
	Type     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Visible  bool

	Shape Shape

	// Points of a polygon or polyline
	Points []Point

	Properties *Properties
}

func (p *parser) parseObjectGroup(start xml.StartElement) (*ObjectGroup, error) {
	g := &ObjectGroup{Opacity: 1, Visible: true, Properties: NewProperties()}

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("id", &g.ID, asInt),
			attr("name", &g.Name, asString),
			attr("color", &g.Colour, asColourRef),
			attr("opacity", &g.Opacity, asFloat),
			attr("visible", &g.Visible, asBool),
			attr("draworder", &g.DrawOrder, asString),
		},
		nil,
		"",
	)
	if err != nil {
		return nil, err
	}

	err = p.c.run("objectgroup", handlers{
		"object": func(s xml.StartElement) error {
			o, err := p.parseObject(s)
			if err != nil {
				return err
			}
			g.Objects = append(g.Objects, o)
			return nil
		},
		"properties": func(xml.StartElement) error {
			return p.parseProperties(g.Properties)
		},
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseObject(start xml.StartElement) (*Object, error) {
	o := &Object{Visible: true, Properties: NewProperties()}
	var gid uint32

	err := getAttrs(
		start.Attr,
		[]attrSpec{
			attr("id", &o.ID, asInt),
			attr("gid", &gid, asUint32),
			attr("name", &o.Name, asString),
			attr("type", &o.Type, asString),
			attr("width", &o.Width, asFloat),
			attr("height", &o.Height, asFloat),
			attr("rotation", &o.Rotation, asFloat),
			attr("visible", &o.Visible, asBool),
		},
		[]attrSpec{
			attr("x", &o.X, asFloat),
			attr("y", &o.Y, asFloat),
		},
		"object must have an x and a y",
	)
	if err != nil {
		return nil, err
	}
	o.GID = LayerTile(gid)

	shape := func(kind Shape) handlerFunc {
		return func(s xml.StartElement) error {
			o.Shape = kind
			if kind != ShapePolygon && kind != ShapePolyline {
				return nil
			}

			raw := ""
			err := getAttrs(s.Attr, nil, []attrSpec{attr("points", &raw, asString)}, "polygon / polyline must have points")
			if err != nil {
				return err
			}
			o.Points, err = parsePoints(raw)
			return err
		}
	}

	err = p.c.run("object", handlers{
		"ellipse":  shape(ShapeEllipse),
		"point":    shape(ShapePoint),
		"polygon":  shape(ShapePolygon),
		"polyline": shape(ShapePolyline),
		"text":     p.c.skipTag,
		"properties": func(xml.StartElement) error {
			return p.parseProperties(o.Properties)
		},
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// parsePoints reads "x,y x,y ..." point lists.
func parsePoints(raw string) ([]Point, error) {
	pairs := strings.Fields(raw)
	points := make([]Point, 0, len(pairs))

	for _, pair := range pairs {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, newError(ErrMalformedAttributes, nil, "bad point %q", pair)
		}

		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, newError(ErrMalformedAttributes, err, "bad point %q", pair)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, newError(ErrMalformedAttributes, err, "bad point %q", pair)
		}

		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
