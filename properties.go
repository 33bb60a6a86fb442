package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Property types
	// see doc.mapeditor.org/en/stable/reference/tmx-map-format/#properties
	PropString = "string"
	PropInt    = "int"
	PropFloat  = "float"
	PropBool   = "bool"
	PropColor  = "color"
	PropFile   = "file"
)

// Properties are the custom properties set on a map, tileset, tile, layer
// or object, kept by type.
// Colours & files are kept as strings (see Colour to read a colour).
type Properties struct {
	ints    map[string]int
	floats  map[string]float64
	strings map[string]string
	bools   map[string]bool
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{
		ints:    map[string]int{},
		floats:  map[string]float64{},
		strings: map[string]string{},
		bools:   map[string]bool{},
	}
}

// Len returns the number of properties set
func (p *Properties) Len() int {
	return len(p.ints) + len(p.floats) + len(p.strings) + len(p.bools)
}

// Merge properties `o` into this properties
func (p *Properties) Merge(o *Properties) *Properties {
	for k, v := range o.ints {
		p.SetInt(k, v)
	}
	for k, v := range o.floats {
		p.SetFloat(k, v)
	}
	for k, v := range o.strings {
		p.SetString(k, v)
	}
	for k, v := range o.bools {
		p.SetBool(k, v)
	}
	return p
}

// set stores a raw property value according to it's TMX type.
func (p *Properties) set(name, kind, value string) error {
	switch kind {
	case PropInt:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return newError(ErrMalformedAttributes, err, "property %s is not an int", name)
		}
		p.SetInt(name, int(v))
	case PropFloat:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return newError(ErrMalformedAttributes, err, "property %s is not a float", name)
		}
		p.SetFloat(name, v)
	case PropBool:
		v, ok := asBool(value)
		if !ok {
			return newError(ErrMalformedAttributes, nil, "property %s is not a bool: %q", name, value)
		}
		p.SetBool(name, v)
	case PropColor:
		if value != "" {
			if _, ok := asColour(value); !ok {
				return newError(ErrMalformedAttributes, nil, "property %s is not a color: %q", name, value)
			}
		}
		p.SetString(name, value)
	default:
		// string, file & anything newer than us
		p.SetString(name, value)
	}
	return nil
}

// parseProperties reads a <properties> tag into `into`.
// Multi line string values are written as the property's text rather than
// it's value attribute.
func (p *parser) parseProperties(into *Properties) error {
	return p.c.run("properties", handlers{
		"property": func(s xml.StartElement) error {
			name := ""
			kind := PropString
			var value *string

			err := getAttrs(
				s.Attr,
				[]attrSpec{
					attr("type", &kind, asString),
					attr("value", &value, present),
				},
				[]attrSpec{
					attr("name", &name, asString),
				},
				"property must have a name",
			)
			if err != nil {
				return err
			}

			if value == nil {
				text, err := p.c.text()
				if err != nil {
					return err
				}
				value = &text
			}

			return into.set(name, kind, *value)
		},
	})
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.strings[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.clear(key)
	p.strings[key] = value
}

func (p *Properties) Int(key string) (int, bool) {
	v, ok := p.ints[key]
	return v, ok
}

func (p *Properties) SetInt(key string, value int) {
	p.clear(key)
	p.ints[key] = value
}

func (p *Properties) Float(key string) (float64, bool) {
	v, ok := p.floats[key]
	return v, ok
}

func (p *Properties) SetFloat(key string, value float64) {
	p.clear(key)
	p.floats[key] = value
}

func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.bools[key]
	return v, ok
}

func (p *Properties) SetBool(key string, value bool) {
	p.clear(key)
	p.bools[key] = value
}

// Colour reads a color property
func (p *Properties) Colour(key string) (Colour, bool) {
	v, ok := p.strings[key]
	if !ok {
		return Colour{}, false
	}
	return asColour(v)
}

func (p *Properties) clear(key string) {
	delete(p.ints, key)
	delete(p.floats, key)
	delete(p.strings, key)
	delete(p.bools, key)
}

// Colour is an ARGB colour as written by Tiled (#AARRGGBB or #RRGGBB).
type Colour struct {
	Alpha uint8
	Red   uint8
	Green uint8
	Blue  uint8
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Alpha, c.Red, c.Green, c.Blue)
}

// asColour parses #RRGGBB (fully opaque) or #AARRGGBB, '#' optional.
func asColour(s string) (Colour, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Colour{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Colour{}, false
	}

	c := Colour{
		Alpha: 0xff,
		Red:   uint8(v >> 16),
		Green: uint8(v >> 8),
		Blue:  uint8(v),
	}
	if len(s) == 8 {
		c.Alpha = uint8(v >> 24)
	}
	return c, true
}

func asColourRef(s string) (*Colour, bool) {
	c, ok := asColour(s)
	if !ok {
		return nil, false
	}
	return &c, true
}
