package tmx

import (
	"encoding/xml"
)

// Frame is one step of a tile animation.
type Frame struct {
	// TileID is the local id of the tile shown (within the same tileset)
	TileID uint32

	// Duration in milliseconds
	Duration uint32
}

// parseAnimation reads the <frame> tags of an <animation>.
func (p *parser) parseAnimation() ([]Frame, error) {
	frames := []Frame{}
	err := p.c.run("animation", handlers{
		"frame": func(s xml.StartElement) error {
			f := Frame{}
			err := getAttrs(
				s.Attr,
				nil,
				[]attrSpec{
					attr("tileid", &f.TileID, asUint32),
					attr("duration", &f.Duration, asUint32),
				},
				"frame must have a tileid and duration",
			)
			if err != nil {
				return err
			}
			frames = append(frames, f)
			return nil
		},
	})
	return frames, err
}
