package tmx

import (
	"strconv"
	"strings"
)

// decodeCSV reads csv encoded tile data into rows of `width` tiles.
//
// The text is all character data of the data (or chunk) tag, however many
// pieces the xml decoder delivered it in. Tiled itself always writes it in
// one piece.
func decodeCSV(text string, width int) ([][]LayerTile, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	tiles := make([]LayerTile, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		gid, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, newError(ErrUnrecognizedFormat, err, "csv tile %q", f)
		}
		tiles = append(tiles, LayerTile(gid))
	}

	return rowsOf(tiles, width), nil
}
