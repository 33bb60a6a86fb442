package tmx

// TileReader is something we can read placed tiles from
type TileReader interface {
	// At returns the tile at x,y on the named layer.
	// Unset cells return the nil tile.
	At(layer string, x, y int) (LayerTile, error)
}

var (
	_ TileReader = (*Map)(nil)
	_ TileReader = (*Store)(nil)
)
