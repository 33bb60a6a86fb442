package tmx

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlUpsertTile = `INSERT INTO tiles (layer, x, y, gid) VALUES (:layer, :x, :y, :gid) ON CONFLICT (layer, x, y) DO UPDATE SET gid=EXCLUDED.gid;`
	sqlRegion     = `SELECT layer,x,y,gid FROM tiles WHERE layer=:layer AND x>=:x0 AND x<:x1 AND y>=:y0 AND y<:y1;`
	sqlAt         = `SELECT layer,x,y,gid FROM tiles WHERE layer=:layer AND x=:x AND y=:y LIMIT 1;`
	sqlLayers     = `SELECT DISTINCT layer FROM tiles ORDER BY layer;`
)

// Store keeps the tile layers of (any number of) maps in a sqlite database,
// so that huge infinite maps can be queried a rectangle at a time.
//
// Tiles are addressed by layer name & map coordinates; for chunked layers
// that's chunk origin + offset within the chunk.
type Store struct {
	filename string
	db       *sqlx.DB
}

// OpenStore opens the sqlite tile store at fname.
// Will create if it doesn't exist.
func OpenStore(fname string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, filename: fname}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Filename returns the path to the store on disk
func (s *Store) Filename() string {
	return s.filename
}

// Close the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Import writes every non nil tile of every tile layer in `m`, overwriting
// tiles already stored at the same place. It's all or nothing: the write is
// a single transaction. If given, progress is called once per tile written.
func (s *Store) Import(m *Map, progress func(n int)) error {
	txn, err := s.db.Beginx()
	if err != nil {
		return err
	}

	stmt, err := txn.PrepareNamed(sqlUpsertTile)
	if err != nil {
		txn.Rollback()
		return err
	}
	defer stmt.Close()

	for _, l := range m.Layers {
		if l.Data == nil {
			continue
		}

		err = l.Data.Each(func(x, y int, t LayerTile) error {
			if t.IsNil() {
				return nil
			}
			if _, err := stmt.Exec(newDBTile(l.Name, x, y, t)); err != nil {
				return err
			}
			if progress != nil {
				progress(1)
			}
			return nil
		})
		if err != nil {
			txn.Rollback()
			return fmt.Errorf("layer %s: %w", l.Name, err)
		}
	}

	return txn.Commit()
}

// At returns the tile stored at (x,y) on the given layer, or the nil tile.
func (s *Store) At(layer string, x, y int) (LayerTile, error) {
	rows, err := s.db.NamedQuery(sqlAt, map[string]interface{}{
		"layer": layer,
		"x":     x,
		"y":     y,
	})
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	tile := dbTile{}
	for rows.Next() { // there's at most one due to LIMIT 1
		if err := rows.StructScan(&tile); err != nil {
			return 0, err
		}
	}

	return LayerTile(tile.GID), rows.Err()
}

// Region returns the tiles of a layer in the rectangle (x0,y0) -> (x1,y1)
// (exclusive) as rows. Cells with nothing stored are nil tiles.
func (s *Store) Region(layer string, x0, y0, x1, y1 int) ([][]LayerTile, error) {
	if x1 <= x0 || y1 <= y0 {
		return nil, fmt.Errorf("requested region (%d,%d)->(%d,%d) is invalid", x0, y0, x1, y1)
	}

	grid := make([][]LayerTile, y1-y0)
	for i := range grid {
		grid[i] = make([]LayerTile, x1-x0)
	}

	rows, err := s.db.NamedQuery(sqlRegion, map[string]interface{}{
		"layer": layer,
		"x0":    x0, "x1": x1,
		"y0": y0, "y1": y1,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tile := dbTile{}
	for rows.Next() {
		if err := rows.StructScan(&tile); err != nil {
			return nil, err
		}
		grid[tile.Y-y0][tile.X-x0] = LayerTile(tile.GID)
	}

	return grid, rows.Err()
}

// Layers returns the names of all layers with stored tiles.
func (s *Store) Layers() ([]string, error) {
	names := []string{}
	if err := s.db.Select(&names, sqlLayers); err != nil {
		return nil, err
	}
	return names, nil
}

// init creates our table if it doesn't exist
func (s *Store) init() error {
	createTiles := `CREATE TABLE IF NOT EXISTS tiles(
		layer TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		gid INTEGER NOT NULL,
		PRIMARY KEY (layer, x, y)
	    );`
	_, err := s.db.Exec(createTiles)
	return err
}

// dbTile is a single stored tile.
// The gid keeps it's flip flags.
type dbTile struct {
	Layer string `db:"layer"`
	X     int    `db:"x"`
	Y     int    `db:"y"`
	GID   int64  `db:"gid"`
}

func newDBTile(layer string, x, y int, t LayerTile) dbTile {
	return dbTile{Layer: layer, X: x, Y: y, GID: int64(t)}
}
