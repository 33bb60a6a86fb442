package tmx

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	s, err := OpenStore(filepath.Join(t.TempDir(), "tiles.sqlite"))
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreImportFinite(t *testing.T) {
	s := testStore(t)
	m, err := Decode(strings.NewReader(csvMap(t)))
	require.Nil(t, err)

	written := 0
	err = s.Import(m, func(n int) { written += n })

	assert.Nil(t, err)
	assert.Equal(t, 20, written) // 10 non nil tiles in each of 2 layers

	tile, err := s.At("ground", 2, 1)
	assert.Nil(t, err)
	assert.Equal(t, 5|FlipHorizontal, tile)

	tile, err = s.At("ground", 0, 1)
	assert.Nil(t, err)
	assert.True(t, tile.IsNil())

	layers, err := s.Layers()
	assert.Nil(t, err)
	assert.Equal(t, []string{"ground", "top"}, layers)

	grid, err := s.Region("ground", 0, 0, 4, 3)
	assert.Nil(t, err)
	assert.Equal(t, testGrid, grid)
}

func TestStoreImportInfinite(t *testing.T) {
	s := testStore(t)
	payload := b64(zlibBytes(t, tileBytes(testGrid)))
	m, err := Decode(strings.NewReader(fmt.Sprintf(infinitedata, payload, payload)))
	require.Nil(t, err)

	require.Nil(t, s.Import(m, nil))

	tile, err := s.At("ground", 19, 2)
	assert.Nil(t, err)
	assert.Equal(t, LayerTile(10), tile)

	grid, err := s.Region("ground", 14, 0, 18, 1)
	assert.Nil(t, err)
	assert.Equal(t, [][]LayerTile{{0, 0, 1, 2}}, grid)
}

func TestStoreImportOverwrites(t *testing.T) {
	s := testStore(t)
	m := &Map{Layers: []*Layer{{Name: "a", Data: &LayerData{Tiles: [][]LayerTile{{1, 2}}}}}}
	require.Nil(t, s.Import(m, nil))

	m.Layers[0].Data.Tiles = [][]LayerTile{{3, 0}}
	require.Nil(t, s.Import(m, nil))

	grid, err := s.Region("a", 0, 0, 2, 1)
	assert.Nil(t, err)
	// nil tiles aren't written, so the old tile survives
	assert.Equal(t, [][]LayerTile{{3, 2}}, grid)
}

func TestStoreRegionInvalid(t *testing.T) {
	s := testStore(t)

	_, err := s.Region("a", 4, 0, 4, 10)
	assert.NotNil(t, err)

	_, err = s.Region("a", 0, 5, 4, 1)
	assert.NotNil(t, err)
}

func TestStoreReopen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "tiles.sqlite")

	s, err := OpenStore(fname)
	require.Nil(t, err)
	assert.Equal(t, fname, s.Filename())
	require.Nil(t, s.Import(&Map{Layers: []*Layer{{Name: "a", Data: &LayerData{Tiles: [][]LayerTile{{7}}}}}}, nil))
	require.Nil(t, s.Close())

	s, err = OpenStore(fname)
	require.Nil(t, err)
	defer s.Close()

	tile, err := s.At("a", 0, 0)
	assert.Nil(t, err)
	assert.Equal(t, LayerTile(7), tile)
}

func TestTileReader(t *testing.T) {
	m, err := Decode(strings.NewReader(csvMap(t)))
	require.Nil(t, err)
	s := testStore(t)
	require.Nil(t, s.Import(m, nil))

	for _, r := range []TileReader{m, s} {
		for y, row := range testGrid {
			for x, want := range row {
				got, err := r.At("ground", x, y)
				assert.Nil(t, err)
				assert.Equal(t, want, got)
			}
		}
	}
}
