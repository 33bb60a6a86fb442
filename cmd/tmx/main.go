package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/voidshard/tmx"
)

const desc = `Reads Tiled .tmx maps (doc.mapeditor.org/en/stable/reference/tmx-map-format/).

Prints map summaries & copies tile layers (finite or infinite) into a sqlite tile store
from which arbitrary rectangles can be read back.`

var cli struct {
	Config  string `default:"~/.tmx.yaml" help:"yaml config file"`
	Verbose bool   `short:"v" help:"debug logging"`

	Info   infoCmd   `cmd:"" help:"print a summary of a .tmx map"`
	Export exportCmd `cmd:"" help:"write the tile layers of a .tmx map to a tile store"`
	Region regionCmd `cmd:"" help:"print a rectangle of a stored layer as csv"`
}

// runContext is handed to each command's Run
type runContext struct {
	cfg *config
	log *zap.Logger
}

type infoCmd struct {
	Input string `arg:"" help:"input .tmx map"`
}

func (c *infoCmd) Run(rc *runContext) error {
	m, err := tmx.OpenWithConfig(c.Input, &tmx.Config{Logger: rc.log})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s %dx%d tiles of %dx%d px", c.Input, m.Orientation, m.Width, m.Height, m.TileWidth, m.TileHeight)
	if m.Infinite {
		fmt.Printf(" (infinite)")
	}
	fmt.Println()

	for _, ts := range m.Tilesets {
		fmt.Printf("tileset %q firstgid=%d tiles=%d source=%q\n", ts.Name, ts.FirstGID, ts.TileCount, ts.Source)
	}
	for _, l := range m.Layers {
		if l.Data.Infinite() {
			fmt.Printf("layer %q chunks=%d tiles=%d\n", l.Name, len(l.Data.Chunks), l.Data.Count())
		} else {
			fmt.Printf("layer %q rows=%d tiles=%d\n", l.Name, len(l.Data.Tiles), l.Data.Count())
		}
	}
	for _, l := range m.ImageLayers {
		fmt.Printf("imagelayer %q\n", l.Name)
	}
	for _, g := range m.ObjectGroups {
		fmt.Printf("objectgroup %q objects=%d\n", g.Name, len(g.Objects))
	}
	for _, g := range m.Groups {
		fmt.Printf("group %q layers=%d groups=%d\n", g.Name, len(g.Layers), len(g.Groups))
	}

	fmt.Printf("compressions: %s\n", strings.Join(tmx.Compressions(), ", "))
	return nil
}

type exportCmd struct {
	Input    string `arg:"" help:"input .tmx map"`
	Database string `short:"d" help:"tile store to write to (defaults to the config database)"`
}

func (c *exportCmd) Run(rc *runContext) error {
	dbfile := c.Database
	if dbfile == "" {
		dbfile = rc.cfg.Database
	}

	m, err := tmx.OpenWithConfig(c.Input, &tmx.Config{Logger: rc.log})
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(dbfile), 0755)
	if err != nil {
		return err
	}

	store, err := tmx.OpenStore(dbfile)
	if err != nil {
		return err
	}
	defer store.Close()

	total := 0
	for _, l := range m.Layers {
		total += l.Data.Count()
	}

	bar := progressbar.Default(int64(total), "importing tiles")
	err = store.Import(m, func(n int) { bar.Add(n) })
	if err != nil {
		return err
	}

	rc.log.Info("exported map", zap.String("map", c.Input), zap.String("database", dbfile), zap.Int("tiles", total))
	return nil
}

type regionCmd struct {
	Layer    string `arg:"" help:"layer name"`
	Database string `short:"d" help:"tile store to read from (defaults to the config database)"`

	X0 int `name:"x0" default:"0" help:"x coord of region, top left corner"`
	Y0 int `name:"y0" default:"0" help:"y coord of region, top left corner"`
	X1 int `name:"x1" default:"16" help:"x coord of region, bottom right corner (exclusive)"`
	Y1 int `name:"y1" default:"16" help:"y coord of region, bottom right corner (exclusive)"`
}

func (c *regionCmd) Run(rc *runContext) error {
	dbfile := c.Database
	if dbfile == "" {
		dbfile = rc.cfg.Database
	}

	if !fileExists(dbfile) {
		return fmt.Errorf("tile store not found: %s", dbfile)
	}

	store, err := tmx.OpenStore(dbfile)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Region(c.Layer, c.X0, c.Y0, c.X1, c.Y1)
	if err != nil {
		return err
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, t := range row {
			cells[i] = fmt.Sprintf("%d", t)
		}
		fmt.Println(strings.Join(cells, ","))
	}
	return nil
}

// fileExists checks if file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("tmx"), kong.Description(desc))

	cfg, err := loadConfig(cli.Config)
	ctx.FatalIfErrorf(err)

	log, err := newLogger(cfg, cli.Verbose)
	ctx.FatalIfErrorf(err)
	defer log.Sync()

	ctx.FatalIfErrorf(ctx.Run(&runContext{cfg: cfg, log: log}))
}
