package main

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb/maptile"
	"github.com/spf13/cobra"

	mvtgeojson "github.com/theoremus-urban-solutions/mvt-to-geojson"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
)

// inputFlags locate the tile named by a command argument.
type inputFlags struct {
	source  string
	z, x, y uint32
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Tile URL or path template with {z}/{x}/{y} (overrides config)")
	cmd.Flags().Uint32VarP(&f.z, "zoom", "z", 0, "Tile zoom level")
	cmd.Flags().Uint32VarP(&f.x, "x", "x", 0, "Tile column")
	cmd.Flags().Uint32VarP(&f.y, "y", "y", 0, "Tile row")
}

func (f *inputFlags) coordsSet(cmd *cobra.Command) (bool, error) {
	n := 0
	for _, name := range []string{"zoom", "x", "y"} {
		if cmd.Flags().Changed(name) {
			n++
		}
	}
	switch n {
	case 0:
		return false, nil
	case 3:
		return true, nil
	default:
		return false, errors.New("-z, -x and -y must be given together")
	}
}

// resolve turns arg into a source and tile. arg is either a z/x/y tile id,
// fetched from the configured or --source template, or a path or URL whose
// tile comes from -z/-x/-y or from the trailing z/x/y of the location.
func (a *app) resolve(cmd *cobra.Command, f *inputFlags, arg string) (tilesource.Source, maptile.Tile, error) {
	explicit, err := f.coordsSet(cmd)
	if err != nil {
		return nil, maptile.Tile{}, err
	}
	opts := mvtgeojson.SourceOptions(a.cfg)

	if tilesource.IsTileID(arg) {
		tile, err := tilesource.ParseTileID(arg)
		if err != nil {
			return nil, maptile.Tile{}, err
		}
		location := f.source
		if location == "" {
			location = a.cfg.Source.URLTemplate
		}
		if location == "" {
			return nil, maptile.Tile{}, fmt.Errorf("no tile source for %s: set --source or source.urlTemplate", arg)
		}
		src, err := tilesource.New(location, opts)
		return src, tile, err
	}

	src, err := tilesource.New(arg, opts)
	if err != nil {
		return nil, maptile.Tile{}, err
	}
	if explicit {
		return src, maptile.New(f.x, f.y, maptile.Zoom(f.z)), nil
	}
	if !tilesource.IsTemplate(arg) {
		if tile, ok := tilesource.TileIDFromPath(arg); ok {
			return src, tile, nil
		}
	}
	return nil, maptile.Tile{}, fmt.Errorf("cannot determine tile coordinates for %s: pass -z, -x and -y", arg)
}
