package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
)

func newFetchCommand(a *app) *cobra.Command {
	var (
		in         inputFlags
		output     string
		decompress bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <z/x/y | url>",
		Short: "Download a raw vector tile",
		Long:  "Fetch downloads a tile and writes its bytes unchanged, or inflated with --decompress.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, tile, err := a.resolve(cmd, &in, args[0])
			if err != nil {
				return err
			}
			data, err := src.Fetch(cmd.Context(), tile)
			if err != nil {
				return err
			}
			compression := tilesource.DetectCompression(data)
			if decompress {
				if data, err = tilesource.Decompress(data, a.cfg.Source.MaxBytes); err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("%w: %v", tilesource.ErrIO, err)
			}
			logrus.WithFields(logrus.Fields{
				"tile":        fmt.Sprintf("%d/%d/%d", tile.Z, tile.X, tile.Y),
				"bytes":       len(data),
				"compression": compression,
				"output":      output,
			}).Info("saved tile")
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the tile to")
	cmd.Flags().BoolVar(&decompress, "decompress", false, "Inflate gzip or zstd payloads before writing")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
