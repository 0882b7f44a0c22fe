package main

import (
	"github.com/spf13/cobra"

	mvtgeojson "github.com/theoremus-urban-solutions/mvt-to-geojson"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/formatter"
)

func newDecodeCommand(a *app) *cobra.Command {
	var (
		in     inputFlags
		pretty bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode <z/x/y | path | url>",
		Short: "Dump a decoded vector tile in tile coordinates",
		Long: `Decode prints each layer's name, version and extent with its features
(id, geometry type, properties and geometry in tile-local coordinates) as JSON.
No projection is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, tile, err := a.resolve(cmd, &in, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = a.cfg.Output.Pretty
			}

			t, err := mvtgeojson.NewPipeline(src, mvtgeojson.ConverterOptions(a.cfg)).WithMaxBytes(a.cfg.Source.MaxBytes).Decode(cmd.Context(), tile)
			if err != nil {
				return err
			}
			body, err := formatter.BuildDecodedJSON(t, pretty)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, body)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
