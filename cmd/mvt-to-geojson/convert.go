package main

import (
	"github.com/spf13/cobra"

	mvtgeojson "github.com/theoremus-urban-solutions/mvt-to-geojson"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/formatter"
)

func newConvertCommand(a *app) *cobra.Command {
	var (
		in            inputFlags
		layers        []string
		layerProperty string
		includeID     bool
		pretty        bool
		output        string
	)

	cmd := &cobra.Command{
		Use:   "convert <z/x/y | path | url>",
		Short: "Convert a vector tile to a GeoJSON FeatureCollection",
		Long: `Convert decodes every layer of a vector tile and writes the features as a
GeoJSON FeatureCollection with WGS84 coordinates. Layers appear in tile order.`,
		Example: `  mvt-to-geojson convert tiles/14/8716/5686.pbf
  mvt-to-geojson convert 14/8716/5686 --source 'https://tiles.example.com/{z}/{x}/{y}.pbf' --layer water
  mvt-to-geojson convert tile.mvt -z 14 -x 8716 -y 5686 --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, tile, err := a.resolve(cmd, &in, args[0])
			if err != nil {
				return err
			}

			opts := mvtgeojson.ConverterOptions(a.cfg)
			if cmd.Flags().Changed("layer") {
				opts.Layers = layers
			}
			if cmd.Flags().Changed("layer-property") {
				opts.LayerProperty = layerProperty
			}
			if cmd.Flags().Changed("include-id") {
				opts.IncludeID = includeID
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = a.cfg.Output.Pretty
			}

			fc, err := mvtgeojson.NewPipeline(src, opts).WithMaxBytes(a.cfg.Source.MaxBytes).Convert(cmd.Context(), tile)
			if err != nil {
				return err
			}
			body, err := formatter.BuildJSON(fc, pretty)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, body)
		},
	}

	in.register(cmd)
	cmd.Flags().StringArrayVarP(&layers, "layer", "l", nil, "Only convert the named layer (repeatable)")
	cmd.Flags().StringVar(&layerProperty, "layer-property", "", "Add the source layer name to each feature under this property")
	cmd.Flags().BoolVar(&includeID, "include-id", false, "Copy feature ids to the GeoJSON id member")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
