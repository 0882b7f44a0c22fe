package main

import (
	"github.com/spf13/cobra"

	mvtgeojson "github.com/theoremus-urban-solutions/mvt-to-geojson"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port   int
		source string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tiles as GeoJSON over HTTP",
		Long: `Serve exposes GET /api/tiles/{z}/{x}/{y}.geojson backed by the configured
tile source, plus GET /api/health.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if source != "" {
				cfg.Source.URLTemplate = source
			}

			pipeline, err := mvtgeojson.NewPipelineFromConfig(&cfg)
			if err != nil {
				return err
			}
			srv := mvtgeojson.NewServer(pipeline, mvtgeojson.ServerOptions{
				Port:       cfg.Server.Port,
				Pretty:     cfg.Output.Pretty,
				SourceName: cfg.Source.URLTemplate,
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Tile URL or path template with {z}/{x}/{y} (overrides config)")

	return cmd
}
