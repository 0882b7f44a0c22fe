package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mvtgeojson "github.com/theoremus-urban-solutions/mvt-to-geojson"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/config"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/internal"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds state shared by subcommands once the root command has run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        *config.AppConfig
}

func newRootCommand() *cobra.Command {
	a := &app{}
	mvtgeojson.Version = Version

	cmd := &cobra.Command{
		Use:   "mvt-to-geojson",
		Short: "Convert Mapbox Vector Tiles to GeoJSON",
		Long: `mvt-to-geojson decodes Mapbox Vector Tiles and reprojects their features
from tile-local coordinates to WGS84 longitude/latitude, producing a GeoJSON
FeatureCollection. Tiles can be read from disk or fetched over HTTP.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to config file (default: ./config.yml if present)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(newConvertCommand(a))
	cmd.AddCommand(newDecodeCommand(a))
	cmd.AddCommand(newFetchCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}

func (a *app) init() error {
	cfg, err := config.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := internal.InitLogging(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.cfg = cfg
	return nil
}
