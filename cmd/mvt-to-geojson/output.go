package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
)

// writeOutput writes body plus a trailing newline to path, or to stdout when
// path is empty.
func writeOutput(cmd *cobra.Command, path string, body []byte) error {
	body = append(body, '\n')
	if path == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("%w: %v", tilesource.ErrIO, err)
	}
	return nil
}
