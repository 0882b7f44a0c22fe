package tilesource

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb/maptile"
)

// FileSource reads tiles from the local filesystem.
type FileSource struct {
	template string
}

// NewFileSource creates a source for a path or path template.
func NewFileSource(template string) *FileSource {
	return &FileSource{template: template}
}

// Fetch reads the file for tile.
func (s *FileSource) Fetch(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := Expand(s.template, tile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return data, nil
}
