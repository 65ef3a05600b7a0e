package asset

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"stairwalk/internal/config"
)

// Scene holds everything decoded from disk for one world. It owns no GPU
// resources, so dropping it on error leaks nothing.
type Scene struct {
	Model   *Model
	Metal   *image.NRGBA
	Ceramic *image.NRGBA
}

// LoadScene decodes the model and both textures concurrently. Any failure
// fails the whole load.
func LoadScene(ctx context.Context, modelPath string, tex config.Textures) (*Scene, error) {
	var s Scene
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := LoadModel(filepath.Dir(modelPath), filepath.Base(modelPath))
		if err != nil {
			return err
		}
		s.Model = m
		return ctx.Err()
	})
	g.Go(func() error {
		img, err := LoadTexture(tex.Metal)
		if err != nil {
			return fmt.Errorf("metal: %w", err)
		}
		s.Metal = img
		return ctx.Err()
	})
	g.Go(func() error {
		img, err := LoadTexture(tex.Ceramic)
		if err != nil {
			return fmt.Errorf("ceramic: %w", err)
		}
		s.Ceramic = img
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
