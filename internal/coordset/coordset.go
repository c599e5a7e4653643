// Package coordset loads and normalizes plain lists of lattice coordinates.
package coordset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/lattice3d/internal/model"
)

// Load reads a YAML (or JSON) file holding a list of coordinates.
// Each element is either a mapping {x, y, z} or a sequence [x, y, z].
func Load(path string) ([]model.Coord3D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading coordinates %s: %w", path, err)
	}

	var cells []model.Coord3D
	if err := yaml.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("parsing coordinates %s: %w", path, err)
	}
	return cells, nil
}

// LoadAll loads files concurrently (at most workers at a time) and
// concatenates the results in the order of paths.
// The first error cancels outstanding loads.
func LoadAll(ctx context.Context, paths []string, workers int) ([]model.Coord3D, error) {
	results := make([][]model.Coord3D, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cells, err := Load(path)
			if err != nil {
				return err
			}
			slog.Debug("coordinates loaded", "path", path, "count", len(cells))
			results[i] = cells
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	all := make([]model.Coord3D, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Wrap returns a new slice with every cell wrapped into extent (toroidal addressing).
// extent components must be positive.
func Wrap(extent model.Coord3D, cells []model.Coord3D) []model.Coord3D {
	out := make([]model.Coord3D, len(cells))
	for i, c := range cells {
		out[i] = c.Mod(extent)
	}
	return out
}

// Partition splits cells into those inside extent and those outside,
// preserving relative order.
func Partition(extent model.Coord3D, cells []model.Coord3D) (in, out []model.Coord3D) {
	for _, c := range cells {
		if c.InRange(extent) {
			in = append(in, c)
		} else {
			out = append(out, c)
		}
	}
	return in, out
}

// SortUnique sorts cells in lexicographic (x, y, z) order and drops duplicates, in place.
// Returns the shortened slice.
func SortUnique(cells []model.Coord3D) []model.Coord3D {
	slices.SortFunc(cells, model.Compare)
	return slices.CompactFunc(cells, model.Coord3D.Equal)
}
