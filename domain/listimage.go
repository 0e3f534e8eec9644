package domain

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlset/grid"
)

// ListImageFromRegions builds an id-list image over g where every node
// lists the ids whose region contains it. Regions are cropped to g; ids
// are appended in ascending order so the result is already normalized.
func ListImageFromRegions(g *grid.Geometry, regions map[int]grid.Region) (*grid.Image[[]int], error) {
	ids := make([]int, 0, len(regions))
	for id := range regions {
		if id < 0 {
			return nil, fmt.Errorf("ListImageFromRegions(id=%d): %w", id, ErrUnknownLevelSet)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	img := grid.NewImage[[]int](g)
	data := img.Data()
	for _, id := range ids {
		r, err := g.Crop(regions[id])
		if err != nil {
			return nil, fmt.Errorf("ListImageFromRegions(id=%d): %w", id, err)
		}
		g.Each(r, func(i int) { data[i] = append(data[i], id) })
	}

	return img, nil
}
