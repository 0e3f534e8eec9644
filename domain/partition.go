package domain

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlset/grid"
)

// Domain is one box of the partition: every node inside Region has
// exactly the level-set ids listed in IDs (sorted ascending).
type Domain struct {
	ID     int
	Region grid.Region
	IDs    []int
}

// Partition maps every node of a geometry to exactly one Domain.
type Partition struct {
	geom    *grid.Geometry
	domains []Domain
	owner   []int // node → domain id
}

// Build groups nodes of img that share an identical id list into boxes.
//
// Boxes are grown greedily from the first unassigned node in raster
// order: the box is extended along dimension 0 as far as the next slab is
// unassigned and carries the same list, then along dimension 1, and so on.
// Lists are normalized (sorted, duplicates removed) before comparison;
// img itself is left untouched.
//
// Complexity: O(N·D) amortized.
func Build(img *grid.Image[[]int]) (*Partition, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	g := img.Geometry()
	n := g.Len()
	lists := make([][]int, n)
	for i, l := range img.Data() {
		lists[i] = normalize(l)
	}

	p := &Partition{geom: g, owner: make([]int, n)}
	for i := range p.owner {
		p.owner[i] = -1
	}

	dim := g.Dim()
	for i := 0; i < n; i++ {
		if p.owner[i] >= 0 {
			continue
		}
		ref := lists[i]
		start := g.Unflat(i)
		size := make([]int, dim)
		for d := range size {
			size[d] = 1
		}
		for d := 0; d < dim; d++ {
			for start[d]+size[d] < g.SizeAt(d) {
				slab := grid.Region{Start: slices.Clone(start), Size: slices.Clone(size)}
				slab.Start[d] += size[d]
				slab.Size[d] = 1
				ok := true
				g.Each(slab, func(j int) {
					if ok && (p.owner[j] >= 0 || !slices.Equal(lists[j], ref)) {
						ok = false
					}
				})
				if !ok {
					break
				}
				size[d]++
			}
		}

		id := len(p.domains)
		r := grid.Region{Start: start, Size: size}
		g.Each(r, func(j int) { p.owner[j] = id })
		p.domains = append(p.domains, Domain{ID: id, Region: r, IDs: ref})
	}

	return p, nil
}

// Geometry returns the partitioned geometry.
func (p *Partition) Geometry() *grid.Geometry { return p.geom }

// Len returns the number of domains.
func (p *Partition) Len() int { return len(p.domains) }

// Domains returns the domains ordered by ID. The slice is shared; do not modify.
func (p *Partition) Domains() []Domain { return p.domains }

// DomainAt returns the domain owning flat offset i.
func (p *Partition) DomainAt(i int) (Domain, error) {
	if i < 0 || i >= len(p.owner) {
		return Domain{}, fmt.Errorf("DomainAt(%d): %w", i, ErrUnknownNode)
	}

	return p.domains[p.owner[i]], nil
}

// IDsAt returns the level-set ids active at flat offset i, or nil when i
// is outside the partition.
func (p *Partition) IDsAt(i int) []int {
	if i < 0 || i >= len(p.owner) {
		return nil
	}

	return p.domains[p.owner[i]].IDs
}

// normalize returns a sorted copy of l without duplicates; nil stays nil.
func normalize(l []int) []int {
	if len(l) == 0 {
		return nil
	}
	out := slices.Clone(l)
	slices.Sort(out)

	return slices.Compact(out)
}
