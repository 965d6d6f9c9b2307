package generation

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

// blockDistance is the squared distance from free paths past which
// possible tiles are left for obstacles.
const blockDistance = 18.75

// fractalize grows a network of free paths over the zone. Nodes are spread
// at least the configured squared distance apart, each linked to the
// existing paths and its two nearest nodes. Tiles far from every path are
// marked for obstacles.
func (z *Zone) fractalize() {
	occ := z.g.occ
	for _, t := range z.tiles {
		if occ.IsFree(t) {
			z.freePaths.Put(t)
		}
	}
	cleared := sortedSet(z.freePaths)
	possible := mapset.New[world.Position]()
	for _, t := range z.tiles {
		if occ.IsPossible(t) {
			possible.Put(t)
		}
	}

	minDistance := z.g.cfg.FractalMinDistance
	var nodes []world.Position
	if z.Options.Type != template.ZoneJunction {
		for possible.Size() > 0 {
			ignored := mapset.New[world.Position]()
			candidates := sortedSet(possible)
			rng.Shuffle(z.g.rand, candidates)

			found := world.InvalidPosition
			for _, t := range candidates {
				current := 1e10
				for _, c := range cleared {
					d := float64(t.DistanceSquared(c))
					if d < current {
						current = d
					}
					if current <= minDistance {
						ignored.Put(t)
						break
					}
				}
				if current > minDistance {
					found = t
					nodes = append(nodes, t)
					cleared = append(cleared, t)
					break
				}
			}
			ignored.Each(possible.Remove)
			if !found.Valid() {
				break
			}
		}
	}

	for _, node := range nodes {
		subnodes := append([]world.Position(nil), nodes...)
		sort.SliceStable(subnodes, func(i, j int) bool {
			return node.DistanceSquared(subnodes[i]) < node.DistanceSquared(subnodes[j])
		})
		z.crunchPath(node, closestTile(sortedSet(z.freePaths), node), true, &z.freePaths)
		for i := 1; i <= 2 && i < len(subnodes); i++ {
			z.crunchPath(node, subnodes[i], true, &z.freePaths)
		}
	}
	for _, node := range nodes {
		occ.SetOccupied(node, TileFree)
	}

	z.blockFarTiles()
	z.g.log.Debug("zone fractalized", "zone", z.ID, "nodes", len(nodes), "free paths", z.freePaths.Size())
}

// blockFarTiles marks possible tiles farther than blockDistance from any
// free path as waiting for obstacles.
func (z *Zone) blockFarTiles() {
	occ := z.g.occ
	grid := z.g.Map.Grid
	const r = 4 // largest offset with r*r < blockDistance
	for _, t := range z.tiles {
		if !occ.IsPossible(t) || z.freePaths.Has(t) {
			continue
		}
		near := false
		for dx := -r; dx <= r && !near; dx++ {
			for dy := -r; dy <= r; dy++ {
				p := t.Add(world.Pos(dx, dy))
				if float64(dx*dx+dy*dy) < blockDistance && grid.InBounds(p) && z.freePaths.Has(p) {
					near = true
					break
				}
			}
		}
		if !near {
			occ.SetOccupied(t, TileBlocked)
		}
	}
}

// closestTile returns the tile nearest to p; the first one wins ties.
func closestTile(tiles []world.Position, p world.Position) world.Position {
	result := world.InvalidPosition
	best := -1
	for _, t := range tiles {
		if d := t.DistanceSquared(p); best < 0 || d < best {
			best = d
			result = t
		}
	}
	return result
}
