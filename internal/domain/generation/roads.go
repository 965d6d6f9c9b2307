package generation

import (
	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/world"
)

// connectRoads links every road node of the zone. Each node is joined to
// the nearest node already processed, or to the nearest pending one while
// nothing is processed yet.
func (z *Zone) connectRoads() {
	pending := z.RoadNodes()
	processed := mapset.New[world.Position]()

	for len(pending) > 0 {
		node := pending[0]
		pending = pending[1:]

		candidates := pending
		if processed.Size() > 0 {
			candidates = sortedSet(processed)
		}
		if len(candidates) == 0 {
			break
		}
		cross := closestTile(candidates, node)
		if z.createRoad(node, cross) {
			processed.Put(cross)
			pending = removePosition(pending, cross)
		}
		processed.Put(node)
	}
	z.g.log.Debug("zone roads connected", "zone", z.ID, "nodes", z.roadNodes.Size(), "roads", len(z.roads))
}

func removePosition(ps []world.Position, p world.Position) []world.Position {
	for i, q := range ps {
		if q == p {
			return append(ps[:i:i], ps[i+1:]...)
		}
	}
	return ps
}
