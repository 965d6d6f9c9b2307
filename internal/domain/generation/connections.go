package generation

import (
	"fmt"

	"scenariogen/internal/domain/world"
)

// createConnections opens a passage for every template connection. The
// passage tile lies on the border of the first zone, next to the second
// one, as close as possible to the midpoint of the two centers. Both sides
// are linked to their zone centers, the passage gets an optional guard and
// becomes a road node of both zones.
func (g *Generator) createConnections() error {
	for _, c := range g.tmpl.Connections {
		from, to := g.zoneByID[c.From], g.zoneByID[c.To]
		guardPos, otherPos, ok := g.passage(from, to)
		if !ok {
			g.log.Warn("zones are not adjacent", "from", c.From, "to", c.To)
			continue
		}

		from.addFreePath(guardPos)
		to.addFreePath(otherPos)
		if c.Size > 0 {
			from.widenPassage(guardPos)
			to.widenPassage(otherPos)
		}
		if !from.connectWithCenter(guardPos, true, true) {
			g.log.Warn("passage not linked to zone center", "zone", from.ID, "position", guardPos)
		}
		if !to.connectWithCenter(otherPos, true, true) {
			g.log.Warn("passage not linked to zone center", "zone", to.ID, "position", otherPos)
		}

		if err := from.placeZoneGuard(guardPos, c.Guard); err != nil {
			return fmt.Errorf("connection %d-%d: %w", c.From, c.To, err)
		}
		from.roadNodes.Put(guardPos)
		to.roadNodes.Put(guardPos)
		g.log.Debug("zones connected", "from", c.From, "to", c.To, "position", guardPos)
	}
	return nil
}

// passage returns a border tile of a touching b and its neighbour in b.
func (g *Generator) passage(a, b *Zone) (world.Position, world.Position, bool) {
	grid := g.Map.Grid
	occ := g.occ
	mid := world.Pos((a.pos.X+b.pos.X)/2, (a.pos.Y+b.pos.Y)/2)

	best := -1
	guard, other := world.InvalidPosition, world.InvalidPosition
	for _, t := range a.tiles {
		if grid.AtBorder(t) || !occ.IsPossible(t) {
			continue
		}
		n := world.InvalidPosition
		grid.ForEachDirectNeighbor(t, func(p world.Position) {
			if !n.Valid() && b.contains(p) && occ.IsPossible(p) && !grid.AtBorder(p) {
				n = p
			}
		})
		if !n.Valid() {
			continue
		}
		if d := t.DistanceSquared(mid); best < 0 || d < best {
			best = d
			guard, other = t, n
		}
	}
	return guard, other, guard.Valid()
}

// widenPassage frees the straight neighbours of a passage tile inside the
// zone.
func (z *Zone) widenPassage(p world.Position) {
	z.g.Map.Grid.ForEachDirectNeighbor(p, func(n world.Position) {
		if z.contains(n) && z.g.occ.IsPossible(n) && !z.g.Map.Grid.AtBorder(n) {
			z.addFreePath(n)
		}
	})
}
