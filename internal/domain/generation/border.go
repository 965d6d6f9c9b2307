package generation

import (
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

// createBorder applies the zone border policy to still possible tiles that
// touch another zone.
func (z *Zone) createBorder() {
	occ := z.g.occ
	grid := z.g.Map.Grid
	border := z.Options.Border
	gap := z.Options.Gap()

	changed := 0
	for _, t := range z.tiles {
		if !occ.IsPossible(t) || !z.isBorderTile(t) {
			continue
		}
		switch border {
		case template.BorderWater:
			grid.Paint(t, world.TerrainNeutral, world.GroundWater)
			occ.SetOccupied(t, TileFree)
		case template.BorderOpen:
			occ.SetOccupied(t, TileFree)
		case template.BorderSemiOpen:
			if z.g.rand.Chance(gap) {
				occ.SetOccupied(t, TileFree)
			} else {
				occ.SetOccupied(t, TileBlocked)
			}
		default:
			occ.SetOccupied(t, TileBlocked)
		}
		changed++
	}
	z.g.log.Debug("zone border created", "zone", z.ID, "border", border, "tiles", changed)
}

func (z *Zone) isBorderTile(t world.Position) bool {
	border := false
	z.g.Map.Grid.ForEachNeighbor(t, func(n world.Position) {
		if !z.contains(n) {
			border = true
		}
	})
	return border
}
