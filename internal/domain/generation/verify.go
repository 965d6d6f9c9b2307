package generation

import (
	"scenariogen/internal/domain/world"
)

// checkAccess fails when some fortification, ruin or site cannot be
// entered from any side. It only runs when enabled in the config.
func (g *Generator) checkAccess() error {
	if !g.cfg.VerifyAccess {
		return nil
	}
	for _, kind := range []world.ObjectType{world.ObjectFortification, world.ObjectRuin, world.ObjectSite} {
		for _, obj := range g.Map.Objects() {
			if obj.ObjectType() != kind {
				continue
			}
			p, ok := obj.(world.Placeable)
			if !ok {
				continue
			}
			e := *p.Element()
			if g.isEntranceBlocked(e) {
				return &EntranceBlockedError{
					ObjectID: obj.ObjectID(),
					Kind:     kind,
					Position: e.Position,
					Seed:     g.Map.Seed,
				}
			}
		}
	}
	return nil
}

func (g *Generator) isEntranceBlocked(e world.MapElement) bool {
	entrance := e.Entrance()
	for _, o := range e.EntranceOffsets() {
		if !g.isTileBlocked(entrance.Add(o)) {
			return false
		}
	}
	return true
}

// isTileBlocked treats roads and forests as passable for the access check.
func (g *Generator) isTileBlocked(p world.Position) bool {
	grid := g.Map.Grid
	if !grid.InBounds(p) {
		return true
	}
	if g.occ.ShouldBeBlocked(p) {
		return true
	}
	if grid.IsRoad(p) {
		return false
	}
	return g.occ.IsUsed(p) && grid.Tile(p).Ground != world.GroundForest
}
