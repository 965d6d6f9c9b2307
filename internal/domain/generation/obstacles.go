package generation

import (
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/world"
)

// mountainLandmarkChance is the percent chance a 3x3 or 5x5 mountain is
// drawn as a mountain landmark instead.
const mountainLandmarkChance = 10

// createObstacles decorates placed objects, covers tiles waiting for
// obstacles with mountains and turns the rest into forest or free land.
func (z *Zone) createObstacles() error {
	g := z.g
	if err := g.checkAccess(); err != nil {
		return err
	}
	for _, d := range z.decorations {
		if err := z.decorate(d); err != nil {
			return err
		}
	}
	if err := g.checkAccess(); err != nil {
		return err
	}

	sizes, bySize := g.cat.MountainsBySize()
	occ := g.occ
	for _, t := range z.tiles {
		if !occ.ShouldBeBlocked(t) {
			continue
		}
		for _, size := range sizes {
			m := rng.Element(g.rand, bySize[size])
			e := world.NewMapElement(world.Pos(size, size))
			if !z.canObstacleBePlacedHere(e, t) {
				continue
			}
			if err := z.placeObstacle(t, size, m.Image, m.Race); err != nil {
				return err
			}
			break
		}
	}
	if err := g.checkAccess(); err != nil {
		return err
	}

	forest := g.tmpl.Settings.Forest
	for _, t := range z.tiles {
		if !occ.IsPossible(t) {
			continue
		}
		if forest == 0 || g.Map.Grid.IsRoad(t) {
			occ.SetOccupied(t, TileFree)
			continue
		}
		if forest == 100 || g.rand.Chance(forest) {
			occ.SetOccupied(t, TileUsed)
			g.Map.Grid.Paint(t, world.TerrainNeutral, world.GroundForest)
			g.Map.Grid.Tile(t).TreeImage = g.rand.IntRange(0, treeImages-1)
			continue
		}
		occ.SetOccupied(t, TileFree)
	}
	return nil
}

// placeObstacle covers a size x size square with a mountain, or sometimes
// with a mountain landmark of the same size.
func (z *Zone) placeObstacle(pos world.Position, size int, image int, race world.Race) error {
	g := z.g
	if (size == 3 || size == 5) && g.rand.Chance(mountainLandmarkChance) {
		if landmarks := g.cat.MountainLandmarks(size); len(landmarks) > 0 {
			info := rng.Element(g.rand, landmarks)
			lm := &world.Landmark{
				ID:         g.Map.CreateID(world.ObjectLandmark),
				MapElement: world.NewMapElement(info.Size),
				TypeID:     info.ID,
			}
			return z.placeObject(lm, pos)
		}
	}
	return z.placeMountain(pos, size, world.Mountain{Image: image, Race: race})
}
