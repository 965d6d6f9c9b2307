package generation

import (
	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/world"
)

const treeImages = 20

// decoration draws landmarks and forests around a placed object.
type decoration interface {
	area(z *Zone) mapset.Set[world.Position]
	landmarkFilters() []catalog.LandmarkFilter
	minLandmarkDistance(lm *catalog.LandmarkInfo) int
	landmarksRace() world.Race
	landmarksTerrain() world.Terrain
	forestsTerrain() world.Terrain
	forestsFirst() bool
}

// baseDecoration shares the element of the decorated object.
type baseDecoration struct {
	element *world.MapElement
	gap     int
}

func (d baseDecoration) area(z *Zone) mapset.Set[world.Position] {
	return z.elementArea(*d.element, d.gap, d.gap)
}

func (baseDecoration) landmarkFilters() []catalog.LandmarkFilter { return nil }

func (baseDecoration) minLandmarkDistance(lm *catalog.LandmarkInfo) int { return lm.Size.X * 2 }

func (baseDecoration) landmarksRace() world.Race       { return world.RaceNeutral }
func (baseDecoration) landmarksTerrain() world.Terrain { return world.TerrainNeutral }
func (baseDecoration) forestsTerrain() world.Terrain   { return world.TerrainNeutral }
func (baseDecoration) forestsFirst() bool              { return false }

func notMountain(lm *catalog.LandmarkInfo) bool { return lm.Mountain }

type capitalDecoration struct {
	baseDecoration
	race    world.Race
	terrain world.Terrain
}

func newCapitalDecoration(f *world.Fortification, race world.Race, terrain world.Terrain) *capitalDecoration {
	return &capitalDecoration{
		baseDecoration: baseDecoration{element: &f.MapElement, gap: 3},
		race:           race,
		terrain:        terrain,
	}
}

func (d *capitalDecoration) landmarkFilters() []catalog.LandmarkFilter {
	return []catalog.LandmarkFilter{
		func(lm *catalog.LandmarkInfo) bool { return lm.Size.X >= capitalSize.X },
		notMountain,
	}
}

func (d *capitalDecoration) landmarksRace() world.Race       { return d.race }
func (d *capitalDecoration) landmarksTerrain() world.Terrain { return d.terrain }
func (d *capitalDecoration) forestsTerrain() world.Terrain   { return d.terrain }

type villageDecoration struct {
	baseDecoration
	tier int
}

func newVillageDecoration(f *world.Fortification) *villageDecoration {
	return &villageDecoration{
		baseDecoration: baseDecoration{element: &f.MapElement, gap: 4},
		tier:           f.Tier,
	}
}

func (d *villageDecoration) landmarkFilters() []catalog.LandmarkFilter {
	return []catalog.LandmarkFilter{
		func(lm *catalog.LandmarkInfo) bool { return lm.Size.X > 4 },
		notMountain,
		func(lm *catalog.LandmarkInfo) bool { return d.tier >= 3 && lm.Type == catalog.LandmarkMisc },
	}
}

func (d *villageDecoration) minLandmarkDistance(lm *catalog.LandmarkInfo) int { return lm.Size.X * 3 }

type siteDecoration struct{ baseDecoration }

func newSiteDecoration(s *world.Site) *siteDecoration {
	return &siteDecoration{baseDecoration{element: &s.MapElement, gap: 3}}
}

func (d *siteDecoration) landmarkFilters() []catalog.LandmarkFilter {
	return []catalog.LandmarkFilter{
		func(lm *catalog.LandmarkInfo) bool { return lm.Size.X > 3 },
	}
}

func (d *siteDecoration) minLandmarkDistance(lm *catalog.LandmarkInfo) int { return lm.Size.X * 3 }

type ruinDecoration struct{ baseDecoration }

func newRuinDecoration(r *world.Ruin) *ruinDecoration {
	return &ruinDecoration{baseDecoration{element: &r.MapElement, gap: 4}}
}

func (d *ruinDecoration) minLandmarkDistance(lm *catalog.LandmarkInfo) int { return lm.Size.X * 3 }

// crystalDecoration plants forests before landmarks so that trees crowd the
// crystal. Captured crystals are painted with the owner terrain.
type crystalDecoration struct {
	baseDecoration
	terrain world.Terrain
}

func newCrystalDecoration(c *world.Crystal) *crystalDecoration {
	return newCapturedCrystalDecoration(c, world.TerrainNeutral)
}

func newCapturedCrystalDecoration(c *world.Crystal, terrain world.Terrain) *crystalDecoration {
	return &crystalDecoration{
		baseDecoration: baseDecoration{element: &c.MapElement, gap: 1},
		terrain:        terrain,
	}
}

func (d *crystalDecoration) landmarkFilters() []catalog.LandmarkFilter {
	return []catalog.LandmarkFilter{
		func(lm *catalog.LandmarkInfo) bool { return lm.Size.X > 1 },
		notMountain,
	}
}

func (d *crystalDecoration) landmarksTerrain() world.Terrain { return d.terrain }
func (d *crystalDecoration) forestsTerrain() world.Terrain   { return d.terrain }
func (d *crystalDecoration) forestsFirst() bool              { return true }

// elementArea collects possible tiles in a frame of gapX by gapY tiles
// around e, skipping its footprint and the tiles in front of its entrance.
func (z *Zone) elementArea(e world.MapElement, gapX, gapY int) mapset.Set[world.Position] {
	grid := z.g.Map.Grid
	excluded := mapset.New[world.Position]()
	for _, p := range e.BlockedPositions() {
		excluded.Put(p)
	}
	entrance := e.Entrance()
	excluded.Put(entrance)
	for _, o := range e.EntranceOffsets() {
		excluded.Put(entrance.Add(o))
	}

	area := mapset.New[world.Position]()
	start := e.Position
	end := e.Position.Add(e.Size)
	for x := start.X - gapX; x < end.X+gapX; x++ {
		for y := start.Y - gapY; y < end.Y+gapY; y++ {
			p := world.Pos(x, y)
			if excluded.Has(p) || !grid.InBounds(p) || !z.g.occ.IsPossible(p) {
				continue
			}
			area.Put(p)
		}
	}
	return area
}

func (z *Zone) decorate(d decoration) error {
	area := d.area(z)
	if area.Size() == 0 {
		return nil
	}
	if d.forestsFirst() {
		z.placeForests(d, area, true)
		if area.Size() == 0 {
			return nil
		}
		return z.placeLandmarks(d, area)
	}
	if err := z.placeLandmarks(d, area); err != nil {
		return err
	}
	if area.Size() == 0 {
		return nil
	}
	z.placeForests(d, area, false)
	return nil
}

func (z *Zone) placeLandmarks(d decoration, area mapset.Set[world.Position]) error {
	g := z.g
	total := rng.Pick(g.rand, g.cfg.Landmarks)
	filters := d.landmarkFilters()
	for i := 0; i < total; i++ {
		landmarks := g.cat.Landmarks(d.landmarksRace(), filters...)
		if len(landmarks) == 0 {
			break
		}
		info := rng.Element(g.rand, landmarks)
		e := world.NewMapElement(info.Size)
		pos, ok := z.findPlaceForObject(sortedSet(area), e, d.minLandmarkDistance(info), false)
		if !ok {
			continue
		}
		lm := &world.Landmark{
			ID:         g.Map.CreateID(world.ObjectLandmark),
			MapElement: e,
			TypeID:     info.ID,
		}
		if err := z.placeObject(lm, pos); err != nil {
			return err
		}
		tiles := append(lm.MapElement.BlockedPositions(), lm.MapElement.Entrance())
		g.Map.Grid.PaintAll(tiles, d.landmarksTerrain(), world.GroundPlain)
		for _, t := range tiles {
			area.Remove(t)
		}
	}
	return nil
}

func (z *Zone) placeForests(d decoration, area mapset.Set[world.Position], consume bool) {
	g := z.g
	total := rng.Pick(g.rand, g.cfg.Forests)
	tiles := sortedSet(area)
	rng.Shuffle(g.rand, tiles)
	for i := 0; i < total && i < len(tiles); i++ {
		t := tiles[i]
		g.Map.Grid.Paint(t, d.forestsTerrain(), world.GroundForest)
		g.Map.Grid.Tile(t).TreeImage = g.rand.IntRange(0, treeImages-1)
		g.occ.SetOccupied(t, TileUsed)
		if consume {
			area.Remove(t)
		}
	}
}
