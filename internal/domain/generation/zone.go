package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

// Phase is a step of filling a zone. Phases run strictly in order.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseInitTerrain
	PhaseInitFreeTiles
	PhaseFractalize
	PhasePlaceCities
	PhasePlaceMerchants
	PhasePlaceMages
	PhasePlaceMercenaries
	PhasePlaceTrainers
	PhasePlaceMarkets
	PhasePlaceRuins
	PhasePlaceMines
	PhaseCreateRequiredObjects
	PhasePlaceStacks
	PhasePlaceBags
)

var phaseNames = [...]string{
	"none",
	"init terrain",
	"init free tiles",
	"fractalize",
	"place cities",
	"place merchants",
	"place mages",
	"place mercenaries",
	"place trainers",
	"place markets",
	"place ruins",
	"place mines",
	"create required objects",
	"place stacks",
	"place bags",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// objectPlacement is an object waiting in a zone backlog together with the
// decoration drawn around it once placed.
type objectPlacement struct {
	obj        world.Placeable
	area       world.Position
	decoration decoration
}

// Zone is the working state of one template zone.
type Zone struct {
	ID      int
	Options template.ZoneOptions

	g      *Generator
	center template.Center
	pos    world.Position
	owner  *world.Player

	tiles     []world.Position
	possible  mapset.Set[world.Position]
	freePaths mapset.Set[world.Position]
	roadNodes mapset.Set[world.Position]
	roads     []world.RoadInfo

	required    []objectPlacement
	close       []objectPlacement
	decorations []decoration

	phase Phase
}

func newZone(g *Generator, opts template.ZoneOptions) *Zone {
	return &Zone{
		ID:        opts.ID,
		Options:   opts,
		g:         g,
		pos:       world.InvalidPosition,
		possible:  mapset.New[world.Position](),
		freePaths: mapset.New[world.Position](),
		roadNodes: mapset.New[world.Position](),
	}
}

func (z *Zone) Position() world.Position { return z.pos }

// Tiles returns the zone tiles ordered by column, then row.
func (z *Zone) Tiles() []world.Position {
	return append([]world.Position(nil), z.tiles...)
}

func (z *Zone) Phase() Phase { return z.phase }

func (z *Zone) Roads() []world.RoadInfo { return z.roads }

func (z *Zone) RoadNodes() []world.Position { return sortedSet(z.roadNodes) }

func (z *Zone) FreePaths() []world.Position { return sortedSet(z.freePaths) }

func (z *Zone) addTile(p world.Position) {
	z.tiles = append(z.tiles, p)
	z.possible.Put(p)
	z.g.occ.setZoneID(p, z.ID)
}

func (z *Zone) contains(p world.Position) bool {
	return z.g.occ.ZoneID(p) == z.ID
}

// enter moves the zone to the next phase. Skipping or repeating a phase is
// an error.
func (z *Zone) enter(p Phase) error {
	if p != z.phase+1 {
		return fmt.Errorf("%w: zone %d is at %q, cannot enter %q", ErrPhaseOrder, z.ID, z.phase, p)
	}
	z.phase = p
	return nil
}

type zoneStep struct {
	phase Phase
	run   func() error
}

func noErr(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

func (z *Zone) steps() []zoneStep {
	return []zoneStep{
		{PhaseInitTerrain, noErr(z.initTerrain)},
		{PhaseInitFreeTiles, noErr(z.initFreeTiles)},
		{PhaseFractalize, noErr(z.fractalize)},
		{PhasePlaceCities, z.placeCities},
		{PhasePlaceMerchants, z.placeMerchants},
		{PhasePlaceMages, z.placeMages},
		{PhasePlaceMercenaries, z.placeMercenaries},
		{PhasePlaceTrainers, z.placeTrainers},
		{PhasePlaceMarkets, z.placeMarkets},
		{PhasePlaceRuins, z.placeRuins},
		{PhasePlaceMines, z.placeMines},
		{PhaseCreateRequiredObjects, z.createRequiredObjects},
		{PhasePlaceStacks, z.placeStacks},
		{PhasePlaceBags, z.placeBags},
	}
}

// fill runs the zone phases from terrain to bags.
func (z *Zone) fill() error {
	for _, s := range z.steps() {
		if err := z.enter(s.phase); err != nil {
			return err
		}
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.phase, err)
		}
	}
	z.g.log.Info("zone filled", "zone", z.ID, "type", z.Options.Type, "objects", z.g.Map.ObjectCount())
	return nil
}

func (z *Zone) initTerrain() {
	if z.Options.Type == template.ZoneWater {
		z.g.Map.Grid.PaintAll(z.tiles, world.TerrainNeutral, world.GroundWater)
		return
	}
	if z.Options.Type.IsStart() {
		if info, err := z.g.cat.Race(z.Options.PlayerRace); err == nil {
			z.g.Map.Grid.PaintAll(z.tiles, info.Terrain, world.GroundPlain)
			return
		}
	}
	z.g.Map.Grid.PaintAll(z.tiles, world.TerrainNeutral, world.GroundPlain)
}

func (z *Zone) initFreeTiles() {
	z.possible = mapset.New[world.Position]()
	for _, t := range z.tiles {
		if z.g.occ.IsPossible(t) {
			z.possible.Put(t)
		}
	}
	if z.freePaths.Size() == 0 {
		z.addFreePath(z.pos)
	}
}

func (z *Zone) addFreePath(p world.Position) {
	z.g.occ.SetOccupied(p, TileFree)
	z.freePaths.Put(p)
}

// updateDistances lowers the nearest object distance of every possible tile.
func (z *Zone) updateDistances(p world.Position) {
	occ := z.g.occ
	z.possible.Each(func(t world.Position) {
		d := float64(p.DistanceSquared(t))
		if d < occ.NearestObjectDistance(t) {
			occ.SetNearestObjectDistance(t, d)
		}
	})
}

// clearEntrance frees the tiles around a fortification entrance.
func (z *Zone) clearEntrance(f *world.Fortification) {
	entrance := f.MapElement.Entrance().Add(world.Pos(1, 1))
	z.g.Map.Grid.ForEachNeighbor(entrance, func(p world.Position) {
		if z.contains(p) && !f.MapElement.IsBlockedPosition(p) && p != f.MapElement.Entrance() {
			z.g.occ.SetOccupied(p, TileFree)
		}
	})
}

// initTowns puts the capital of a start zone, or the first city of any
// other zone, at the zone center and moves the center below its entrance.
func (z *Zone) initTowns() error {
	if z.Options.Type == template.ZoneWater {
		return nil
	}
	if z.Options.Type.IsStart() {
		fort, err := z.placeCapital()
		if err != nil {
			return err
		}
		z.pos = fort.MapElement.Entrance().Add(world.Pos(1, 1))
		return nil
	}
	if len(z.Options.Cities) == 0 {
		return nil
	}
	fort, err := z.placeCity(z.pos.Sub(world.Pos(2, 2)), z.Options.Cities[0])
	if err != nil {
		return err
	}
	z.pos = fort.MapElement.Entrance().Add(world.Pos(1, 1))
	return nil
}

func sortedSet(s mapset.Set[world.Position]) []world.Position {
	out := make([]world.Position, 0, s.Size())
	s.Each(func(p world.Position) { out = append(out, p) })
	world.SortPositions(out)
	return out
}
