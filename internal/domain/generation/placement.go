package generation

import (
	"math"
	"sort"

	"scenariogen/internal/domain/world"
)

type placeResult int

const (
	placeSuccess placeResult = iota
	placeCannotFit
	placeSealedOff
)

func (r placeResult) String() string {
	switch r {
	case placeSuccess:
		return "success"
	case placeCannotFit:
		return "cannot fit"
	default:
		return "sealed off"
	}
}

// findPlaceForObject returns the admissible tile of area farthest from
// every placed object, at least minDistance away. Distances are squared.
func (z *Zone) findPlaceForObject(area []world.Position, e world.MapElement, minDistance int, findAccessible bool) (world.Position, bool) {
	occ := z.g.occ
	grid := z.g.Map.Grid
	blocked := e.BlockedOffsets()

	best := 0.0
	result := world.InvalidPosition
	for _, tile := range area {
		if grid.ElementAtBorder(e, tile) {
			continue
		}
		if findAccessible {
			if !z.accessibleOffset(e, tile).Valid() || !z.entranceAccessible(e, tile) {
				continue
			}
		}
		if !occ.IsPossible(tile) {
			continue
		}
		d := occ.NearestObjectDistance(tile)
		if d >= float64(minDistance) && d > best && z.allTilesAvailable(e, tile, blocked) {
			best = d
			result = tile
		}
	}
	return result, result.Valid()
}

// accessibleOffset returns a tile next to the entrance of e placed at pos
// from which e can be visited. The last matching tile of the scan wins.
func (z *Zone) accessibleOffset(e world.MapElement, pos world.Position) world.Position {
	occ := z.g.occ
	grid := z.g.Map.Grid
	e.Position = pos
	entrance := e.EntranceOffset()

	result := world.InvalidPosition
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			if x == 0 && y == 0 {
				continue
			}
			dir := world.Pos(x, y)
			offset := dir.Add(entrance)
			if e.IsBlockedPosition(pos.Add(offset)) {
				continue
			}
			nearby := pos.Add(offset)
			if !grid.InBounds(nearby) {
				continue
			}
			if e.IsVisitableFrom(dir) && !occ.IsBlocked(nearby) && z.contains(nearby) {
				result = nearby
			}
		}
	}
	return result
}

func (z *Zone) entranceAccessible(e world.MapElement, pos world.Position) bool {
	e.Position = pos
	entrance := e.Entrance()
	for _, d := range e.EntranceOffsets() {
		t := entrance.Add(d)
		if !z.g.Map.Grid.InBounds(t) || z.g.occ.IsBlocked(t) {
			return false
		}
	}
	return true
}

// accessibleTiles lists unblocked tiles from which the placed element can
// be entered.
func (z *Zone) accessibleTiles(e world.MapElement) []world.Position {
	occ := z.g.occ
	entrance := e.Entrance()
	var out []world.Position
	z.g.Map.Grid.ForEachNeighbor(entrance, func(p world.Position) {
		if !occ.IsPossible(p) && !occ.IsFree(p) {
			return
		}
		if e.IsBlockedPosition(p) {
			return
		}
		if e.IsVisitableFrom(p.Sub(entrance)) && !occ.IsBlocked(p) {
			out = append(out, p)
		}
	})
	return out
}

// allTilesAvailable checks the footprint of e at pos: blocked tiles must be
// possible and the entrance must not be taken, all inside the zone.
func (z *Zone) allTilesAvailable(e world.MapElement, pos world.Position, blocked []world.Position) bool {
	occ := z.g.occ
	grid := z.g.Map.Grid
	for _, o := range blocked {
		t := pos.Add(o)
		if !grid.InBounds(t) || !occ.IsPossible(t) || !z.contains(t) {
			return false
		}
	}
	entrance := pos.Add(e.EntranceOffset())
	return grid.InBounds(entrance) && !occ.IsBlocked(entrance) && z.contains(entrance)
}

func (z *Zone) canObstacleBePlacedHere(e world.MapElement, pos world.Position) bool {
	grid := z.g.Map.Grid
	if !grid.InBounds(pos) {
		return false
	}
	// Mountains cover the entrance tile too.
	for _, o := range append(e.BlockedOffsets(), e.EntranceOffset()) {
		t := pos.Add(o)
		if !grid.InBounds(t) || !z.g.occ.ShouldBeBlocked(t) {
			return false
		}
	}
	return true
}

// tryToPlaceObjectAndConnectToPath checks that e placed at pos can be
// reached from the zone's free paths. While probing, the footprint is
// treated as blocked. On success the footprint is reserved.
func (z *Zone) tryToPlaceObjectAndConnectToPath(e *world.MapElement, pos world.Position) placeResult {
	e.Position = pos
	if len(z.accessibleTiles(*e)) == 0 {
		z.g.log.Debug("cannot access object", "zone", z.ID, "position", pos)
		return placeCannotFit
	}
	accessible := z.accessibleOffset(*e, pos)
	if !accessible.Valid() {
		z.g.log.Debug("cannot access object", "zone", z.ID, "position", pos)
		return placeCannotFit
	}

	restore := z.blueprint(pos, e.Size)
	connected := z.connectPath(accessible, true)
	restore()
	if !connected {
		z.g.log.Debug("failed to create path to object", "zone", z.ID, "position", pos)
		return placeSealedOff
	}

	occ := z.g.occ
	occ.SetOccupied(e.Entrance(), TileBlocked)
	for _, p := range e.BlockedPositions() {
		if z.g.Map.Grid.InBounds(p) {
			occ.SetOccupied(p, TileBlocked)
		}
	}
	return placeSuccess
}

// blueprint marks the rectangle blocked and returns a function restoring
// the previous states.
func (z *Zone) blueprint(pos, size world.Position) func() {
	occ := z.g.occ
	grid := z.g.Map.Grid
	type saved struct {
		pos   world.Position
		state TileState
	}
	var prev []saved
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			p := pos.Add(world.Pos(x, y))
			if !grid.InBounds(p) {
				continue
			}
			prev = append(prev, saved{p, occ.State(p)})
			occ.SetOccupied(p, TileBlocked)
		}
	}
	return func() {
		for _, s := range prev {
			occ.SetOccupied(s.pos, s.state)
		}
	}
}

// findAndConnect finds the best spot for an object of the given size and
// reserves it once it is reachable.
func (z *Zone) findAndConnect(size world.Position, minDistance int, category string) (world.Position, error) {
	e := world.NewMapElement(size)
	for {
		pos, ok := z.findPlaceForObject(z.tiles, e, minDistance, true)
		if !ok {
			return world.InvalidPosition, lackOfSpace(z.ID, category)
		}
		if z.tryToPlaceObjectAndConnectToPath(&e, pos) == placeSuccess {
			return pos, nil
		}
	}
}

// placeObject puts obj at pos: its footprint becomes used, distances are
// updated and the object is registered on the map.
func (z *Zone) placeObject(obj world.Placeable, pos world.Position) error {
	grid := z.g.Map.Grid
	e := obj.Element()
	if !grid.InBounds(pos) {
		return &GeometryError{ObjectID: obj.ObjectID(), Position: pos, Point: pos}
	}
	e.Position = pos
	entrance := e.Entrance()
	if !grid.InBounds(entrance) {
		return &GeometryError{ObjectID: obj.ObjectID(), Position: pos, Point: entrance}
	}
	for _, p := range e.BlockedPositions() {
		if !grid.InBounds(p) {
			return &GeometryError{ObjectID: obj.ObjectID(), Position: pos, Point: p}
		}
		z.g.occ.SetOccupied(p, TileUsed)
	}
	z.g.occ.SetOccupied(entrance, TileUsed)
	z.updateDistances(pos)

	switch obj.ObjectType() {
	case world.ObjectFortification, world.ObjectSite:
		z.roadNodes.Put(entrance)
	}
	visitable := obj.ObjectType() != world.ObjectLandmark
	if err := z.g.Map.InsertMapElement(obj, visitable); err != nil {
		return err
	}
	z.g.log.Debug("object placed", "zone", z.ID, "id", obj.ObjectID(), "position", pos)
	return nil
}

// placeFortification places f and paints its footprint with terrain. Tiles
// selected by the gap mask stay passable.
func (z *Zone) placeFortification(f *world.Fortification, pos world.Position, terrain world.Terrain) error {
	if err := z.placeObject(f, pos); err != nil {
		return err
	}
	grid := z.g.Map.Grid
	grid.PaintAll(f.MapElement.BlockedPositions(), terrain, world.GroundPlain)
	grid.Paint(f.MapElement.Entrance(), terrain, world.GroundPlain)
	for _, p := range f.MapElement.GapPositions(f.GapMask) {
		if grid.InBounds(p) && !z.g.occ.IsBlocked(p) {
			z.g.occ.SetOccupied(p, TileFree)
		}
	}
	return nil
}

// placeInside registers a stack visiting a fortification. It shares the
// fortification position and takes no tiles of its own.
func (z *Zone) placeInside(s *world.Stack, f *world.Fortification) error {
	s.Inside = f.ID
	s.MapElement.Position = f.MapElement.Position
	return z.g.Map.Insert(s)
}

func (z *Zone) placeMountain(pos world.Position, size int, m world.Mountain) error {
	grid := z.g.Map.Grid
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := pos.Add(world.Pos(x, y))
			if !grid.InBounds(p) {
				return &GeometryError{ObjectID: "mountain", Position: pos, Point: p}
			}
			z.g.occ.SetOccupied(p, TileUsed)
			grid.Paint(p, world.TerrainNeutral, world.GroundMountain)
		}
	}
	m.Position = pos
	m.Size = world.Pos(size, size)
	z.g.Map.AddMountain(m)
	return nil
}

func (z *Zone) addRequiredObject(obj world.Placeable, d decoration, area world.Position) {
	z.required = append(z.required, objectPlacement{obj: obj, area: area, decoration: d})
}

func (z *Zone) addCloseObject(obj world.Placeable, d decoration, area world.Position) {
	z.close = append(z.close, objectPlacement{obj: obj, area: area, decoration: d})
}

// createRequiredObjects places the zone backlog. Required objects go as far
// from others as possible; close objects gather around the zone center.
func (z *Zone) createRequiredObjects() error {
	for _, r := range z.required {
		if err := z.placeRequired(r); err != nil {
			return err
		}
	}
	for _, c := range z.close {
		if err := z.placeClose(c); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zone) searchElement(r objectPlacement) world.MapElement {
	if r.area.X > 0 && r.area.Y > 0 {
		return world.NewMapElement(r.area)
	}
	return *r.obj.Element()
}

func (z *Zone) placeRequired(r objectPlacement) error {
	e := r.obj.Element()
	search := z.searchElement(r)
	pos, ok := z.findPlaceForObject(z.tiles, search, e.Size.X*2, true)
	if !ok {
		return lackOfSpace(z.ID, "required object")
	}
	if r.area.X > 0 && r.area.Y > 0 {
		pos = pos.Add(r.area.Div(2))
	}
	if z.tryToPlaceObjectAndConnectToPath(e, pos) != placeSuccess {
		return lackOfSpace(z.ID, "required object")
	}
	return z.placeBacklogObject(r, pos)
}

func (z *Zone) placeClose(c objectPlacement) error {
	grid := z.g.Map.Grid
	occ := z.g.occ
	search := z.searchElement(c)
	blocked := search.BlockedOffsets()
	target := z.pos

	finished := false
	attempt := true
	for !finished && attempt {
		attempt = false

		var tiles []world.Position
		for _, t := range sortedSet(z.possible) {
			if grid.AtBorder(t) || grid.ElementAtBorder(search, t) || !z.accessibleOffset(search, t).Valid() {
				continue
			}
			tiles = append(tiles, t)
		}
		if len(tiles) == 0 {
			return lackOfSpace(z.ID, "close object")
		}

		scores := make(map[world.Position]float64, len(tiles))
		for _, t := range tiles {
			d := math.MaxFloat64
			for _, o := range blocked {
				d = min(d, o.Add(target).Distance(t))
			}
			if d > 12 {
				d *= 10
			}
			scores[t] = d*0.5 - math.Sqrt(occ.NearestObjectDistance(t))
		}
		sort.SliceStable(tiles, func(i, j int) bool { return scores[tiles[i]] < scores[tiles[j]] })

	scan:
		for _, t := range tiles {
			if !z.allTilesAvailable(search, t, blocked) {
				continue
			}
			attempt = true
			pos := t
			if c.area.X > 0 && c.area.Y > 0 {
				pos = pos.Add(c.area.Div(2))
			}
			switch z.tryToPlaceObjectAndConnectToPath(c.obj.Element(), pos) {
			case placeSuccess:
				if err := z.placeBacklogObject(c, pos); err != nil {
					return err
				}
				finished = true
				break scan
			case placeCannotFit:
				continue
			case placeSealedOff:
				break scan
			}
		}
	}
	if !finished {
		return lackOfSpace(z.ID, "close object")
	}
	return nil
}

func (z *Zone) placeBacklogObject(r objectPlacement, pos world.Position) error {
	if err := z.placeObject(r.obj, pos); err != nil {
		return err
	}
	if r.decoration != nil {
		z.decorations = append(z.decorations, r.decoration)
	}
	return nil
}
