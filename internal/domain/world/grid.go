package world

// Grid is the tile arena shared by every zone of a map. Tiles are addressed
// by index; nothing outside the grid holds tile pointers across calls.
type Grid struct {
	size     int
	tiles    []Tile
	elements map[ObjectID]MapElement
}

func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	tiles := make([]Tile, size*size)
	for i := range tiles {
		tiles[i] = Tile{Terrain: TerrainNeutral, Ground: GroundPlain}
	}
	return &Grid{
		size:     size,
		tiles:    tiles,
		elements: map[ObjectID]MapElement{},
	}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

func (g *Grid) Index(p Position) int {
	return p.Y*g.size + p.X
}

func (g *Grid) PositionAt(index int) Position {
	return Position{X: index % g.size, Y: index / g.size}
}

// Tile returns the tile at p. p must be in bounds.
func (g *Grid) Tile(p Position) *Tile {
	return &g.tiles[g.Index(p)]
}

func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

func (g *Grid) AtBorder(p Position) bool {
	return p.X == 0 || p.X == g.size-1 || p.Y == 0 || p.Y == g.size-1
}

// ElementAtBorder reports whether e placed at p would touch or cross the map border.
func (g *Grid) ElementAtBorder(e MapElement, p Position) bool {
	last := p.Add(e.Size).Sub(Position{X: 1, Y: 1})
	return p.X <= 0 || p.Y <= 0 || last.X >= g.size-1 || last.Y >= g.size-1
}

func (g *Grid) Paint(p Position, terrain Terrain, ground Ground) {
	if !g.InBounds(p) {
		return
	}
	g.Tile(p).SetTerrainGround(terrain, ground)
}

func (g *Grid) PaintAll(ps []Position, terrain Terrain, ground Ground) {
	for _, p := range ps {
		g.Paint(p, terrain, ground)
	}
}

func (g *Grid) SetRoad(p Position, road bool) {
	if g.InBounds(p) {
		g.Tile(p).Road = road
	}
}

func (g *Grid) IsRoad(p Position) bool {
	return g.InBounds(p) && g.Tile(p).Road
}

func (g *Grid) ForEachNeighbor(p Position, fn func(Position)) {
	for _, d := range allDirs {
		if n := p.Add(d); g.InBounds(n) {
			fn(n)
		}
	}
}

func (g *Grid) ForEachDirectNeighbor(p Position, fn func(Position)) {
	for _, d := range directDirs {
		if n := p.Add(d); g.InBounds(n) {
			fn(n)
		}
	}
}

func (g *Grid) ForEachDiagonalNeighbor(p Position, fn func(Position)) {
	for _, d := range diagonalDirs {
		if n := p.Add(d); g.InBounds(n) {
			fn(n)
		}
	}
}

// Neighbors returns in-bounds neighbors of p in scan order.
func (g *Grid) Neighbors(p Position, straightOnly bool) []Position {
	out := make([]Position, 0, 8)
	add := func(n Position) { out = append(out, n) }
	if straightOnly {
		g.ForEachDirectNeighbor(p, add)
	} else {
		g.ForEachNeighbor(p, add)
	}
	return out
}

// InsertElement records which object blocks each footprint tile. When
// visitable is set the entrance tile becomes the object's visit point.
func (g *Grid) InsertElement(id ObjectID, e MapElement, visitable bool) {
	g.elements[id] = e
	for _, p := range e.BlockedPositions() {
		if g.InBounds(p) {
			g.Tile(p).Blocking = id
		}
	}
	entrance := e.Entrance()
	if !g.InBounds(entrance) {
		return
	}
	if visitable {
		g.Tile(entrance).Visitable = id
		return
	}
	g.Tile(entrance).Blocking = id
}

func (g *Grid) Element(id ObjectID) (MapElement, bool) {
	e, ok := g.elements[id]
	return e, ok
}

// CanMoveBetween rejects diagonal steps that squeeze past an object corner
// and steps into or out of a visit point from a side it can't be visited from.
func (g *Grid) CanMoveBetween(src, dst Position) bool {
	if !g.InBounds(src) || !g.InBounds(dst) {
		return false
	}
	d := dst.Sub(src)
	if IsDiagonal(d) {
		a := src.Add(Position{X: d.X})
		b := src.Add(Position{Y: d.Y})
		if g.Tile(a).IsBlockedByObject() || g.Tile(b).IsBlockedByObject() {
			return false
		}
	}
	return g.checkVisitableDir(src, dst) && g.checkVisitableDir(dst, src)
}

func (g *Grid) checkVisitableDir(from, to Position) bool {
	tile := g.Tile(to)
	if !tile.IsVisitable() {
		return true
	}
	e, ok := g.elements[tile.Visitable]
	if !ok {
		return true
	}
	return e.IsVisitableFrom(from.Sub(to))
}
