package generation

import (
	"math"

	"scenariogen/internal/domain/world"
)

type TileState uint8

const (
	TilePossible TileState = iota
	TileFree
	TileUsed
	TileBlocked
)

func (s TileState) String() string {
	switch s {
	case TilePossible:
		return "possible"
	case TileFree:
		return "free"
	case TileUsed:
		return "used"
	case TileBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

const (
	noZone      = -1
	farDistance = float64(math.MaxInt32)
)

// Occupancy tracks the placement state, owning zone and distance to the
// nearest placed object of every tile of the grid.
type Occupancy struct {
	grid    *world.Grid
	state   []TileState
	zone    []int
	nearest []float64
}

func NewOccupancy(grid *world.Grid) *Occupancy {
	n := grid.Size() * grid.Size()
	o := &Occupancy{
		grid:    grid,
		state:   make([]TileState, n),
		zone:    make([]int, n),
		nearest: make([]float64, n),
	}
	for i := range o.zone {
		o.zone[i] = noZone
		o.nearest[i] = farDistance
	}
	return o
}

func (o *Occupancy) State(p world.Position) TileState {
	return o.state[o.grid.Index(p)]
}

func (o *Occupancy) SetOccupied(p world.Position, s TileState) {
	o.state[o.grid.Index(p)] = s
}

func (o *Occupancy) IsFree(p world.Position) bool     { return o.State(p) == TileFree }
func (o *Occupancy) IsPossible(p world.Position) bool { return o.State(p) == TilePossible }
func (o *Occupancy) IsUsed(p world.Position) bool     { return o.State(p) == TileUsed }

// IsBlocked reports tiles nothing can pass through: used or blocked.
func (o *Occupancy) IsBlocked(p world.Position) bool {
	s := o.State(p)
	return s == TileBlocked || s == TileUsed
}

// ShouldBeBlocked reports tiles waiting to be covered by obstacles.
func (o *Occupancy) ShouldBeBlocked(p world.Position) bool {
	return o.State(p) == TileBlocked
}

func (o *Occupancy) ZoneID(p world.Position) int {
	return o.zone[o.grid.Index(p)]
}

func (o *Occupancy) setZoneID(p world.Position, id int) {
	o.zone[o.grid.Index(p)] = id
}

func (o *Occupancy) NearestObjectDistance(p world.Position) float64 {
	return o.nearest[o.grid.Index(p)]
}

func (o *Occupancy) SetNearestObjectDistance(p world.Position, d float64) {
	o.nearest[o.grid.Index(p)] = d
}

// Counts returns how many tiles are in each state.
func (o *Occupancy) Counts() map[TileState]int {
	out := map[TileState]int{}
	for _, s := range o.state {
		out[s]++
	}
	return out
}
