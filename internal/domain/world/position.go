package world

import (
	"math"
	"sort"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InvalidPosition marks "no position" results, e.g. a missing path parent.
var InvalidPosition = Position{X: -1, Y: -1}

func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.Y >= 0
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position) Div(n int) Position {
	return Position{X: p.X / n, Y: p.Y / n}
}

func (p Position) DistanceSquared(o Position) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

func (p Position) Distance(o Position) float64 {
	return math.Sqrt(float64(p.DistanceSquared(o)))
}

// Less orders positions by column, then by row.
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}

var (
	directDirs = [4]Position{
		{X: 0, Y: -1},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
	}
	diagonalDirs = [4]Position{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}
	// allDirs is scanned column by column, top to bottom.
	allDirs = [8]Position{
		{X: -1, Y: -1}, {X: -1, Y: 0}, {X: -1, Y: 1},
		{X: 0, Y: -1}, {X: 0, Y: 1},
		{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	}
)

// NeighborDirs returns neighbour offsets in scan order.
func NeighborDirs(straightOnly bool) []Position {
	if straightOnly {
		return append([]Position(nil), directDirs[:]...)
	}
	return append([]Position(nil), allDirs[:]...)
}

func IsDiagonal(dir Position) bool {
	return dir.X != 0 && dir.Y != 0
}
