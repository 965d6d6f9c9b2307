package world

// MapElement is the footprint every placeable object shares. The entrance
// is the bottom-right corner of the rectangle; the rest of the rectangle is
// blocked. Entrance offsets are the neighbours of the entrance lying outside
// the footprint, so a unit steps onto the entrance from below or the right.
type MapElement struct {
	Size     Position `json:"size"`
	Position Position `json:"position"`
}

func NewMapElement(size Position) MapElement {
	return MapElement{Size: size, Position: InvalidPosition}
}

func (e MapElement) EntranceOffset() Position {
	return Position{X: e.Size.X - 1, Y: e.Size.Y - 1}
}

func (e MapElement) Entrance() Position {
	return e.Position.Add(e.EntranceOffset())
}

func (e MapElement) contains(offset Position) bool {
	return offset.X >= 0 && offset.Y >= 0 && offset.X < e.Size.X && offset.Y < e.Size.Y
}

// BlockedOffsets lists footprint offsets except the entrance, row by row.
func (e MapElement) BlockedOffsets() []Position {
	entrance := e.EntranceOffset()
	out := make([]Position, 0, e.Size.X*e.Size.Y)
	for y := 0; y < e.Size.Y; y++ {
		for x := 0; x < e.Size.X; x++ {
			o := Position{X: x, Y: y}
			if o != entrance {
				out = append(out, o)
			}
		}
	}
	return out
}

func (e MapElement) BlockedPositions() []Position {
	offsets := e.BlockedOffsets()
	out := make([]Position, len(offsets))
	for i, o := range offsets {
		out[i] = e.Position.Add(o)
	}
	return out
}

func (e MapElement) IsBlockedPosition(p Position) bool {
	o := p.Sub(e.Position)
	return e.contains(o) && o != e.EntranceOffset()
}

// EntranceOffsets are directions relative to the entrance tile from which
// the object can be entered.
func (e MapElement) EntranceOffsets() []Position {
	entrance := e.EntranceOffset()
	out := make([]Position, 0, 8)
	for _, d := range allDirs {
		if !e.contains(entrance.Add(d)) {
			out = append(out, d)
		}
	}
	return out
}

func (e MapElement) IsVisitableFrom(dir Position) bool {
	for _, d := range e.EntranceOffsets() {
		if d == dir {
			return true
		}
	}
	return false
}

// Gap masks select rows and columns around the footprint that stay passable.
const (
	GapTop    = 1
	GapRight  = 2
	GapBottom = 4
	GapLeft   = 8
)

// GapPositions returns the tiles adjacent to the footprint selected by mask.
func (e MapElement) GapPositions(mask int) []Position {
	var out []Position
	p := e.Position
	if mask&GapTop != 0 {
		for x := 0; x < e.Size.X; x++ {
			out = append(out, p.Add(Position{X: x, Y: -1}))
		}
	}
	if mask&GapRight != 0 {
		for y := 0; y < e.Size.Y; y++ {
			out = append(out, p.Add(Position{X: e.Size.X, Y: y}))
		}
	}
	if mask&GapBottom != 0 {
		for x := 0; x < e.Size.X; x++ {
			out = append(out, p.Add(Position{X: x, Y: e.Size.Y}))
		}
	}
	if mask&GapLeft != 0 {
		for y := 0; y < e.Size.Y; y++ {
			out = append(out, p.Add(Position{X: -1, Y: y}))
		}
	}
	return out
}
