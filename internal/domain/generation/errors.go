package generation

import (
	"errors"
	"fmt"

	"scenariogen/internal/domain/world"
)

var (
	ErrLackOfSpace     = errors.New("lack of space")
	ErrGeometry        = errors.New("object outside of the map")
	ErrEntranceBlocked = errors.New("entrance blocked")
	ErrPhaseOrder      = errors.New("zone phase out of order")
)

// LackOfSpaceError is returned when no admissible position is left for an
// object of the category.
type LackOfSpaceError struct {
	ZoneID   int
	Category string
}

func (e *LackOfSpaceError) Error() string {
	return fmt.Sprintf("failed to place %s in zone %d: %s", e.Category, e.ZoneID, ErrLackOfSpace.Error())
}

func (e *LackOfSpaceError) Unwrap() error { return ErrLackOfSpace }

func lackOfSpace(zone int, category string) error {
	return &LackOfSpaceError{ZoneID: zone, Category: category}
}

// GeometryError reports an object whose position or entrance left the grid.
type GeometryError struct {
	ObjectID world.ObjectID
	Position world.Position
	Point    world.Position
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s at %v, point %v", ErrGeometry.Error(), e.ObjectID, e.Position, e.Point)
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

type EntranceBlockedError struct {
	ObjectID world.ObjectID
	Kind     world.ObjectType
	Position world.Position
	Seed     uint64
}

func (e *EntranceBlockedError) Error() string {
	return fmt.Sprintf("%s: %s %s at %v, map seed %d", ErrEntranceBlocked.Error(), e.Kind, e.ObjectID, e.Position, e.Seed)
}

func (e *EntranceBlockedError) Unwrap() error { return ErrEntranceBlocked }
