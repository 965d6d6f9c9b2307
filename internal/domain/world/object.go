package world

import (
	"errors"
	"fmt"
	"strings"
)

type ObjectType string

const (
	ObjectFortification ObjectType = "FT"
	ObjectStack         ObjectType = "KC"
	ObjectUnit          ObjectType = "UU"
	ObjectItem          ObjectType = "IM"
	ObjectSite          ObjectType = "SI"
	ObjectRuin          ObjectType = "RU"
	ObjectBag           ObjectType = "BG"
	ObjectCrystal       ObjectType = "CR"
	ObjectLandmark      ObjectType = "MM"
	ObjectPlayer        ObjectType = "PL"
	ObjectSubrace       ObjectType = "SR"
)

// ObjectID looks like S143FT0001: a fixed prefix, the object type and a
// hex counter shared by every object of one map.
type ObjectID string

const objectIDPrefix = "S143"

var ErrInvalidObjectID = errors.New("invalid object id")

func FormatObjectID(t ObjectType, n int) ObjectID {
	return ObjectID(fmt.Sprintf("%s%s%04X", objectIDPrefix, t, n))
}

func (id ObjectID) Type() (ObjectType, error) {
	s := string(id)
	if len(s) != 10 || !strings.HasPrefix(s, objectIDPrefix) {
		return "", ErrInvalidObjectID
	}
	return ObjectType(s[4:6]), nil
}

type Object interface {
	ObjectID() ObjectID
	ObjectType() ObjectType
}

// Placeable objects occupy a footprint on the grid.
type Placeable interface {
	Object
	Element() *MapElement
}
