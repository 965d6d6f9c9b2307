package world

import "errors"

type RoadInfo struct {
	Source      Position   `json:"source"`
	Destination Position   `json:"destination"`
	Path        []Position `json:"path"`
}

var ErrDuplicateObject = errors.New("duplicate object")

// ScenarioMap owns the grid and every object placed on it. Object ids come
// from a single counter; the map is not safe for concurrent use.
type ScenarioMap struct {
	Seed      uint64
	Name      string
	Grid      *Grid
	Mountains []Mountain
	Roads     []RoadInfo

	objects map[ObjectID]Object
	order   []ObjectID
	nextID  int
}

func NewScenarioMap(name string, size int, seed uint64) *ScenarioMap {
	return &ScenarioMap{
		Seed:    seed,
		Name:    name,
		Grid:    NewGrid(size),
		objects: map[ObjectID]Object{},
	}
}

func (m *ScenarioMap) CreateID(t ObjectType) ObjectID {
	id := FormatObjectID(t, m.nextID)
	m.nextID++
	return id
}

func (m *ScenarioMap) Insert(obj Object) error {
	id := obj.ObjectID()
	if _, ok := m.objects[id]; ok {
		return ErrDuplicateObject
	}
	m.objects[id] = obj
	m.order = append(m.order, id)
	return nil
}

// InsertMapElement registers a placeable object both in the store and on the grid.
func (m *ScenarioMap) InsertMapElement(obj Placeable, visitable bool) error {
	if err := m.Insert(obj); err != nil {
		return err
	}
	m.Grid.InsertElement(obj.ObjectID(), *obj.Element(), visitable)
	return nil
}

func (m *ScenarioMap) Find(id ObjectID) (Object, bool) {
	obj, ok := m.objects[id]
	return obj, ok
}

func FindAs[T Object](m *ScenarioMap, id ObjectID) (T, bool) {
	var zero T
	obj, ok := m.objects[id]
	if !ok {
		return zero, false
	}
	typed, ok := obj.(T)
	return typed, ok
}

// Objects returns every object in insertion order.
func (m *ScenarioMap) Objects() []Object {
	out := make([]Object, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.objects[id])
	}
	return out
}

func (m *ScenarioMap) ObjectCount() int {
	return len(m.order)
}

func (m *ScenarioMap) AddMountain(mt Mountain) {
	m.Mountains = append(m.Mountains, mt)
}

func (m *ScenarioMap) AddRoad(r RoadInfo) {
	m.Roads = append(m.Roads, r)
}
