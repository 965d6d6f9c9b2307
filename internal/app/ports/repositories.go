package ports

import (
	"context"
	"encoding/json"
	"time"
)

// MapRecord is the header row of a generated map.
type MapRecord struct {
	ID        string
	Seed      uint64
	Template  string
	Size      int
	Zones     int
	Objects   int
	Roads     int
	CreatedAt time.Time
}

type ZoneRecord struct {
	MapID     string
	ZoneID    int
	Type      string
	CenterX   int
	CenterY   int
	Tiles     int
	Free      int
	Used      int
	Blocked   int
	RoadNodes int
	Roads     int
}

// ObjectRecord is one scenario object. Payload holds the full object as
// JSON; the other fields are kept for filtering.
type ObjectRecord struct {
	MapID    string
	ObjectID string
	Kind     string
	X        int
	Y        int
	Width    int
	Height   int
	Owner    string
	Zone     int
	Payload  json.RawMessage
}

type RoadRecord struct {
	MapID string
	Index int
	Path  json.RawMessage
}

// TilesRecord stores the whole grid as one JSON array, row by row.
type TilesRecord struct {
	MapID string
	Size  int
	Tiles json.RawMessage
}

// MapBundle is everything persisted for one generated map.
type MapBundle struct {
	Map     MapRecord
	Zones   []ZoneRecord
	Tiles   TilesRecord
	Objects []ObjectRecord
	Roads   []RoadRecord
}

type MapRepository interface {
	Save(ctx context.Context, bundle MapBundle) error
	Get(ctx context.Context, mapID string) (MapRecord, error)
	ListZones(ctx context.Context, mapID string) ([]ZoneRecord, error)
	GetTiles(ctx context.Context, mapID string) (TilesRecord, error)
	ListObjects(ctx context.Context, mapID string, kind string) ([]ObjectRecord, error)
	ListRoads(ctx context.Context, mapID string) ([]RoadRecord, error)
}
