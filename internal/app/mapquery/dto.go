package mapquery

import (
	"encoding/json"
	"time"

	"scenariogen/internal/domain/world"
)

type Request struct {
	MapID string
}

type ObjectsRequest struct {
	MapID string
	// Kind filters by object type code, e.g. "SI" for sites. Empty means all.
	Kind string
}

type Zone struct {
	ID        int            `json:"id"`
	Type      string         `json:"type"`
	Center    world.Position `json:"center"`
	Tiles     int            `json:"tiles"`
	Free      int            `json:"free"`
	Used      int            `json:"used"`
	Blocked   int            `json:"blocked"`
	RoadNodes int            `json:"road_nodes"`
	Roads     int            `json:"roads"`
}

type SummaryResponse struct {
	MapID     string            `json:"map_id"`
	Seed      uint64            `json:"seed"`
	Template  string            `json:"template"`
	Size      int               `json:"size"`
	Objects   int               `json:"objects"`
	CreatedAt time.Time         `json:"created_at"`
	Zones     []Zone            `json:"zones"`
	Roads     []json.RawMessage `json:"roads"`
}

type TilesResponse struct {
	MapID string          `json:"map_id"`
	Size  int             `json:"size"`
	Tiles json.RawMessage `json:"tiles"`
}

type Object struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Position *world.Position `json:"position,omitempty"`
	Size     *world.Position `json:"size,omitempty"`
	Owner    string          `json:"owner,omitempty"`
	Zone     int             `json:"zone"`
	Data     json.RawMessage `json:"data"`
}

type ObjectsResponse struct {
	MapID   string   `json:"map_id"`
	Objects []Object `json:"objects"`
}
