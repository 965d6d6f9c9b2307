package generate

import (
	"time"

	"scenariogen/internal/domain/generation"
)

type Request struct {
	Template string  `json:"template"`
	Seed     *uint64 `json:"seed,omitempty"`
}

type Response struct {
	MapID     string                   `json:"map_id"`
	Seed      uint64                   `json:"seed"`
	Template  string                   `json:"template"`
	Size      int                      `json:"size"`
	Objects   int                      `json:"objects"`
	Roads     int                      `json:"roads"`
	Zones     []generation.ZoneSummary `json:"zones"`
	ElapsedMS int64                    `json:"elapsed_ms"`
	CreatedAt time.Time                `json:"created_at"`
}
