package generation

import (
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

type ZoneSummary struct {
	ID        int               `json:"id"`
	Type      template.ZoneType `json:"type"`
	Center    world.Position    `json:"center"`
	Tiles     int               `json:"tiles"`
	Free      int               `json:"free"`
	Used      int               `json:"used"`
	Blocked   int               `json:"blocked"`
	RoadNodes int               `json:"road_nodes"`
	Roads     int               `json:"roads"`
}

// Result is a generated map together with per-tile zone ownership.
type Result struct {
	Map       *world.ScenarioMap
	Zones     []ZoneSummary
	TileZones []int
}

func (g *Generator) result() *Result {
	res := &Result{
		Map:       g.Map,
		TileZones: append([]int(nil), g.occ.zone...),
	}
	for _, z := range g.zones {
		s := ZoneSummary{
			ID:        z.ID,
			Type:      z.Options.Type,
			Center:    z.pos,
			Tiles:     len(z.tiles),
			RoadNodes: z.roadNodes.Size(),
			Roads:     len(z.roads),
		}
		for _, t := range z.tiles {
			switch g.occ.State(t) {
			case TileFree:
				s.Free++
			case TileUsed:
				s.Used++
			case TileBlocked:
				s.Blocked++
			}
		}
		res.Zones = append(res.Zones, s)
	}
	return res
}

// ZoneAt returns the id of the zone owning p, or -1.
func (r *Result) ZoneAt(p world.Position) int {
	if !r.Map.Grid.InBounds(p) {
		return noZone
	}
	return r.TileZones[r.Map.Grid.Index(p)]
}
