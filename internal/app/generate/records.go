package generate

import (
	"encoding/json"
	"fmt"
	"time"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/generation"
	"scenariogen/internal/domain/world"
)

// BuildBundle flattens a generated map into the records stored by a
// MapRepository.
func BuildBundle(mapID, templateName string, res *generation.Result, createdAt time.Time) (ports.MapBundle, error) {
	m := res.Map
	tiles, err := json.Marshal(m.Grid.Tiles())
	if err != nil {
		return ports.MapBundle{}, fmt.Errorf("encode tiles: %w", err)
	}

	bundle := ports.MapBundle{
		Map: ports.MapRecord{
			ID:        mapID,
			Seed:      m.Seed,
			Template:  templateName,
			Size:      m.Grid.Size(),
			Zones:     len(res.Zones),
			Objects:   m.ObjectCount(),
			Roads:     len(m.Roads),
			CreatedAt: createdAt,
		},
		Tiles: ports.TilesRecord{MapID: mapID, Size: m.Grid.Size(), Tiles: tiles},
	}
	for _, z := range res.Zones {
		bundle.Zones = append(bundle.Zones, ports.ZoneRecord{
			MapID:     mapID,
			ZoneID:    z.ID,
			Type:      string(z.Type),
			CenterX:   z.Center.X,
			CenterY:   z.Center.Y,
			Tiles:     z.Tiles,
			Free:      z.Free,
			Used:      z.Used,
			Blocked:   z.Blocked,
			RoadNodes: z.RoadNodes,
			Roads:     z.Roads,
		})
	}
	for _, obj := range m.Objects() {
		rec, err := objectRecord(mapID, res, obj)
		if err != nil {
			return ports.MapBundle{}, err
		}
		bundle.Objects = append(bundle.Objects, rec)
	}
	for i, r := range m.Roads {
		path, err := json.Marshal(r)
		if err != nil {
			return ports.MapBundle{}, fmt.Errorf("encode road %d: %w", i, err)
		}
		bundle.Roads = append(bundle.Roads, ports.RoadRecord{MapID: mapID, Index: i, Path: path})
	}
	return bundle, nil
}

func objectRecord(mapID string, res *generation.Result, obj world.Object) (ports.ObjectRecord, error) {
	payload, err := json.Marshal(obj)
	if err != nil {
		return ports.ObjectRecord{}, fmt.Errorf("encode object %s: %w", obj.ObjectID(), err)
	}
	rec := ports.ObjectRecord{
		MapID:    mapID,
		ObjectID: string(obj.ObjectID()),
		Kind:     string(obj.ObjectType()),
		X:        -1,
		Y:        -1,
		Zone:     -1,
		Payload:  payload,
	}
	if p, ok := obj.(world.Placeable); ok {
		e := p.Element()
		rec.X, rec.Y = e.Position.X, e.Position.Y
		rec.Width, rec.Height = e.Size.X, e.Size.Y
		rec.Zone = res.ZoneAt(e.Position)
	}
	switch o := obj.(type) {
	case *world.Fortification:
		rec.Owner = string(o.Owner)
	case *world.Stack:
		rec.Owner = string(o.Owner)
	case *world.SubraceRecord:
		rec.Owner = string(o.Player)
	}
	return rec, nil
}
