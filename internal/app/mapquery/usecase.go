package mapquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid map query")

type UseCase struct {
	Maps ports.MapRepository
}

func (u UseCase) Summary(ctx context.Context, req Request) (SummaryResponse, error) {
	id, err := u.mapID(req.MapID)
	if err != nil {
		return SummaryResponse{}, err
	}
	rec, err := u.Maps.Get(ctx, id)
	if err != nil {
		return SummaryResponse{}, err
	}
	zones, err := u.Maps.ListZones(ctx, id)
	if err != nil {
		return SummaryResponse{}, err
	}
	roads, err := u.Maps.ListRoads(ctx, id)
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		MapID:     rec.ID,
		Seed:      rec.Seed,
		Template:  rec.Template,
		Size:      rec.Size,
		Objects:   rec.Objects,
		CreatedAt: rec.CreatedAt,
		Zones:     make([]Zone, 0, len(zones)),
		Roads:     make([]json.RawMessage, 0, len(roads)),
	}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, Zone{
			ID:        z.ZoneID,
			Type:      z.Type,
			Center:    world.Pos(z.CenterX, z.CenterY),
			Tiles:     z.Tiles,
			Free:      z.Free,
			Used:      z.Used,
			Blocked:   z.Blocked,
			RoadNodes: z.RoadNodes,
			Roads:     z.Roads,
		})
	}
	for _, r := range roads {
		resp.Roads = append(resp.Roads, r.Path)
	}
	return resp, nil
}

func (u UseCase) Tiles(ctx context.Context, req Request) (TilesResponse, error) {
	id, err := u.mapID(req.MapID)
	if err != nil {
		return TilesResponse{}, err
	}
	rec, err := u.Maps.GetTiles(ctx, id)
	if err != nil {
		return TilesResponse{}, err
	}
	return TilesResponse{MapID: id, Size: rec.Size, Tiles: rec.Tiles}, nil
}

func (u UseCase) Objects(ctx context.Context, req ObjectsRequest) (ObjectsResponse, error) {
	id, err := u.mapID(req.MapID)
	if err != nil {
		return ObjectsResponse{}, err
	}
	kind := strings.ToUpper(strings.TrimSpace(req.Kind))
	if kind != "" && !knownKind(world.ObjectType(kind)) {
		return ObjectsResponse{}, fmt.Errorf("%w: unknown object kind %q", ErrInvalidRequest, req.Kind)
	}
	// The header lookup turns a missing map into ErrNotFound instead of an
	// empty list.
	if _, err := u.Maps.Get(ctx, id); err != nil {
		return ObjectsResponse{}, err
	}
	recs, err := u.Maps.ListObjects(ctx, id, kind)
	if err != nil {
		return ObjectsResponse{}, err
	}
	resp := ObjectsResponse{MapID: id, Objects: make([]Object, 0, len(recs))}
	for _, r := range recs {
		obj := Object{
			ID:    r.ObjectID,
			Kind:  r.Kind,
			Owner: r.Owner,
			Zone:  r.Zone,
			Data:  r.Payload,
		}
		if r.X >= 0 && r.Y >= 0 {
			pos, size := world.Pos(r.X, r.Y), world.Pos(r.Width, r.Height)
			obj.Position, obj.Size = &pos, &size
		}
		resp.Objects = append(resp.Objects, obj)
	}
	return resp, nil
}

func (u UseCase) mapID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: map id is required", ErrInvalidRequest)
	}
	if u.Maps == nil {
		return "", ErrInvalidRequest
	}
	return id, nil
}

func knownKind(t world.ObjectType) bool {
	switch t {
	case world.ObjectFortification, world.ObjectStack, world.ObjectUnit, world.ObjectItem,
		world.ObjectSite, world.ObjectRuin, world.ObjectBag, world.ObjectCrystal,
		world.ObjectLandmark, world.ObjectPlayer, world.ObjectSubrace:
		return true
	}
	return false
}
