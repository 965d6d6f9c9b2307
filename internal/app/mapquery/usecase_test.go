package mapquery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"scenariogen/internal/app/ports"
)

func TestUseCase_Summary(t *testing.T) {
	repo := newFakeRepo()
	uc := UseCase{Maps: repo}

	resp, err := uc.Summary(context.Background(), Request{MapID: "map-1"})
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if resp.Seed != 7 || resp.Template != "duel" || resp.Size != 48 {
		t.Fatalf("unexpected header %+v", resp)
	}
	if len(resp.Zones) != 2 || resp.Zones[1].Center.X != 30 {
		t.Fatalf("unexpected zones %+v", resp.Zones)
	}
	if len(resp.Roads) != 1 || string(resp.Roads[0]) != `{"path":[]}` {
		t.Fatalf("unexpected roads %+v", resp.Roads)
	}
}

func TestUseCase_ObjectsFiltersByKind(t *testing.T) {
	repo := newFakeRepo()
	uc := UseCase{Maps: repo}

	resp, err := uc.Objects(context.Background(), ObjectsRequest{MapID: "map-1", Kind: "si"})
	if err != nil {
		t.Fatalf("objects error: %v", err)
	}
	if len(resp.Objects) != 1 || resp.Objects[0].Kind != "SI" {
		t.Fatalf("expected one site, got %+v", resp.Objects)
	}
	if resp.Objects[0].Position == nil || resp.Objects[0].Position.X != 4 {
		t.Fatalf("expected site position, got %+v", resp.Objects[0])
	}

	all, err := uc.Objects(context.Background(), ObjectsRequest{MapID: "map-1"})
	if err != nil {
		t.Fatalf("objects error: %v", err)
	}
	if len(all.Objects) != 2 {
		t.Fatalf("expected all objects, got %d", len(all.Objects))
	}
	for _, o := range all.Objects {
		if o.Kind == "PL" && o.Position != nil {
			t.Fatalf("expected player without position")
		}
	}
}

func TestUseCase_RejectsUnknownKind(t *testing.T) {
	uc := UseCase{Maps: newFakeRepo()}
	if _, err := uc.Objects(context.Background(), ObjectsRequest{MapID: "map-1", Kind: "ZZ"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_RejectsEmptyMapID(t *testing.T) {
	uc := UseCase{Maps: newFakeRepo()}
	if _, err := uc.Summary(context.Background(), Request{MapID: " "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Tiles(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesNotFound(t *testing.T) {
	uc := UseCase{Maps: newFakeRepo()}
	if _, err := uc.Summary(context.Background(), Request{MapID: "missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Objects(context.Background(), ObjectsRequest{MapID: "missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Tiles(context.Background(), Request{MapID: "missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakeRepo struct {
	bundle ports.MapBundle
}

func newFakeRepo() fakeRepo {
	return fakeRepo{bundle: ports.MapBundle{
		Map: ports.MapRecord{ID: "map-1", Seed: 7, Template: "duel", Size: 48, Objects: 2, CreatedAt: time.Unix(0, 0)},
		Zones: []ports.ZoneRecord{
			{MapID: "map-1", ZoneID: 1, Type: "player_start", CenterX: 12, CenterY: 24},
			{MapID: "map-1", ZoneID: 2, Type: "treasure", CenterX: 30, CenterY: 24},
		},
		Tiles: ports.TilesRecord{MapID: "map-1", Size: 48, Tiles: json.RawMessage(`[]`)},
		Objects: []ports.ObjectRecord{
			{MapID: "map-1", ObjectID: "S143PL0000", Kind: "PL", X: -1, Y: -1, Zone: -1, Payload: json.RawMessage(`{}`)},
			{MapID: "map-1", ObjectID: "S143SI0000", Kind: "SI", X: 4, Y: 5, Width: 3, Height: 3, Zone: 1, Payload: json.RawMessage(`{}`)},
		},
		Roads: []ports.RoadRecord{{MapID: "map-1", Index: 0, Path: json.RawMessage(`{"path":[]}`)}},
	}}
}

func (f fakeRepo) Save(context.Context, ports.MapBundle) error { return nil }

func (f fakeRepo) Get(_ context.Context, id string) (ports.MapRecord, error) {
	if id != f.bundle.Map.ID {
		return ports.MapRecord{}, ports.ErrNotFound
	}
	return f.bundle.Map, nil
}

func (f fakeRepo) ListZones(_ context.Context, id string) ([]ports.ZoneRecord, error) {
	if id != f.bundle.Map.ID {
		return nil, nil
	}
	return f.bundle.Zones, nil
}

func (f fakeRepo) GetTiles(_ context.Context, id string) (ports.TilesRecord, error) {
	if id != f.bundle.Map.ID {
		return ports.TilesRecord{}, ports.ErrNotFound
	}
	return f.bundle.Tiles, nil
}

func (f fakeRepo) ListObjects(_ context.Context, id string, kind string) ([]ports.ObjectRecord, error) {
	var out []ports.ObjectRecord
	for _, o := range f.bundle.Objects {
		if o.MapID == id && (kind == "" || o.Kind == kind) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f fakeRepo) ListRoads(_ context.Context, id string) ([]ports.RoadRecord, error) {
	if id != f.bundle.Map.ID {
		return nil, nil
	}
	return f.bundle.Roads, nil
}
