package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"scenariogen/internal/adapter/repo/gorm/model"
	"scenariogen/internal/app/ports"

	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("SCENARIOGEN_DB_DSN")
	if dsn == "" {
		t.Skip("SCENARIOGEN_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations")
	if err := ApplyMigrations(context.Background(), db, dir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMapRepo_RoundTrip(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	mapID := "it-map-roundtrip"
	_ = db.Exec("DELETE FROM maps WHERE id = ?", mapID).Error

	repo := NewMapRepo(db)
	tx := NewTxManager(db)
	bundle := itBundle(mapID, 700)
	if err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		return repo.Save(txCtx, bundle)
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := repo.Get(ctx, mapID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Seed != bundle.Map.Seed || rec.Objects != 700 || rec.Template != "duel" {
		t.Fatalf("unexpected header %+v", rec)
	}
	objects, err := repo.ListObjects(ctx, mapID, "")
	if err != nil {
		t.Fatalf("objects: %v", err)
	}
	if len(objects) != 700 {
		t.Fatalf("expected 700 objects across batches, got %d", len(objects))
	}
	sites, err := repo.ListObjects(ctx, mapID, "SI")
	if err != nil || len(sites) != 350 {
		t.Fatalf("expected 350 sites, got %d (%v)", len(sites), err)
	}
	var payload map[string]any
	if err := json.Unmarshal(sites[0].Payload, &payload); err != nil || payload["kind"] != "merchant" {
		t.Fatalf("unexpected payload %s (%v)", sites[0].Payload, err)
	}
	zones, err := repo.ListZones(ctx, mapID)
	if err != nil || len(zones) != 2 || zones[0].ZoneID != 1 {
		t.Fatalf("unexpected zones %+v (%v)", zones, err)
	}
	roads, err := repo.ListRoads(ctx, mapID)
	if err != nil || len(roads) != 1 {
		t.Fatalf("unexpected roads %+v (%v)", roads, err)
	}
	tiles, err := repo.GetTiles(ctx, mapID)
	if err != nil || tiles.Size != 24 {
		t.Fatalf("unexpected tiles %+v (%v)", tiles, err)
	}
}

func TestMapRepo_SaveReplacesChildren(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	mapID := "it-map-replace"
	_ = db.Exec("DELETE FROM maps WHERE id = ?", mapID).Error

	repo := NewMapRepo(db)
	if err := repo.Save(ctx, itBundle(mapID, 10)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, itBundle(mapID, 4)); err != nil {
		t.Fatalf("save again: %v", err)
	}
	var count int64
	if err := db.Model(&model.MapObject{}).Where("map_id = ?", mapID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 objects after replace, got %d", count)
	}
}

func TestMapRepo_RollbackOnError(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	mapID := "it-map-rollback"
	_ = db.Exec("DELETE FROM maps WHERE id = ?", mapID).Error

	repo := NewMapRepo(db)
	tx := NewTxManager(db)
	wantErr := errors.New("abort")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, itBundle(mapID, 3)); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if _, err := repo.Get(ctx, mapID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected map rolled back, got %v", err)
	}
}

func TestMapRepo_MissingMap(t *testing.T) {
	db := openMigrated(t)
	repo := NewMapRepo(db)
	if _, err := repo.Get(context.Background(), "it-map-missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetTiles(context.Background(), "it-map-missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func itBundle(mapID string, objects int) ports.MapBundle {
	b := ports.MapBundle{
		Map: ports.MapRecord{
			ID:        mapID,
			Seed:      1<<63 + 5,
			Template:  "duel",
			Size:      24,
			Zones:     2,
			Objects:   objects,
			Roads:     1,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
		Zones: []ports.ZoneRecord{
			{MapID: mapID, ZoneID: 2, Type: "treasure", CenterX: 18, CenterY: 12, Tiles: 288},
			{MapID: mapID, ZoneID: 1, Type: "player_start", CenterX: 6, CenterY: 12, Tiles: 288},
		},
		Tiles: ports.TilesRecord{MapID: mapID, Size: 24, Tiles: json.RawMessage(`[{"terrain":"neutral","ground":"plain"}]`)},
		Roads: []ports.RoadRecord{{MapID: mapID, Index: 0, Path: json.RawMessage(`{"source":{"x":1,"y":1},"destination":{"x":2,"y":2},"path":[]}`)}},
	}
	for i := 0; i < objects; i++ {
		kind, payload := "RU", `{"title":"ruin"}`
		if i%2 == 0 {
			kind, payload = "SI", `{"kind":"merchant"}`
		}
		b.Objects = append(b.Objects, ports.ObjectRecord{
			MapID:    mapID,
			ObjectID: fmt.Sprintf("%s%04d", kind, i),
			Kind:     kind,
			X:        i % 24,
			Y:        i / 24,
			Width:    3,
			Height:   3,
			Zone:     1,
			Payload:  json.RawMessage(payload),
		})
	}
	return b
}
