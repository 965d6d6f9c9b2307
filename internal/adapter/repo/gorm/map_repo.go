package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"scenariogen/internal/adapter/repo/gorm/model"
	"scenariogen/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const objectBatchSize = 500

type MapRepo struct {
	db *gorm.DB
}

func NewMapRepo(db *gorm.DB) MapRepo {
	return MapRepo{db: db}
}

// Save writes the whole bundle. Saving an existing map id replaces it.
func (r MapRepo) Save(ctx context.Context, bundle ports.MapBundle) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		header := toMapModel(bundle.Map)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seed", "template", "size", "zone_count", "object_count", "road_count", "created_at"}),
		}).Create(&header).Error; err != nil {
			return err
		}
		for _, table := range []any{&model.MapZone{}, &model.MapObject{}, &model.MapRoad{}} {
			if err := tx.Where("map_id = ?", bundle.Map.ID).Delete(table).Error; err != nil {
				return err
			}
		}

		tiles := model.MapTile{
			MapID: bundle.Map.ID,
			Size:  int32(bundle.Tiles.Size),
			Tiles: string(bundle.Tiles.Tiles),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "map_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"size", "tiles"}),
		}).Create(&tiles).Error; err != nil {
			return err
		}

		if len(bundle.Zones) > 0 {
			zones := make([]model.MapZone, 0, len(bundle.Zones))
			for _, z := range bundle.Zones {
				zones = append(zones, model.MapZone{
					MapID:     bundle.Map.ID,
					ZoneID:    int32(z.ZoneID),
					ZoneType:  z.Type,
					CenterX:   int32(z.CenterX),
					CenterY:   int32(z.CenterY),
					Tiles:     int32(z.Tiles),
					FreeTiles: int32(z.Free),
					UsedTiles: int32(z.Used),
					Blocked:   int32(z.Blocked),
					RoadNodes: int32(z.RoadNodes),
					Roads:     int32(z.Roads),
				})
			}
			if err := tx.Create(&zones).Error; err != nil {
				return err
			}
		}

		if len(bundle.Objects) > 0 {
			objects := make([]model.MapObject, 0, len(bundle.Objects))
			for _, o := range bundle.Objects {
				objects = append(objects, model.MapObject{
					MapID:    bundle.Map.ID,
					ObjectID: o.ObjectID,
					Kind:     o.Kind,
					X:        int32(o.X),
					Y:        int32(o.Y),
					Width:    int32(o.Width),
					Height:   int32(o.Height),
					Owner:    o.Owner,
					ZoneID:   int32(o.Zone),
					Payload:  string(o.Payload),
				})
			}
			if err := tx.CreateInBatches(&objects, objectBatchSize).Error; err != nil {
				return err
			}
		}

		if len(bundle.Roads) > 0 {
			roads := make([]model.MapRoad, 0, len(bundle.Roads))
			for _, rd := range bundle.Roads {
				roads = append(roads, model.MapRoad{
					MapID:     bundle.Map.ID,
					RoadIndex: int32(rd.Index),
					Path:      string(rd.Path),
				})
			}
			if err := tx.Create(&roads).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r MapRepo) Get(ctx context.Context, mapID string) (ports.MapRecord, error) {
	var m model.Map
	err := conn(ctx, r.db).
		Where(&model.Map{ID: mapID}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MapRecord{}, ports.ErrNotFound
		}
		return ports.MapRecord{}, err
	}
	return ports.MapRecord{
		ID:        m.ID,
		Seed:      uint64(m.Seed),
		Template:  m.Template,
		Size:      int(m.Size),
		Zones:     int(m.ZoneCount),
		Objects:   int(m.ObjectCount),
		Roads:     int(m.RoadCount),
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r MapRepo) ListZones(ctx context.Context, mapID string) ([]ports.ZoneRecord, error) {
	var rows []model.MapZone
	if err := conn(ctx, r.db).
		Where(&model.MapZone{MapID: mapID}).
		Order("zone_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ZoneRecord, 0, len(rows))
	for _, z := range rows {
		out = append(out, ports.ZoneRecord{
			MapID:     z.MapID,
			ZoneID:    int(z.ZoneID),
			Type:      z.ZoneType,
			CenterX:   int(z.CenterX),
			CenterY:   int(z.CenterY),
			Tiles:     int(z.Tiles),
			Free:      int(z.FreeTiles),
			Used:      int(z.UsedTiles),
			Blocked:   int(z.Blocked),
			RoadNodes: int(z.RoadNodes),
			Roads:     int(z.Roads),
		})
	}
	return out, nil
}

func (r MapRepo) GetTiles(ctx context.Context, mapID string) (ports.TilesRecord, error) {
	var m model.MapTile
	err := conn(ctx, r.db).
		Where(&model.MapTile{MapID: mapID}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.TilesRecord{}, ports.ErrNotFound
		}
		return ports.TilesRecord{}, err
	}
	return ports.TilesRecord{
		MapID: m.MapID,
		Size:  int(m.Size),
		Tiles: json.RawMessage(m.Tiles),
	}, nil
}

func (r MapRepo) ListObjects(ctx context.Context, mapID string, kind string) ([]ports.ObjectRecord, error) {
	var rows []model.MapObject
	q := conn(ctx, r.db).Where(&model.MapObject{MapID: mapID})
	if kind != "" {
		q = q.Where(&model.MapObject{Kind: kind})
	}
	if err := q.Order("object_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ObjectRecord, 0, len(rows))
	for _, o := range rows {
		out = append(out, ports.ObjectRecord{
			MapID:    o.MapID,
			ObjectID: o.ObjectID,
			Kind:     o.Kind,
			X:        int(o.X),
			Y:        int(o.Y),
			Width:    int(o.Width),
			Height:   int(o.Height),
			Owner:    o.Owner,
			Zone:     int(o.ZoneID),
			Payload:  json.RawMessage(o.Payload),
		})
	}
	return out, nil
}

func (r MapRepo) ListRoads(ctx context.Context, mapID string) ([]ports.RoadRecord, error) {
	var rows []model.MapRoad
	if err := conn(ctx, r.db).
		Where(&model.MapRoad{MapID: mapID}).
		Order("road_index").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.RoadRecord, 0, len(rows))
	for _, rd := range rows {
		out = append(out, ports.RoadRecord{
			MapID: rd.MapID,
			Index: int(rd.RoadIndex),
			Path:  json.RawMessage(rd.Path),
		})
	}
	return out, nil
}

func toMapModel(rec ports.MapRecord) model.Map {
	return model.Map{
		ID:          rec.ID,
		Seed:        int64(rec.Seed),
		Template:    rec.Template,
		Size:        int32(rec.Size),
		ZoneCount:   int32(rec.Zones),
		ObjectCount: int32(rec.Objects),
		RoadCount:   int32(rec.Roads),
		CreatedAt:   rec.CreatedAt,
	}
}
