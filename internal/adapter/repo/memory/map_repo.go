package memory

import (
	"context"
	"slices"

	"scenariogen/internal/app/ports"
)

type MapRepo struct {
	store *Store
}

func NewMapRepo(store *Store) MapRepo {
	return MapRepo{store: store}
}

// Save stores a copy of the bundle. Saving an existing map id replaces it.
func (r MapRepo) Save(ctx context.Context, bundle ports.MapBundle) error {
	return r.store.write(ctx, func() error {
		r.store.maps[bundle.Map.ID] = cloneBundle(bundle)
		return nil
	})
}

func (r MapRepo) Get(ctx context.Context, mapID string) (ports.MapRecord, error) {
	b, err := r.bundle(ctx, mapID)
	return b.Map, err
}

func (r MapRepo) ListZones(ctx context.Context, mapID string) ([]ports.ZoneRecord, error) {
	b, err := r.bundle(ctx, mapID)
	if err != nil {
		return nil, err
	}
	return b.Zones, nil
}

func (r MapRepo) GetTiles(ctx context.Context, mapID string) (ports.TilesRecord, error) {
	b, err := r.bundle(ctx, mapID)
	return b.Tiles, err
}

func (r MapRepo) ListObjects(ctx context.Context, mapID string, kind string) ([]ports.ObjectRecord, error) {
	b, err := r.bundle(ctx, mapID)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return b.Objects, nil
	}
	out := make([]ports.ObjectRecord, 0)
	for _, o := range b.Objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r MapRepo) ListRoads(ctx context.Context, mapID string) ([]ports.RoadRecord, error) {
	b, err := r.bundle(ctx, mapID)
	if err != nil {
		return nil, err
	}
	return b.Roads, nil
}

func (r MapRepo) bundle(ctx context.Context, mapID string) (ports.MapBundle, error) {
	var (
		b  ports.MapBundle
		ok bool
	)
	r.store.read(ctx, func() {
		b, ok = r.store.maps[mapID]
	})
	if !ok {
		return ports.MapBundle{}, ports.ErrNotFound
	}
	return cloneBundle(b), nil
}

// cloneBundle copies the record slices; payload bytes are never mutated.
func cloneBundle(b ports.MapBundle) ports.MapBundle {
	b.Zones = slices.Clone(b.Zones)
	b.Objects = slices.Clone(b.Objects)
	b.Roads = slices.Clone(b.Roads)
	return b
}
