package generate

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/composer"
	"scenariogen/internal/domain/generation"
	"scenariogen/internal/domain/template"
)

var ErrInvalidRequest = errors.New("invalid generate request")

type UseCase struct {
	TxManager ports.TxManager
	Maps      ports.MapRepository
	Templates ports.TemplateProvider
	Catalog   ports.CatalogProvider
	Metrics   ports.GenerationMetrics
	Config    generation.Config
	Now       func() time.Time
	NewID     func() uuid.UUID
}

// Execute generates one map from a named template and stores it. Without
// an explicit seed the seed is taken from the map id.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	name := strings.TrimSpace(req.Template)
	if name == "" {
		return Response{}, fmt.Errorf("%w: template is required", ErrInvalidRequest)
	}
	if u.TxManager == nil || u.Maps == nil || u.Templates == nil || u.Catalog == nil {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.New
	}

	tmpl, err := u.Templates.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, fmt.Errorf("%w: unknown template %q", ErrInvalidRequest, name)
		}
		return Response{}, fmt.Errorf("load template %s: %w", name, err)
	}
	cat, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	id := newID()
	seed := binary.BigEndian.Uint64(id[:8])
	if req.Seed != nil {
		seed = *req.Seed
	}

	started := nowFn()
	gen, err := generation.New(tmpl, cat, seed, u.Config)
	if err != nil {
		u.recordFailure(err)
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	res, err := gen.Generate()
	if err != nil {
		u.recordFailure(err)
		if errors.Is(err, catalog.ErrUnknownRace) || errors.Is(err, catalog.ErrInvalidFilter) {
			return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return Response{}, fmt.Errorf("generate %s with seed %d: %w", name, seed, err)
	}
	created := nowFn().UTC()
	elapsed := created.Sub(started)

	bundle, err := BuildBundle(id.String(), name, res, created)
	if err != nil {
		u.recordFailure(err)
		return Response{}, err
	}
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.Maps.Save(txCtx, bundle)
	})
	if err != nil {
		u.recordFailure(err)
		return Response{}, fmt.Errorf("save map %s: %w", id, err)
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(name, elapsed)
	}

	return Response{
		MapID:     id.String(),
		Seed:      seed,
		Template:  name,
		Size:      res.Map.Grid.Size(),
		Objects:   res.Map.ObjectCount(),
		Roads:     len(res.Map.Roads),
		Zones:     res.Zones,
		ElapsedMS: elapsed.Milliseconds(),
		CreatedAt: created,
	}, nil
}

func (u UseCase) recordFailure(err error) {
	if u.Metrics != nil {
		u.Metrics.RecordFailure(FailureReason(err))
	}
}

// FailureReason classifies a generation error for metrics and API codes.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, generation.ErrLackOfSpace):
		return "lack_of_space"
	case errors.Is(err, composer.ErrComposition):
		return "composition"
	case errors.Is(err, generation.ErrEntranceBlocked):
		return "entrance_blocked"
	case errors.Is(err, template.ErrInvalidTemplate), errors.Is(err, catalog.ErrUnknownRace),
		errors.Is(err, catalog.ErrInvalidFilter):
		return "invalid_template"
	case errors.Is(err, ports.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
