package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"scenariogen/internal/app/generate"
	"scenariogen/internal/app/mapquery"
	"scenariogen/internal/app/ports"
	"scenariogen/internal/app/templates"
	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/composer"
	"scenariogen/internal/domain/generation"
	"scenariogen/internal/domain/template"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	GenerateUC  generate.UseCase
	MapsUC      mapquery.UseCase
	TemplatesUC templates.UseCase
	KPI         kpiSnapshotProvider
	// CORSOrigins limits browser origins; empty allows any.
	CORSOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigins))

	s.POST("/api/maps", h.generate)
	maps := s.Group("/api/maps")
	maps.GET("/:id", h.mapSummary)
	maps.GET("/:id/tiles", h.mapTiles)
	maps.GET("/:id/objects", h.mapObjects)

	s.GET("/api/templates", h.listTemplates)
	s.GET("/api/templates/:name", h.getTemplate)
	s.GET("/ops/kpi", h.kpi)
}

type generateRequest struct {
	Template string  `json:"template"`
	Seed     *uint64 `json:"seed,omitempty"`
}

func (h Handler) generate(c context.Context, ctx *app.RequestContext) {
	var body generateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.GenerateUC.Execute(c, generate.Request{
		Template: body.Template,
		Seed:     body.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) mapSummary(c context.Context, ctx *app.RequestContext) {
	resp, err := h.MapsUC.Summary(c, mapquery.Request{MapID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) mapTiles(c context.Context, ctx *app.RequestContext) {
	resp, err := h.MapsUC.Tiles(c, mapquery.Request{MapID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) mapObjects(c context.Context, ctx *app.RequestContext) {
	resp, err := h.MapsUC.Objects(c, mapquery.ObjectsRequest{
		MapID: ctx.Param("id"),
		Kind:  string(ctx.Query("kind")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listTemplates(c context.Context, ctx *app.RequestContext) {
	items, err := h.TemplatesUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"templates": items})
}

func (h Handler) getTemplate(c context.Context, ctx *app.RequestContext) {
	name := strings.TrimSpace(ctx.Param("name"))
	if name == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_name", "invalid template name")
		return
	}
	tmpl, err := h.TemplatesUC.Get(c, name)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, tmpl)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, generate.ErrInvalidRequest),
		errors.Is(err, mapquery.ErrInvalidRequest),
		errors.Is(err, template.ErrInvalidTemplate),
		errors.Is(err, catalog.ErrInvalidFilter),
		errors.Is(err, catalog.ErrUnknownRace):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, generation.ErrLackOfSpace),
		errors.Is(err, composer.ErrComposition),
		errors.Is(err, generation.ErrEntranceBlocked):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "generation_failed", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
