package ports

import (
	"context"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/template"
)

type TemplateSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Size        int    `json:"size"`
	Zones       int    `json:"zones"`
}

type TemplateProvider interface {
	Get(ctx context.Context, name string) (template.MapTemplate, error)
	List(ctx context.Context) ([]TemplateSummary, error)
}

type CatalogProvider interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}
