package templates

import (
	"context"
	"sort"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/template"
)

type UseCase struct {
	Provider ports.TemplateProvider
}

// List returns the available templates sorted by name.
func (u UseCase) List(ctx context.Context) ([]ports.TemplateSummary, error) {
	items, err := u.Provider.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (u UseCase) Get(ctx context.Context, name string) (template.MapTemplate, error) {
	return u.Provider.Get(ctx, name)
}
