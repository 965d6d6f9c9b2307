package staticcatalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"scenariogen/internal/domain/catalog"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Provider loads the catalog once, from File when set, otherwise from the
// built-in default catalog. The catalog is read-only and shared.
type Provider struct {
	File string

	once sync.Once
	cat  *catalog.Catalog
	err  error
}

func (p *Provider) Catalog(_ context.Context) (*catalog.Catalog, error) {
	p.once.Do(func() {
		p.cat, p.err = p.load()
	})
	return p.cat, p.err
}

func (p *Provider) load() (*catalog.Catalog, error) {
	src, name := defaultCatalog, "built-in catalog"
	if p.File != "" {
		b, err := os.ReadFile(p.File)
		if err != nil {
			return nil, err
		}
		src, name = b, p.File
	}
	return Parse(src, name)
}

func Parse(b []byte, name string) (*catalog.Catalog, error) {
	var data catalog.Data
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrInvalidCatalog, name, err)
	}
	cat, err := catalog.New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cat, nil
}
