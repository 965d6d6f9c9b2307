package statictemplate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/template"
)

const ext = ".json"

// Provider reads map templates from <Root>/<name>.json.
type Provider struct {
	Root string
}

func (p Provider) Get(_ context.Context, name string) (template.MapTemplate, error) {
	path, err := secureJoin(p.Root, name+ext)
	if err != nil {
		return template.MapTemplate{}, err
	}
	return readTemplate(path, name)
}

func (p Provider) List(_ context.Context) ([]ports.TemplateSummary, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, err
	}
	out := make([]ports.TemplateSummary, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		tmpl, err := readTemplate(filepath.Join(p.Root, e.Name()), name)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.TemplateSummary{
			Name:        name,
			Description: tmpl.Description,
			Size:        tmpl.Size,
			Zones:       len(tmpl.Zones),
		})
	}
	return out, nil
}

func readTemplate(path, name string) (template.MapTemplate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return template.MapTemplate{}, fmt.Errorf("template %s: %w", name, ports.ErrNotFound)
		}
		return template.MapTemplate{}, err
	}
	var tmpl template.MapTemplate
	if err := json.Unmarshal(b, &tmpl); err != nil {
		return template.MapTemplate{}, fmt.Errorf("%w: %s: %v", template.ErrInvalidTemplate, name, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = name
	}
	return tmpl, nil
}

var ErrInvalidTemplatePath = fmt.Errorf("%w: invalid template name", template.ErrInvalidTemplate)

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" || rel == ext {
		return "", ErrInvalidTemplatePath
	}
	if filepath.IsAbs(rel) || strings.ContainsAny(rel, `/\`) {
		return "", ErrInvalidTemplatePath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidTemplatePath
	}
	return target, nil
}
