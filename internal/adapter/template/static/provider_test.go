package statictemplate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scenariogen/internal/app/ports"
	"scenariogen/internal/domain/template"
)

const duelJSON = `{
  "description": "two players",
  "size": 48,
  "settings": {"forest": 40},
  "zones": [
    {"id": 1, "type": "player_start", "race": "human"},
    {"id": 2, "type": "treasure", "bags": {"count": 2, "loot": {"value": [100, 200]}}}
  ],
  "connections": [{"from": 1, "to": 2}]
}`

func TestProvider_GetAndList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "duel.json"), duelJSON)
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")

	p := Provider{Root: root}
	tmpl, err := p.Get(context.Background(), "duel")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tmpl.Name != "duel" || tmpl.Size != 48 || len(tmpl.Zones) != 2 {
		t.Fatalf("unexpected template %+v", tmpl)
	}
	if tmpl.Zones[1].Bags.Count != 2 || tmpl.Zones[1].Bags.Loot.Value.Max != 200 {
		t.Fatalf("unexpected bags %+v", tmpl.Zones[1].Bags)
	}

	list, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "duel" || list[0].Zones != 2 || list[0].Description != "two players" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestProvider_MissingTemplateIsNotFound(t *testing.T) {
	p := Provider{Root: t.TempDir()}
	if _, err := p.Get(context.Background(), "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProvider_BrokenTemplateIsInvalid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken.json"), `{"size": "big"}`)

	p := Provider{Root: root}
	if _, err := p.Get(context.Background(), "broken"); !errors.Is(err, template.ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestProvider_RejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Dir(root)
	outsidePath := filepath.Join(parent, "outside.json")
	writeFile(t, outsidePath, duelJSON)
	t.Cleanup(func() { _ = os.Remove(outsidePath) })

	p := Provider{Root: root}
	for _, name := range []string{"../outside", "/etc/passwd", ""} {
		if _, err := p.Get(context.Background(), name); !errors.Is(err, ErrInvalidTemplatePath) {
			t.Fatalf("expected %q rejected, got %v", name, err)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestProvider_ShippedTemplatesNormalize(t *testing.T) {
	p := Provider{Root: filepath.Join("..", "..", "..", "..", "templates")}
	list, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected shipped templates")
	}
	for _, s := range list {
		tmpl, err := p.Get(context.Background(), s.Name)
		if err != nil {
			t.Fatalf("get %s: %v", s.Name, err)
		}
		if err := tmpl.Normalize(); err != nil {
			t.Fatalf("normalize %s: %v", s.Name, err)
		}
	}
}
