package staticcatalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/world"
)

func TestProvider_BuiltInCatalog(t *testing.T) {
	p := &Provider{}
	cat, err := p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, race := range []world.Race{world.RaceHuman, world.RaceDwarf, world.RaceUndead, world.RaceHeretic, world.RaceElf, world.RaceNeutral} {
		if _, err := cat.Race(race); err != nil {
			t.Fatalf("expected race %s: %v", race, err)
		}
	}
	human, _ := cat.Race(world.RaceHuman)
	for _, id := range append([]string{human.GuardianUnitID}, human.LeaderIDs...) {
		if _, ok := cat.Unit(id); !ok {
			t.Fatalf("expected human unit %s in catalog", id)
		}
	}
	if len(cat.Leaders()) == 0 || len(cat.Soldiers()) == 0 {
		t.Fatalf("expected leaders and soldiers")
	}
	sizes, _ := cat.MountainsBySize()
	if len(sizes) == 0 || sizes[0] != 5 {
		t.Fatalf("expected mountain sizes largest first, got %v", sizes)
	}
	if len(cat.LeaderNames()) == 0 || len(cat.SiteTexts(world.SiteMerchant)) == 0 {
		t.Fatalf("expected names and site texts")
	}

	again, _ := p.Catalog(context.Background())
	if again != cat {
		t.Fatalf("expected the catalog to be loaded once")
	}
}

func TestProvider_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"races":[{"race":"neutral","terrain":"neutral","native_resource":"gold","subrace":"neutral"}],
	"units":[{"id":"wolf","value":30,"race":"neutral","subrace":"neutral_wolf"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := (&Provider{File: path}).Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, ok := cat.Unit("wolf"); !ok {
		t.Fatalf("expected wolf from file")
	}
	if _, ok := cat.Unit("human_paladin"); ok {
		t.Fatalf("expected built-in units not merged")
	}
}

func TestParse_RejectsBrokenCatalog(t *testing.T) {
	if _, err := Parse([]byte(`{"units": 5}`), "broken"); !errors.Is(err, catalog.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	if _, err := Parse([]byte(`{"units":[{"id":"a"},{"id":"a"}]}`), "dup"); !errors.Is(err, catalog.ErrInvalidCatalog) {
		t.Fatalf("expected duplicate unit rejected, got %v", err)
	}
}

func TestProvider_MissingFile(t *testing.T) {
	p := &Provider{File: filepath.Join(t.TempDir(), "none.json")}
	if _, err := p.Catalog(context.Background()); err == nil {
		t.Fatalf("expected missing file error")
	}
}
