package generation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/composer"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

var ErrGeneratorUsed = errors.New("generator already used")

type Config struct {
	Composer composer.Config
	// FractalMinDistance is the squared distance kept between free path nodes.
	FractalMinDistance float64
	// Landmarks and Forests are rolled once per decorated object.
	Landmarks world.RandomValue[int]
	Forests   world.RandomValue[int]
	// VerifyAccess checks object entrances while obstacles are created.
	VerifyAccess bool
	Logger       *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Composer:           composer.DefaultConfig(),
		FractalMinDistance: 75,
		Landmarks:          world.NewRandomValue(0, 2),
		Forests:            world.NewRandomValue(2, 6),
	}
}

// Generator builds one scenario map from a template, a catalog and a seed.
// It is single use and not safe for concurrent use.
type Generator struct {
	cfg      Config
	tmpl     template.MapTemplate
	cat      *catalog.Catalog
	rand     *rng.Random
	log      *slog.Logger
	composer *composer.Composer

	Map *world.ScenarioMap
	occ *Occupancy

	zones    []*Zone
	zoneByID map[int]*Zone
	players  map[world.Race]*world.Player
	subraces map[world.Race]*world.SubraceRecord

	forbiddenUnits  mapset.Set[string]
	forbiddenItems  mapset.Set[string]
	forbiddenSpells mapset.Set[string]
	unitFilters     map[string]catalog.UnitFilter
	itemFilters     map[string]catalog.ItemFilter
	spellFilters    map[string]catalog.SpellFilter
	filterErr       error

	used bool
}

// New validates the template, normalizing it in place, and prepares a
// generator for seed.
func New(tmpl template.MapTemplate, cat *catalog.Catalog, seed uint64, cfg Config) (*Generator, error) {
	if err := tmpl.Normalize(); err != nil {
		return nil, err
	}
	def := DefaultConfig()
	if cfg.FractalMinDistance <= 0 {
		cfg.FractalMinDistance = def.FractalMinDistance
	}
	if !cfg.Landmarks.IsSet() {
		cfg.Landmarks = def.Landmarks
	}
	if !cfg.Forests.IsSet() {
		cfg.Forests = def.Forests
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	g := &Generator{
		cfg:             cfg,
		tmpl:            tmpl,
		cat:             cat,
		rand:            rng.New(seed),
		log:             log.With("seed", seed),
		Map:             world.NewScenarioMap(tmpl.Name, tmpl.Size, seed),
		zoneByID:        map[int]*Zone{},
		players:         map[world.Race]*world.Player{},
		subraces:        map[world.Race]*world.SubraceRecord{},
		forbiddenUnits:  setOf(tmpl.Settings.ForbiddenUnits),
		forbiddenItems:  setOf(tmpl.Settings.ForbiddenItems),
		forbiddenSpells: setOf(tmpl.Settings.ForbiddenSpells),
		unitFilters:     map[string]catalog.UnitFilter{},
		itemFilters:     map[string]catalog.ItemFilter{},
		spellFilters:    map[string]catalog.SpellFilter{},
	}
	g.occ = NewOccupancy(g.Map.Grid)
	g.composer = composer.New(cat, g.rand, cfg.Composer, g.log, catalog.ForbiddenUnits(g.forbiddenUnits))
	for _, opts := range tmpl.Zones {
		z := newZone(g, opts)
		g.zones = append(g.zones, z)
		g.zoneByID[z.ID] = z
	}
	return g, nil
}

// Generate runs the whole pipeline: players, zone carving, towns,
// connections, borders, zone contents, obstacles and roads.
func (g *Generator) Generate() (*Result, error) {
	if g.used {
		return nil, ErrGeneratorUsed
	}
	g.used = true
	start := time.Now()

	if err := g.registerPlayers(); err != nil {
		return nil, err
	}
	if err := g.carveZones(); err != nil {
		return nil, err
	}
	for _, z := range g.zones {
		if err := g.checkFilters(z.initTowns()); err != nil {
			return nil, fmt.Errorf("zone %d towns: %w", z.ID, err)
		}
	}
	if err := g.checkFilters(g.createConnections()); err != nil {
		return nil, err
	}
	for _, z := range g.zones {
		z.createBorder()
	}
	for _, z := range g.zones {
		if err := g.checkFilters(z.fill()); err != nil {
			return nil, fmt.Errorf("zone %d: %w", z.ID, err)
		}
	}
	for _, z := range g.zones {
		if err := z.createObstacles(); err != nil {
			return nil, fmt.Errorf("zone %d obstacles: %w", z.ID, err)
		}
	}
	for _, z := range g.zones {
		z.connectRoads()
	}
	if err := g.checkAccess(); err != nil {
		return nil, err
	}

	res := g.result()
	g.log.Info("map generated",
		"name", g.Map.Name,
		"size", g.Map.Grid.Size(),
		"zones", len(g.zones),
		"objects", g.Map.ObjectCount(),
		"roads", len(g.Map.Roads),
		"elapsed", time.Since(start),
	)
	return res, nil
}

// registerPlayers creates the neutral player first, then one player per
// start zone in template order.
func (g *Generator) registerPlayers() error {
	if _, _, err := g.addPlayer(world.RaceNeutral, world.SubraceNeutral, 0); err != nil {
		return err
	}
	number := 1
	for _, z := range g.zones {
		if !z.Options.Type.IsStart() {
			continue
		}
		info, err := g.cat.Race(z.Options.PlayerRace)
		if err != nil {
			return fmt.Errorf("zone %d: %w", z.ID, err)
		}
		player, _, err := g.addPlayer(info.Race, info.Subrace, number)
		if err != nil {
			return err
		}
		player.Gold = g.tmpl.Settings.StartingGold
		player.Spells = append(player.Spells, info.Spells...)
		player.Buildings = append(player.Buildings, info.Buildings...)
		z.owner = player
		number++
	}
	return nil
}

func (g *Generator) addPlayer(race world.Race, subrace world.Subrace, number int) (*world.Player, *world.SubraceRecord, error) {
	player := &world.Player{ID: g.Map.CreateID(world.ObjectPlayer), Race: race}
	record := &world.SubraceRecord{
		ID:      g.Map.CreateID(world.ObjectSubrace),
		Subrace: subrace,
		Player:  player.ID,
		Number:  number,
	}
	player.Subrace = record.ID
	if err := g.Map.Insert(player); err != nil {
		return nil, nil, err
	}
	if err := g.Map.Insert(record); err != nil {
		return nil, nil, err
	}
	g.players[race] = player
	g.subraces[race] = record
	return player, record, nil
}

// owner resolves a race to its player, falling back to the neutral one.
func (g *Generator) owner(race world.Race) (*world.Player, *world.SubraceRecord) {
	if p, ok := g.players[race]; ok {
		return p, g.subraces[race]
	}
	return g.players[world.RaceNeutral], g.subraces[world.RaceNeutral]
}

func (g *Generator) unitFilter(src string) (catalog.UnitFilter, error) {
	return cached(g.unitFilters, src, g.filterFailed, catalog.CompileUnitFilter)
}

func (g *Generator) itemFilter(src string) (catalog.ItemFilter, error) {
	return cached(g.itemFilters, src, g.filterFailed, catalog.CompileItemFilter)
}

func (g *Generator) spellFilter(src string) (catalog.SpellFilter, error) {
	return cached(g.spellFilters, src, g.filterFailed, catalog.CompileSpellFilter)
}

// filterFailed keeps the first filter evaluation error.
func (g *Generator) filterFailed(err error) {
	if g.filterErr == nil {
		g.filterErr = err
		g.log.Warn("filter evaluation failed", "error", err)
	}
}

// checkFilters returns the recorded filter error, if any, in place of err.
func (g *Generator) checkFilters(err error) error {
	if g.filterErr != nil {
		return g.filterErr
	}
	return err
}

func cached[F any](cache map[string]F, src string, onError func(error), compile func(string, func(error)) (F, error)) (F, error) {
	if f, ok := cache[src]; ok {
		return f, nil
	}
	f, err := compile(src, onError)
	if err != nil {
		return f, err
	}
	cache[src] = f
	return f, nil
}

func setOf(ids []string) mapset.Set[string] {
	s := mapset.New[string]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}

// Zone returns the working state of a zone after generation.
func (g *Generator) Zone(id int) (*Zone, bool) {
	z, ok := g.zoneByID[id]
	return z, ok
}

func (g *Generator) Occupancy() *Occupancy {
	return g.occ
}
