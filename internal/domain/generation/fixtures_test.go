package generation

import (
	"testing"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Data{
		Units: []catalog.UnitInfo{
			{ID: "lord", Name: "Lord", Level: 1, Value: 50, HP: 100, Leadership: 3, Reach: catalog.ReachAdjacent, Leader: true, Subrace: world.SubraceHuman, Race: world.RaceHuman, Move: 20},
			{ID: "ranger", Level: 1, Value: 80, HP: 70, Leadership: 2, Reach: catalog.ReachArcher, Leader: true, Subrace: world.SubraceNeutral, Race: world.RaceNeutral, Move: 20},
			{ID: "ogre_lord", Level: 2, Value: 150, HP: 300, Leadership: 3, Reach: catalog.ReachAdjacent, Big: true, Leader: true, Subrace: world.SubraceNeutral, Race: world.RaceNeutral, Move: 18},
			{ID: "guardian", Level: 5, Value: 400, HP: 900, Reach: catalog.ReachAdjacent, Big: true, Subrace: world.SubraceHuman, Race: world.RaceHuman},
			{ID: "squire", Level: 1, Value: 20, HP: 80, Reach: catalog.ReachAdjacent, Subrace: world.SubraceHuman, Race: world.RaceHuman, EnrollCost: 50},
			{ID: "archer", Level: 1, Value: 30, HP: 45, Reach: catalog.ReachArcher, Subrace: world.SubraceHuman, Race: world.RaceHuman, EnrollCost: 80},
			{ID: "goblin", Level: 1, Value: 25, HP: 50, Reach: catalog.ReachAdjacent, Subrace: world.SubraceNeutral, Race: world.RaceNeutral, EnrollCost: 40},
			{ID: "troll", Level: 2, Value: 90, HP: 220, Reach: catalog.ReachAdjacent, Big: true, Subrace: world.SubraceNeutral, Race: world.RaceNeutral, EnrollCost: 200},
		},
		Items: []catalog.ItemInfo{
			{ID: "sword", Type: catalog.ItemWeapon, Value: 100},
			{ID: "ring", Type: catalog.ItemJewel, Value: 200},
			{ID: "potion", Type: catalog.ItemPotionHeal, Value: 50},
			{ID: "gem", Type: catalog.ItemValuable, Value: 300},
			{ID: "relic", Type: catalog.ItemSpecial, Value: 500},
			{ID: "scroll", Type: catalog.ItemScroll, Value: 75},
		},
		Spells: []catalog.SpellInfo{
			{ID: "bolt", Type: catalog.SpellAttack, Level: 1, Value: 100},
			{ID: "heal", Type: catalog.SpellHeal, Level: 1, Value: 100},
			{ID: "storm", Type: catalog.SpellAttack, Level: 2, Value: 200},
			{ID: "haste", Type: catalog.SpellBoost, Level: 1, Value: 80},
		},
		Landmarks: []catalog.LandmarkInfo{
			{ID: "stump", Size: world.Pos(1, 1), Type: catalog.LandmarkMisc, Race: world.RaceNeutral},
			{ID: "rock", Size: world.Pos(2, 2), Type: catalog.LandmarkTerrain, Race: world.RaceNeutral},
			{ID: "tower", Size: world.Pos(3, 3), Type: catalog.LandmarkBuilding, Race: world.RaceNeutral},
			{ID: "banner", Size: world.Pos(1, 1), Type: catalog.LandmarkStructure, Race: world.RaceHuman},
			{ID: "peak", Size: world.Pos(3, 3), Type: catalog.LandmarkTerrain, Mountain: true, Race: world.RaceNeutral},
		},
		Mountains: []catalog.MountainInfo{
			{Image: 0, Size: 1, Race: world.RaceNeutral},
			{Image: 1, Size: 2, Race: world.RaceNeutral},
			{Image: 2, Size: 3, Race: world.RaceNeutral},
			{Image: 3, Size: 5, Race: world.RaceNeutral},
		},
		Races: []catalog.RaceInfo{
			{
				Race:           world.RaceHuman,
				Terrain:        world.TerrainHuman,
				NativeResource: world.ResourceLifeMana,
				Subrace:        world.SubraceHuman,
				GuardianUnitID: "guardian",
				LeaderIDs:      []string{"lord"},
				Spells:         []string{"heal"},
			},
			{
				Race:           world.RaceNeutral,
				Terrain:        world.TerrainNeutral,
				NativeResource: world.ResourceGold,
				Subrace:        world.SubraceNeutral,
			},
		},
		LeaderNames: []string{"Ardan", "Belis"},
		CityNames:   []string{"Northwatch", "Greyford"},
		SiteTexts: map[world.SiteKind][]catalog.SiteText{
			world.SiteMerchant:  {{Name: "Bazaar", Description: "Goods from afar"}},
			world.SiteMage:      {{Name: "Tower", Description: "Spells for sale"}},
			world.SiteMercenary: {{Name: "Camp", Description: "Swords for hire"}},
			world.SiteTrainer:   {{Name: "Yard", Description: "Drills"}},
			world.SiteMarket:    {{Name: "Exchange", Description: "Resources"}},
		},
		RuinTexts:          []catalog.SiteText{{Name: "Old keep"}},
		LeadershipModifier: "leadership",
		Images: catalog.Images{
			Sites: map[world.SiteKind][]int{
				world.SiteMerchant:  {1, 2},
				world.SiteMage:      {3},
				world.SiteMercenary: {4},
				world.SiteTrainer:   {5},
				world.SiteMarket:    {6},
			},
			Ruins:     []int{7, 8},
			Bags:      []int{9},
			WaterBags: []int{10},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func ptr[T any](v T) *T { return &v }

// duelTemplate has a human start zone west and a treasure zone east.
func duelTemplate() template.MapTemplate {
	return template.MapTemplate{
		Name: "duel",
		Size: 64,
		Settings: template.Settings{
			Forest:       40,
			StartingGold: 500,
		},
		Zones: []template.ZoneOptions{
			{
				ID:         1,
				Type:       template.ZonePlayerStart,
				Size:       1,
				Center:     &template.Center{X: 0.25, Y: 0.5},
				PlayerRace: world.RaceHuman,
				Capital: template.CapitalInfo{
					Garrison: template.GroupInfo{Value: world.NewRandomValue(100, 200)},
					Spells:   []string{"bolt"},
				},
				Border:    template.BorderSemiOpen,
				GapChance: ptr(50),
				Mines:     map[world.Resource]int{world.ResourceGold: 1, world.ResourceLifeMana: 1},
				Stacks: []template.StackGroupInfo{
					{GroupInfo: template.GroupInfo{Value: world.NewRandomValue(150, 300)}, Count: 3},
				},
				Bags: template.BagsInfo{
					Count: 2,
					Loot:  template.LootInfo{Value: world.NewRandomValue(100, 200)},
				},
			},
			{
				ID:     2,
				Type:   template.ZoneTreasure,
				Size:   1,
				Center: &template.Center{X: 0.75, Y: 0.5},
				Mines:  map[world.Resource]int{world.ResourceDeathMana: 1},
				Cities: []template.CityInfo{
					{Tier: 2, Garrison: template.GroupInfo{Value: world.NewRandomValue(50, 150)}, Stack: template.GroupInfo{Value: world.NewRandomValue(100, 200)}},
					{Tier: 1},
				},
				Ruins: []template.RuinInfo{{
					Guard: template.GroupInfo{Value: world.NewRandomValue(100, 200)},
					Gold:  world.NewRandomValue(100, 200),
					Loot:  template.LootInfo{Value: world.NewRandomValue(100, 300)},
				}},
				Merchants:   []template.MerchantInfo{{Goods: template.LootInfo{Value: world.NewRandomValue(200, 400)}}},
				Mages:       []template.MageInfo{{Value: world.NewRandomValue(100, 300)}},
				Mercenaries: []template.MercenaryInfo{{Value: world.NewRandomValue(100, 200)}},
				Trainers:    []template.TrainerInfo{{}},
				Markets: []template.MarketInfo{{
					ExchangeRates: "G1",
					Stock:         []template.MarketStock{{Resource: world.ResourceGold, Value: world.NewRandomValue(100, 200)}},
				}},
			},
		},
		Connections: []template.Connection{
			{From: 1, To: 2, Guard: template.GroupInfo{Value: world.NewRandomValue(100, 200)}},
		},
	}
}

// openTemplate is a single empty zone covering the whole map.
func openTemplate(size int) template.MapTemplate {
	return template.MapTemplate{
		Name:  "open",
		Size:  size,
		Zones: []template.ZoneOptions{{ID: 1, Type: template.ZoneTreasure}},
	}
}

// carved returns a generator whose zones are carved with every tile still
// possible.
func carved(t *testing.T, tmpl template.MapTemplate) *Generator {
	t.Helper()
	g, err := New(tmpl, testCatalog(t), 7, Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := g.registerPlayers(); err != nil {
		t.Fatalf("players: %v", err)
	}
	if err := g.carveZones(); err != nil {
		t.Fatalf("carve: %v", err)
	}
	return g
}

func setAll(g *Generator, s TileState) {
	size := g.Map.Grid.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			g.occ.SetOccupied(world.Pos(x, y), s)
		}
	}
}

func generate(t *testing.T, tmpl template.MapTemplate, seed uint64) *Result {
	t.Helper()
	g, err := New(tmpl, testCatalog(t), seed, Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := g.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return res
}
