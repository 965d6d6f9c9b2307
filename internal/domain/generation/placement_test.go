package generation

import (
	"errors"
	"testing"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

func TestFindPlaceForObjectPrefersFarthestTile(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	z.updateDistances(world.Pos(3, 3))

	e := world.NewMapElement(world.Pos(2, 2))
	pos, ok := z.findPlaceForObject(z.tiles, e, 1, false)
	if !ok {
		t.Fatalf("expected a place")
	}
	if pos != world.Pos(21, 21) {
		t.Fatalf("expected farthest tile (21,21), got %v", pos)
	}
	if _, ok := z.findPlaceForObject(z.tiles, e, 10000, false); ok {
		t.Fatalf("expected no place beyond the minimum distance")
	}
}

func TestFindPlaceForObjectSkipsTakenFootprints(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	z.updateDistances(world.Pos(3, 3))
	g.occ.SetOccupied(world.Pos(22, 22), TileUsed)

	e := world.NewMapElement(world.Pos(2, 2))
	pos, ok := z.findPlaceForObject(z.tiles, e, 1, false)
	if !ok {
		t.Fatalf("expected a place")
	}
	if pos == world.Pos(21, 21) {
		t.Fatalf("expected entrance on a used tile to be rejected")
	}
	e.Position = pos
	for _, p := range append(e.BlockedPositions(), e.Entrance()) {
		if g.occ.IsBlocked(p) {
			t.Fatalf("footprint tile %v already taken", p)
		}
	}
}

func TestTryToPlaceReservesFootprint(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	z.addFreePath(z.pos)

	e := world.NewMapElement(world.Pos(3, 3))
	if got := z.tryToPlaceObjectAndConnectToPath(&e, world.Pos(5, 5)); got != placeSuccess {
		t.Fatalf("expected success, got %s", got)
	}
	if e.Position != world.Pos(5, 5) {
		t.Fatalf("expected element moved to (5,5), got %v", e.Position)
	}
	for _, p := range append(e.BlockedPositions(), e.Entrance()) {
		if !g.occ.ShouldBeBlocked(p) {
			t.Fatalf("expected %v reserved, got %s", p, g.occ.State(p))
		}
	}
	access := z.accessibleOffset(e, e.Position)
	if !g.occ.IsFree(access) {
		t.Fatalf("expected access tile %v free, got %s", access, g.occ.State(access))
	}
}

func TestTryToPlaceSealsOffUnreachableSpot(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	setAll(g, TileBlocked)
	for x := 3; x <= 7; x++ {
		for y := 3; y <= 7; y++ {
			g.occ.SetOccupied(world.Pos(x, y), TilePossible)
		}
	}
	g.occ.SetOccupied(world.Pos(12, 12), TileFree)

	e := world.NewMapElement(world.Pos(2, 2))
	if got := z.tryToPlaceObjectAndConnectToPath(&e, world.Pos(4, 4)); got != placeSealedOff {
		t.Fatalf("expected sealed off, got %s", got)
	}
	if !g.occ.IsPossible(world.Pos(4, 4)) {
		t.Fatalf("expected footprint restored, got %s", g.occ.State(world.Pos(4, 4)))
	}
	if !g.occ.ShouldBeBlocked(world.Pos(7, 7)) {
		t.Fatalf("expected pocket sealed, got %s", g.occ.State(world.Pos(7, 7)))
	}
}

func TestFindAndConnectReportsLackOfSpace(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	setAll(g, TileBlocked)

	_, err := z.findAndConnect(world.Pos(3, 3), 1, "ruins")
	if !errors.Is(err, ErrLackOfSpace) {
		t.Fatalf("expected lack of space, got %v", err)
	}
	var los *LackOfSpaceError
	if !errors.As(err, &los) || los.Category != "ruins" || los.ZoneID != z.ID {
		t.Fatalf("unexpected error details %v", err)
	}
}

func TestFindAndConnectPlacesCity(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	z.addFreePath(z.pos)
	z.updateDistances(z.pos)

	pos, err := z.findAndConnect(world.Pos(4, 4), 8, "towns")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	city := &world.Fortification{ID: g.Map.CreateID(world.ObjectFortification), MapElement: world.NewMapElement(world.Pos(4, 4)), Tier: 1}
	if err := z.placeObject(city, pos); err != nil {
		t.Fatalf("place: %v", err)
	}
	entrance := city.MapElement.Entrance()
	if !g.Map.Grid.InBounds(entrance) {
		t.Fatalf("entrance %v out of bounds", entrance)
	}
	for _, p := range append(city.MapElement.BlockedPositions(), entrance) {
		if !g.occ.IsUsed(p) {
			t.Fatalf("expected %v used, got %s", p, g.occ.State(p))
		}
	}
}

func TestPlaceObjectRejectsOutOfBounds(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	ruin := &world.Ruin{ID: g.Map.CreateID(world.ObjectRuin), MapElement: world.NewMapElement(world.Pos(3, 3))}

	err := z.placeObject(ruin, world.Pos(22, 22))
	if !errors.Is(err, ErrGeometry) {
		t.Fatalf("expected geometry error, got %v", err)
	}
	if g.Map.ObjectCount() != 2 {
		t.Fatalf("expected only the neutral player records, got %d objects", g.Map.ObjectCount())
	}
}

func TestPlaceObjectMarksFootprintAndRoadNode(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	site := &world.Site{ID: g.Map.CreateID(world.ObjectSite), MapElement: world.NewMapElement(world.Pos(3, 3))}

	if err := z.placeObject(site, world.Pos(5, 5)); err != nil {
		t.Fatalf("place: %v", err)
	}
	entrance := world.Pos(7, 7)
	if !g.occ.IsUsed(entrance) || !g.occ.IsUsed(world.Pos(5, 5)) {
		t.Fatalf("expected footprint used")
	}
	if !z.roadNodes.Has(entrance) {
		t.Fatalf("expected entrance registered as road node")
	}
	if g.Map.Grid.Tile(entrance).Visitable != site.ID {
		t.Fatalf("expected visitable entrance")
	}
	if d := g.occ.NearestObjectDistance(world.Pos(10, 5)); d != 25 {
		t.Fatalf("expected nearest distance 25, got %v", d)
	}
}

func TestGuardObjectWithoutGuardFreesAccess(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	e := world.NewMapElement(world.Pos(3, 3))
	e.Position = world.Pos(5, 5)
	for _, p := range append(e.BlockedPositions(), e.Entrance()) {
		g.occ.SetOccupied(p, TileUsed)
	}

	ok, err := z.guardObject(e, template.GroupInfo{})
	if err != nil || !ok {
		t.Fatalf("expected unguarded object accepted, got %v %v", ok, err)
	}
	for _, p := range z.accessibleTiles(e) {
		if !g.occ.IsFree(p) {
			t.Fatalf("expected access tile %v free, got %s", p, g.occ.State(p))
		}
	}
	if g.Map.ObjectCount() != 2 {
		t.Fatalf("expected no guard stack, got %d objects", g.Map.ObjectCount())
	}
}

func TestGuardObjectPlacesNeutralStack(t *testing.T) {
	g := carved(t, openTemplate(24))
	z := g.zones[0]
	e := world.NewMapElement(world.Pos(3, 3))
	e.Position = world.Pos(5, 5)
	for _, p := range append(e.BlockedPositions(), e.Entrance()) {
		g.occ.SetOccupied(p, TileUsed)
	}
	guard := template.GroupInfo{Value: world.NewRandomValue(100, 150), Owner: world.RaceNeutral, Order: world.OrderGuard}
	pos := z.accessibleOffset(e, e.Position)

	ok, err := z.guardObject(e, guard)
	if err != nil || !ok {
		t.Fatalf("guard: %v %v", ok, err)
	}
	id := g.Map.Grid.Tile(pos).Visitable
	stack, found := world.FindAs[*world.Stack](g.Map, id)
	if !found {
		t.Fatalf("expected guard stack at %v", pos)
	}
	if stack.Order != world.OrderGuard || stack.Owner != g.players[world.RaceNeutral].ID {
		t.Fatalf("unexpected guard %+v", stack)
	}
	leader, _ := world.FindAs[*world.Unit](g.Map, stack.Leader)
	if leader == nil || (leader.Name != "Ardan" && leader.Name != "Belis") {
		t.Fatalf("expected neutral leader named from catalog, got %+v", leader)
	}
}

func TestMerchantGoodsSkipValuables(t *testing.T) {
	g := carved(t, openTemplate(24))
	loot := template.LootInfo{Value: world.NewRandomValue(2000, 2000)}

	for i := 0; i < 10; i++ {
		entries, err := g.createLoot(loot, true)
		if err != nil {
			t.Fatalf("loot: %v", err)
		}
		if len(entries) == 0 {
			t.Fatalf("expected goods")
		}
		for _, e := range entries {
			info, _ := g.cat.Item(e.ItemID)
			if info.Type == catalog.ItemValuable || info.Type == catalog.ItemSpecial {
				t.Fatalf("merchant got %s item %s", info.Type, info.ID)
			}
		}
	}
}

func TestCreateLootKeepsRequiredItems(t *testing.T) {
	g := carved(t, openTemplate(24))
	loot := template.LootInfo{RequiredItems: []template.RequiredItem{{ID: "relic", Amount: world.Fixed(2)}}}

	entries, err := g.createLoot(loot, false)
	if err != nil {
		t.Fatalf("loot: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemID != "relic" || entries[0].Amount != 2 {
		t.Fatalf("expected two relics only, got %+v", entries)
	}
}

func TestSpreadLootSharesRequiredItems(t *testing.T) {
	g := carved(t, openTemplate(24))
	loot := template.LootInfo{RequiredItems: []template.RequiredItem{{ID: "ring", Amount: world.Fixed(3)}}}

	shares, err := g.spreadLoot(loot, 3)
	if err != nil {
		t.Fatalf("spread: %v", err)
	}
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	total := 0
	for _, share := range shares {
		for _, e := range share {
			total += e.Amount
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 rings spread, got %d", total)
	}
}
