package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/composer"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

var (
	capitalSize = world.Pos(5, 5)
	citySize    = world.Pos(4, 4)
	siteSize    = world.Pos(3, 3)
)

// frontCenter is the slot of capital guardians and leaders.
const frontCenter = 2

func (z *Zone) placeCapital() (*world.Fortification, error) {
	g := z.g
	capital := z.Options.Capital
	race := z.Options.PlayerRace
	player := z.owner
	subrace := g.subraces[race]
	raceInfo, err := g.cat.Race(race)
	if err != nil {
		return nil, err
	}

	fort := &world.Fortification{
		ID:         g.Map.CreateID(world.ObjectFortification),
		MapElement: world.NewMapElement(capitalSize),
		Capital:    true,
		Name:       capital.Name,
		Owner:      player.ID,
		Subrace:    subrace.ID,
		AiPriority: template.Priority(capital.AiPriority),
		GapMask:    capital.GapMask,
	}
	if fort.Name == "" {
		fort.Name = rng.Element(g.rand, g.cat.CityNames())
	}

	cons, err := g.constraints(capital.Garrison)
	if err != nil {
		return nil, err
	}
	positions := composer.AllPositions()
	var units composer.GroupUnits
	if capital.HasGuardian() {
		guardian, ok := g.cat.Unit(raceInfo.GuardianUnitID)
		if ok {
			units[frontCenter] = guardian
			positions.Remove(frontCenter)
			if guardian.Big {
				units[frontCenter+1] = guardian
				positions.Remove(frontCenter + 1)
			}
		} else {
			g.log.Warn("race has no guardian", "race", race, "unit", raceInfo.GuardianUnitID)
		}
	}
	if capital.Garrison.Value.IsSet() {
		values := composer.ConstrainedSum(world.GroupSlots, rng.Pick(g.rand, capital.Garrison.Value), g.rand)
		unused := g.composer.CreateGroup(0, positions, &units, values, cons)
		g.composer.TightenGroup(unused, positions, &units, cons)
	}
	if err := g.createGroupUnits(&fort.Garrison, units); err != nil {
		return nil, err
	}

	loot, err := g.createLoot(capital.Garrison.Loot, false)
	if err != nil {
		return nil, err
	}
	if err := g.addItems(&fort.Inventory, loot); err != nil {
		return nil, err
	}

	if len(raceInfo.LeaderIDs) == 0 {
		return nil, fmt.Errorf("%w: race %s has no leaders", catalog.ErrInvalidCatalog, race)
	}
	leaderInfo, ok := g.cat.Unit(raceInfo.LeaderIDs[0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown leader %s", catalog.ErrInvalidCatalog, raceInfo.LeaderIDs[0])
	}
	leader := &world.Unit{
		ID:     g.Map.CreateID(world.ObjectUnit),
		UnitID: leaderInfo.ID,
		Level:  leaderInfo.Level,
		HP:     leaderInfo.HP,
		Name:   g.unitName(leaderInfo.ID, leaderInfo.Name, false),
	}
	if err := g.Map.Insert(leader); err != nil {
		return nil, err
	}
	stack := &world.Stack{
		ID:         g.Map.CreateID(world.ObjectStack),
		MapElement: world.NewMapElement(world.Pos(1, 1)),
		Leader:     leader.ID,
		Owner:      player.ID,
		Subrace:    subrace.ID,
		Order:      world.OrderNormal,
		Move:       leaderInfo.Move,
		AiPriority: template.DefaultAiPriority,
	}
	stack.Group.AddUnit(leader.ID, frontCenter, leaderInfo.Big)
	fort.Visitor = stack.ID

	z.decorations = append(z.decorations, newCapitalDecoration(fort, race, raceInfo.Terrain))
	if err := z.placeFortification(fort, z.pos.Sub(capitalSize.Div(2)), raceInfo.Terrain); err != nil {
		return nil, err
	}
	z.clearEntrance(fort)
	if err := z.placeInside(stack, fort); err != nil {
		return nil, err
	}

	player.Capital = fort.ID
	player.Spells = append(player.Spells, capital.Spells...)
	player.Buildings = append(player.Buildings, capital.Buildings...)
	return fort, nil
}

// garrisonPositions picks the slots a city of the tier defends with. Lower
// tiers leave the front center taken first.
func (g *Generator) garrisonPositions(tier int) mapset.Set[int] {
	positions := mapset.New[int]()
	switch {
	case tier <= 3:
		positions.Put(2)
		rest := []int{0, 1, 3, 4, 5}
		for i := 1; i < tier; i++ {
			k := g.rand.Intn(len(rest))
			positions.Put(rest[k])
			rest = append(rest[:k], rest[k+1:]...)
		}
	default:
		all := []int{0, 1, 2, 3, 4, 5}
		for i := 0; i < world.GroupSlots-tier; i++ {
			k := g.rand.Intn(len(all))
			all = append(all[:k], all[k+1:]...)
		}
		for _, p := range all {
			positions.Put(p)
		}
	}
	return positions
}

func (z *Zone) placeCity(pos world.Position, info template.CityInfo) (*world.Fortification, error) {
	g := z.g
	owner, subrace := g.owner(info.Owner)
	fort := &world.Fortification{
		ID:         g.Map.CreateID(world.ObjectFortification),
		MapElement: world.NewMapElement(citySize),
		Tier:       info.Tier,
		Name:       info.Name,
		Owner:      owner.ID,
		Subrace:    subrace.ID,
		AiPriority: template.Priority(info.AiPriority),
		GapMask:    info.GapMask,
	}
	if fort.Name == "" {
		fort.Name = rng.Element(g.rand, g.cat.CityNames())
	}
	z.decorations = append(z.decorations, newVillageDecoration(fort))
	if err := z.placeFortification(fort, pos, world.TerrainNeutral); err != nil {
		return nil, err
	}
	z.clearEntrance(fort)

	if info.Garrison.Value.IsSet() {
		cons, err := g.constraints(info.Garrison)
		if err != nil {
			return nil, err
		}
		values := composer.ConstrainedSum(info.Tier, rng.Pick(g.rand, info.Garrison.Value), g.rand)
		positions := g.garrisonPositions(info.Tier)
		var units composer.GroupUnits
		unused := g.composer.CreateGroup(0, positions, &units, values, cons)
		g.composer.TightenGroup(unused, positions, &units, cons)
		if err := g.createGroupUnits(&fort.Garrison, units); err != nil {
			return nil, err
		}
	}

	loot, err := g.createLoot(info.Garrison.Loot, false)
	if err != nil {
		return nil, err
	}
	if err := g.addItems(&fort.Inventory, loot); err != nil {
		return nil, err
	}

	neutral := info.Owner == world.RaceNeutral
	stack, err := g.createStack(info.Stack, neutral)
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return fort, nil
	}
	g.applyGroupInfo(stack, info.Stack)
	stack.Owner = owner.ID
	stack.Subrace = subrace.ID
	fort.Visitor = stack.ID
	if err := z.placeInside(stack, fort); err != nil {
		return nil, err
	}
	return fort, nil
}

// placeCities places the cities not used by initTowns.
func (z *Zone) placeCities() error {
	first := 1
	if z.Options.Type.IsStart() {
		first = 0
	}
	for i := first; i < len(z.Options.Cities); i++ {
		pos, err := z.findAndConnect(citySize, 8, "city")
		if err != nil {
			return err
		}
		if _, err := z.placeCity(pos, z.Options.Cities[i]); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zone) placeRuins() error {
	for _, info := range z.Options.Ruins {
		pos, err := z.findAndConnect(siteSize, 6, "ruin")
		if err != nil {
			return err
		}
		if err := z.placeRuin(pos, info); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zone) placeRuin(pos world.Position, info template.RuinInfo) error {
	g := z.g
	ruin := &world.Ruin{
		ID:         g.Map.CreateID(world.ObjectRuin),
		MapElement: world.NewMapElement(siteSize),
		Title:      info.Name,
		AiPriority: template.Priority(info.AiPriority),
	}
	if ruin.Title == "" {
		ruin.Title = rng.Element(g.rand, g.cat.RuinTexts()).Name
	}

	if info.Guard.Value.IsSet() {
		cons, err := g.constraints(info.Guard)
		if err != nil {
			return err
		}
		values := composer.ConstrainedSum(world.GroupSlots, rng.Pick(g.rand, info.Guard.Value), g.rand)
		units := g.composer.FillGroup(values, composer.AllPositions(), cons)
		if err := g.createGroupUnits(&ruin.Guard, units); err != nil {
			return err
		}
	}
	if info.Gold.IsSet() {
		ruin.Gold = rng.Pick(g.rand, info.Gold)
	}
	loot, err := g.createLoot(info.Loot, false)
	if err != nil {
		return err
	}
	if len(loot) > 0 {
		ruin.ItemID = loot[0].ItemID
	}
	ruin.Image = rng.Element(g.rand, g.cat.Images().Ruins)

	if err := z.placeObject(ruin, pos); err != nil {
		return err
	}
	z.decorations = append(z.decorations, newRuinDecoration(ruin))
	return nil
}

// placeMines queues crystals. The first crystal of the native resource and
// of gold lands close to the zone center, painted for the zone owner.
func (z *Zone) placeMines() error {
	g := z.g
	native := world.ResourceGold
	terrain := world.TerrainNeutral
	if info, err := g.cat.Race(world.RaceNeutral); err == nil && info.NativeResource != "" {
		native = info.NativeResource
	}
	if z.owner != nil {
		info, err := g.cat.Race(z.owner.Race)
		if err != nil {
			return err
		}
		native = info.NativeResource
		terrain = info.Terrain
	}

	for _, res := range world.Resources {
		count := z.Options.Mines[res]
		for i := 0; i < count; i++ {
			crystal := &world.Crystal{
				ID:         g.Map.CreateID(world.ObjectCrystal),
				MapElement: world.NewMapElement(world.Pos(1, 1)),
				Resource:   res,
			}
			if i == 0 && (res == native || res == world.ResourceGold) {
				z.addCloseObject(crystal, newCapturedCrystalDecoration(crystal, terrain), siteSize)
				continue
			}
			z.addRequiredObject(crystal, newCrystalDecoration(crystal), siteSize)
		}
	}
	return nil
}
