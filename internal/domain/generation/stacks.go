package generation

import (
	"fmt"

	"scenariogen/internal/domain/composer"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

// unitName gives neutral leaders a random catalog name.
func (g *Generator) unitName(unitID string, fallback string, neutralOwner bool) string {
	if neutralOwner {
		if names := g.cat.LeaderNames(); len(names) > 0 {
			return rng.Element(g.rand, names)
		}
	}
	if fallback != "" {
		return fallback
	}
	return unitID
}

func (g *Generator) constraints(info template.GroupInfo) (composer.Constraints, error) {
	filter, err := g.unitFilter(info.Filter)
	if err != nil {
		return composer.Constraints{}, err
	}
	return composer.Constraints{Subraces: info.SubraceTypes, Filter: filter}, nil
}

// createGroupUnits turns a formation into unit objects of group.
func (g *Generator) createGroupUnits(group *world.Group, units composer.GroupUnits) error {
	for pos := 0; pos < len(units); pos++ {
		info := units[pos]
		if info == nil {
			continue
		}
		u := &world.Unit{
			ID:     g.Map.CreateID(world.ObjectUnit),
			UnitID: info.ID,
			Level:  info.Level,
			HP:     info.HP,
		}
		if err := g.Map.Insert(u); err != nil {
			return err
		}
		group.AddUnit(u.ID, pos, info.Big)
		if info.Big {
			pos++
		}
	}
	return nil
}

// createStack composes a stack for info. A group without a value yields no
// stack and no error.
func (g *Generator) createStack(info template.GroupInfo, neutralOwner bool) (*world.Stack, error) {
	cons, err := g.constraints(info)
	if err != nil {
		return nil, err
	}
	f, err := g.composer.ComposeStack(composer.Request{
		Value:       info.Value,
		LeaderIDs:   info.LeaderIDs,
		Constraints: cons,
	})
	if err != nil || f == nil {
		return nil, err
	}

	stack := &world.Stack{
		ID:         g.Map.CreateID(world.ObjectStack),
		MapElement: world.NewMapElement(world.Pos(1, 1)),
		Move:       f.Leader.Move,
		Facing:     world.Facing(g.rand.IntRange(0, world.FacingCount-1)),
		Order:      world.OrderNormal,
	}
	leader := &world.Unit{
		ID:     g.Map.CreateID(world.ObjectUnit),
		UnitID: f.Leader.ID,
		Level:  f.Leader.Level,
		HP:     f.Leader.HP,
		Name:   g.unitName(f.Leader.ID, f.Leader.Name, neutralOwner),
	}
	if err := g.Map.Insert(leader); err != nil {
		return nil, err
	}
	stack.Leader = leader.ID
	stack.Group.AddUnit(leader.ID, f.LeaderSlot, f.Leader.Big)
	if err := g.createGroupUnits(&stack.Group, f.Soldiers); err != nil {
		return nil, err
	}
	for i := 0; i < f.LeadershipShortfall(); i++ {
		if mod := g.cat.LeadershipModifier(); mod != "" {
			leader.Modifiers = append(leader.Modifiers, mod)
		}
	}

	loot, err := g.createLoot(info.Loot, false)
	if err != nil {
		return nil, err
	}
	if err := g.addItems(&stack.Inventory, loot); err != nil {
		return nil, err
	}
	return stack, nil
}

// applyGroupInfo sets ownership, naming and behaviour of a composed stack.
func (g *Generator) applyGroupInfo(stack *world.Stack, info template.GroupInfo) {
	owner, subrace := g.owner(info.Owner)
	stack.Owner = owner.ID
	stack.Subrace = subrace.ID
	stack.Order = info.Order
	stack.AiPriority = template.Priority(info.AiPriority)

	leader, ok := world.FindAs[*world.Unit](g.Map, stack.Leader)
	if !ok {
		return
	}
	if info.Name != "" {
		leader.Name = info.Name
	}
	leader.Modifiers = append(leader.Modifiers, info.LeaderModifiers...)
}

// guardObject puts a neutral guard in front of the placed element. Without
// a guard the tiles around the entrance are freed.
func (z *Zone) guardObject(e world.MapElement, guard template.GroupInfo) (bool, error) {
	tiles := z.accessibleTiles(e)
	guardTile := z.accessibleOffset(e, e.Position)
	if len(tiles) == 0 || !guardTile.Valid() {
		z.g.log.Warn("failed to guard object", "zone", z.ID, "position", e.Position)
		return false, nil
	}

	stack, err := z.g.createStack(guard, true)
	if err != nil {
		return false, fmt.Errorf("guard at %v: %w", guardTile, err)
	}
	if stack == nil {
		for _, t := range tiles {
			if z.g.occ.IsPossible(t) {
				z.g.occ.SetOccupied(t, TileFree)
			}
		}
		return true, nil
	}
	z.g.applyGroupInfo(stack, guard)
	if err := z.placeObject(stack, guardTile); err != nil {
		return false, err
	}
	return true, nil
}

// placeZoneGuard puts a guard stack on a zone connection tile.
func (z *Zone) placeZoneGuard(pos world.Position, guard template.GroupInfo) error {
	stack, err := z.g.createStack(guard, true)
	if err != nil || stack == nil {
		return err
	}
	z.g.applyGroupInfo(stack, guard)
	return z.placeObject(stack, pos)
}

// placeStacks scatters the zone's random stacks over reachable tiles.
func (z *Zone) placeStacks() error {
	total := 0
	for _, s := range z.Options.Stacks {
		total += s.Count
	}
	if total == 0 {
		return nil
	}

	positions := make([]world.Position, 0, total)
	for i := 0; i < total; i++ {
		pos, err := z.findAndConnect(world.Pos(1, 1), 1, "stacks")
		if err != nil {
			return err
		}
		z.updateDistances(pos)
		positions = append(positions, pos)
	}
	rng.Shuffle(z.g.rand, positions)

	next := 0
	for _, group := range z.Options.Stacks {
		if group.Count <= 0 {
			continue
		}
		info := group.GroupInfo
		info.Value = group.Value.Div(group.Count)
		info.Loot = template.LootInfo{}
		neutral := info.Owner == world.RaceNeutral

		stacks := make([]*world.Stack, 0, group.Count)
		for i := 0; i < group.Count; i++ {
			stack, err := z.g.createStack(info, neutral)
			if err != nil {
				return err
			}
			stacks = append(stacks, stack)
		}

		loot, err := z.g.spreadLoot(group.Loot, group.Count)
		if err != nil {
			return err
		}
		for i, stack := range stacks {
			pos := positions[next]
			next++
			if stack == nil {
				continue
			}
			z.g.applyGroupInfo(stack, group.GroupInfo)
			if err := z.g.addItems(&stack.Inventory, loot[i]); err != nil {
				return err
			}
			if err := z.placeObject(stack, pos); err != nil {
				return err
			}
		}
	}
	return nil
}
