package generation

import (
	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

type lootEntry struct {
	ItemID string
	Amount int
}

// createLoot resolves required items and picks random items until their
// total value passes the rolled loot value. Merchants never sell valuables.
func (g *Generator) createLoot(loot template.LootInfo, forMerchant bool) ([]lootEntry, error) {
	var out []lootEntry
	for _, req := range loot.RequiredItems {
		if req.ID == "" {
			continue
		}
		if n := rng.Pick(g.rand, req.Amount); n > 0 {
			out = append(out, lootEntry{ItemID: req.ID, Amount: n})
		}
	}
	if !loot.Value.IsSet() {
		return out, nil
	}

	exprFilter, err := g.itemFilter(loot.Filter)
	if err != nil {
		return nil, err
	}
	desired := rng.Pick(g.rand, loot.Value)
	current := 0
	for current <= desired {
		remaining := desired - current
		filters := []catalog.ItemFilter{
			catalog.ItemTypeAllowed(loot.ItemTypes),
			func(it *catalog.ItemInfo) bool {
				if forMerchant && it.Type == catalog.ItemValuable {
					return true
				}
				if loot.ItemValue.IsSet() && (it.Value < loot.ItemValue.Min || it.Value > loot.ItemValue.Max) {
					return true
				}
				return it.Value > remaining || it.Type == catalog.ItemSpecial
			},
			catalog.ForbiddenItems(g.forbiddenItems),
			exprFilter,
		}
		items := g.cat.Items(filters...)
		if len(items) == 0 {
			break
		}
		it := rng.Element(g.rand, items)
		out = append(out, lootEntry{ItemID: it.ID, Amount: 1})
		// Zero valued items would never end the loop.
		current += max(it.Value, 1)
	}
	g.log.Debug("loot created", "desired", desired, "value", current, "items", len(out))
	return out, nil
}

// spreadLoot splits loot among n holders. Random items are rolled for each
// holder with a share of the value; required items go to random holders.
func (g *Generator) spreadLoot(loot template.LootInfo, n int) ([][]lootEntry, error) {
	out := make([][]lootEntry, n)
	if n == 0 {
		return out, nil
	}
	share := loot
	share.Value = loot.Value.Div(n)
	share.RequiredItems = nil
	for i := range out {
		entries, err := g.createLoot(share, false)
		if err != nil {
			return nil, err
		}
		out[i] = entries
	}
	for _, req := range loot.RequiredItems {
		if req.ID == "" {
			continue
		}
		amount := rng.Pick(g.rand, req.Amount)
		for k := 0; k < amount; k++ {
			i := g.rand.IntRange(0, n-1)
			out[i] = append(out[i], lootEntry{ItemID: req.ID, Amount: 1})
		}
	}
	return out, nil
}

// addItems creates item objects for loot and puts them into inv.
func (g *Generator) addItems(inv *world.Inventory, loot []lootEntry) error {
	for _, e := range loot {
		for i := 0; i < e.Amount; i++ {
			item := &world.Item{ID: g.Map.CreateID(world.ObjectItem), ItemID: e.ItemID}
			if err := g.Map.Insert(item); err != nil {
				return err
			}
			inv.Add(item.ID)
		}
	}
	return nil
}

func (z *Zone) placeBags() error {
	bags := z.Options.Bags
	if bags.Count == 0 {
		return nil
	}
	loot, err := z.g.spreadLoot(bags.Loot, bags.Count)
	if err != nil {
		return err
	}
	images := z.g.cat.Images()
	for i := 0; i < bags.Count; i++ {
		pos, err := z.findAndConnect(world.Pos(1, 1), 2, "bags")
		if err != nil {
			return err
		}
		bag := &world.Bag{
			ID:         z.g.Map.CreateID(world.ObjectBag),
			MapElement: world.NewMapElement(world.Pos(1, 1)),
			AiPriority: template.Priority(bags.AiPriority),
		}
		if z.g.Map.Grid.Tile(pos).IsWater() {
			bag.Image = rng.Element(z.g.rand, images.WaterBags)
		} else {
			bag.Image = rng.Element(z.g.rand, images.Bags)
		}
		if err := z.g.addItems(&bag.Inventory, loot[i]); err != nil {
			return err
		}
		if err := z.placeObject(bag, pos); err != nil {
			return err
		}
	}
	return nil
}
