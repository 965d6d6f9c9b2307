package generation

import (
	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

func (z *Zone) newSite(kind world.SiteKind, info template.SiteInfo) *world.Site {
	g := z.g
	text := rng.Element(g.rand, g.cat.SiteTexts(kind))
	site := &world.Site{
		ID:          g.Map.CreateID(world.ObjectSite),
		MapElement:  world.NewMapElement(siteSize),
		Kind:        kind,
		Title:       info.Name,
		Description: info.Description,
		Image:       rng.Element(g.rand, g.cat.Images().Sites[kind]),
		AiPriority:  template.Priority(info.AiPriority),
	}
	if site.Title == "" {
		site.Title = text.Name
	}
	if site.Description == "" {
		site.Description = text.Description
	}
	return site
}

// finishSite places a filled site, guards it and schedules its decoration.
func (z *Zone) finishSite(site *world.Site, pos world.Position, guard template.GroupInfo) error {
	if err := z.placeObject(site, pos); err != nil {
		return err
	}
	if _, err := z.guardObject(site.MapElement, guard); err != nil {
		return err
	}
	z.decorations = append(z.decorations, newSiteDecoration(site))
	return nil
}

func (z *Zone) placeMerchants() error {
	for _, info := range z.Options.Merchants {
		pos, err := z.findAndConnect(siteSize, 6, "merchant")
		if err != nil {
			return err
		}
		site := z.newSite(world.SiteMerchant, info.SiteInfo)
		goods, err := z.g.createLoot(info.Goods, true)
		if err != nil {
			return err
		}
		for _, e := range goods {
			site.Goods = append(site.Goods, world.SiteItem{ItemID: e.ItemID, Amount: e.Amount})
		}
		if err := z.finishSite(site, pos, info.Guard); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zone) placeMages() error {
	for _, info := range z.Options.Mages {
		pos, err := z.findAndConnect(siteSize, 6, "mage")
		if err != nil {
			return err
		}
		site := z.newSite(world.SiteMage, info.SiteInfo)
		spells, err := z.g.pickSpells(info)
		if err != nil {
			return err
		}
		site.Spells = spells
		if err := z.finishSite(site, pos, info.Guard); err != nil {
			return err
		}
	}
	return nil
}

// pickSpells picks distinct spells until their value passes the rolled
// value, then appends the required ones.
func (g *Generator) pickSpells(info template.MageInfo) ([]string, error) {
	var out []string
	if info.Value.IsSet() {
		exprFilter, err := g.spellFilter(info.Filter)
		if err != nil {
			return nil, err
		}
		picked := mapset.New[string]()
		desired := rng.Pick(g.rand, info.Value)
		current := 0
		for current <= desired {
			remaining := desired - current
			spells := g.cat.Spells(
				catalog.SpellTypeAllowed(info.SpellTypes),
				func(sp *catalog.SpellInfo) bool {
					return sp.Level < info.SpellLevels.Min || sp.Level > info.SpellLevels.Max
				},
				func(sp *catalog.SpellInfo) bool { return sp.Value > remaining },
				catalog.ForbiddenSpells(g.forbiddenSpells),
				catalog.ForbiddenSpells(picked),
				exprFilter,
			)
			if len(spells) == 0 {
				break
			}
			sp := rng.Element(g.rand, spells)
			picked.Put(sp.ID)
			out = append(out, sp.ID)
			current += max(sp.Value, 1)
		}
	}
	out = append(out, info.RequiredSpells...)
	return out, nil
}

func (z *Zone) placeMercenaries() error {
	for _, info := range z.Options.Mercenaries {
		pos, err := z.findAndConnect(siteSize, 6, "mercenary")
		if err != nil {
			return err
		}
		site := z.newSite(world.SiteMercenary, info.SiteInfo)
		site.Mercenaries = z.g.pickMercenaries(info)
		if err := z.finishSite(site, pos, info.Guard); err != nil {
			return err
		}
	}
	return nil
}

// pickMercenaries fills a camp by enroll cost.
func (g *Generator) pickMercenaries(info template.MercenaryInfo) []world.MercenaryUnit {
	var out []world.MercenaryUnit
	if info.Value.IsSet() {
		desired := rng.Pick(g.rand, info.Value)
		current := 0
		for current <= desired {
			remaining := desired - current
			units := g.cat.Soldiers(
				catalog.SubraceAllowed(info.SubraceTypes),
				func(u *catalog.UnitInfo) bool {
					if info.EnrollValue.IsSet() && (u.EnrollCost < info.EnrollValue.Min || u.EnrollCost > info.EnrollValue.Max) {
						return true
					}
					return u.EnrollCost > remaining
				},
				catalog.ForbiddenUnits(g.forbiddenUnits),
			)
			if len(units) == 0 {
				break
			}
			u := rng.Element(g.rand, units)
			out = append(out, world.MercenaryUnit{UnitID: u.ID, Level: u.Level, Unique: true})
			current += max(u.EnrollCost, 1)
		}
	}
	for _, r := range info.RequiredUnits {
		out = append(out, world.MercenaryUnit{UnitID: r.ID, Level: r.Level, Unique: r.Unique})
	}
	return out
}

func (z *Zone) placeTrainers() error {
	for _, info := range z.Options.Trainers {
		pos, err := z.findAndConnect(siteSize, 6, "trainer")
		if err != nil {
			return err
		}
		site := z.newSite(world.SiteTrainer, info.SiteInfo)
		if err := z.finishSite(site, pos, info.Guard); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zone) placeMarkets() error {
	for _, info := range z.Options.Markets {
		pos, err := z.findAndConnect(siteSize, 6, "market")
		if err != nil {
			return err
		}
		site := z.newSite(world.SiteMarket, info.SiteInfo)
		site.ExchangeRates = info.ExchangeRates
		if len(info.Stock) > 0 {
			site.Stock = map[world.Resource]world.ResourceStock{}
		}
		for _, s := range info.Stock {
			if s.Infinite {
				site.Stock[s.Resource] = world.ResourceStock{Infinite: true}
				continue
			}
			site.Stock[s.Resource] = world.ResourceStock{Amount: rng.Pick(z.g.rand, s.Value)}
		}
		if err := z.finishSite(site, pos, info.Guard); err != nil {
			return err
		}
	}
	return nil
}
