package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"scenariogen/internal/domain/world"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnknownRace    = errors.New("unknown race")
)

// Filters return true for entries that must be removed from the result.
type (
	UnitFilter     func(*UnitInfo) bool
	ItemFilter     func(*ItemInfo) bool
	SpellFilter    func(*SpellInfo) bool
	LandmarkFilter func(*LandmarkInfo) bool
)

// Catalog is read-only once built.
type Catalog struct {
	units     []*UnitInfo
	unitByID  map[string]*UnitInfo
	items     []*ItemInfo
	itemByID  map[string]*ItemInfo
	spells    []*SpellInfo
	landmarks []*LandmarkInfo
	mountains []MountainInfo
	races     map[world.Race]RaceInfo

	leaderNames        []string
	cityNames          []string
	siteTexts          map[world.SiteKind][]SiteText
	ruinTexts          []SiteText
	leadershipModifier string
	images             Images

	minLeaderValue  int
	minSoldierValue int
}

func New(d Data) (*Catalog, error) {
	c := &Catalog{
		unitByID:           map[string]*UnitInfo{},
		itemByID:           map[string]*ItemInfo{},
		races:              map[world.Race]RaceInfo{},
		leaderNames:        d.LeaderNames,
		cityNames:          d.CityNames,
		siteTexts:          d.SiteTexts,
		ruinTexts:          d.RuinTexts,
		leadershipModifier: d.LeadershipModifier,
		images:             d.Images,
		mountains:          d.Mountains,
		minLeaderValue:     math.MaxInt,
		minSoldierValue:    math.MaxInt,
	}
	for i := range d.Units {
		u := d.Units[i]
		if u.ID == "" {
			return nil, fmt.Errorf("%w: unit without id", ErrInvalidCatalog)
		}
		if _, ok := c.unitByID[u.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate unit %s", ErrInvalidCatalog, u.ID)
		}
		c.units = append(c.units, &u)
		c.unitByID[u.ID] = &u
		if u.Leader {
			c.minLeaderValue = min(c.minLeaderValue, u.Value)
		} else {
			c.minSoldierValue = min(c.minSoldierValue, u.Value)
		}
	}
	if c.minLeaderValue == math.MaxInt {
		c.minLeaderValue = 0
	}
	if c.minSoldierValue == math.MaxInt {
		c.minSoldierValue = 0
	}
	for i := range d.Items {
		it := d.Items[i]
		c.items = append(c.items, &it)
		c.itemByID[it.ID] = &it
	}
	for i := range d.Spells {
		sp := d.Spells[i]
		c.spells = append(c.spells, &sp)
	}
	for i := range d.Landmarks {
		lm := d.Landmarks[i]
		if lm.Size.X <= 0 || lm.Size.Y <= 0 {
			return nil, fmt.Errorf("%w: landmark %s has no size", ErrInvalidCatalog, lm.ID)
		}
		c.landmarks = append(c.landmarks, &lm)
	}
	for _, r := range d.Races {
		c.races[r.Race] = r
	}
	return c, nil
}

func (c *Catalog) Unit(id string) (*UnitInfo, bool) {
	u, ok := c.unitByID[id]
	return u, ok
}

func (c *Catalog) Item(id string) (*ItemInfo, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

func (c *Catalog) Leaders(filters ...UnitFilter) []*UnitInfo {
	return selectUnits(c.units, true, filters)
}

func (c *Catalog) Soldiers(filters ...UnitFilter) []*UnitInfo {
	return selectUnits(c.units, false, filters)
}

func selectUnits(units []*UnitInfo, leaders bool, filters []UnitFilter) []*UnitInfo {
	var out []*UnitInfo
	for _, u := range units {
		if u.Leader != leaders || removed(u, filters) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (c *Catalog) Items(filters ...ItemFilter) []*ItemInfo {
	var out []*ItemInfo
	for _, it := range c.items {
		if !removed(it, filters) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Spells(filters ...SpellFilter) []*SpellInfo {
	var out []*SpellInfo
	for _, sp := range c.spells {
		if !removed(sp, filters) {
			out = append(out, sp)
		}
	}
	return out
}

// Landmarks returns landmarks of the race or neutral ones.
func (c *Catalog) Landmarks(race world.Race, filters ...LandmarkFilter) []*LandmarkInfo {
	var out []*LandmarkInfo
	for _, lm := range c.landmarks {
		if lm.Race != race && lm.Race != world.RaceNeutral && lm.Race != "" {
			continue
		}
		if !removed(lm, filters) {
			out = append(out, lm)
		}
	}
	return out
}

func (c *Catalog) MountainLandmarks(size int) []*LandmarkInfo {
	var out []*LandmarkInfo
	for _, lm := range c.landmarks {
		if lm.Mountain && lm.Size.X == size {
			out = append(out, lm)
		}
	}
	return out
}

// MountainsBySize groups mountain images by size, largest first.
func (c *Catalog) MountainsBySize() ([]int, map[int][]MountainInfo) {
	bySize := map[int][]MountainInfo{}
	for _, m := range c.mountains {
		bySize[m.Size] = append(bySize[m.Size], m)
	}
	sizes := make([]int, 0, len(bySize))
	for s := range bySize {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes, bySize
}

func (c *Catalog) MinLeaderValue() int  { return c.minLeaderValue }
func (c *Catalog) MinSoldierValue() int { return c.minSoldierValue }

func (c *Catalog) Race(r world.Race) (RaceInfo, error) {
	info, ok := c.races[r]
	if !ok {
		return RaceInfo{}, fmt.Errorf("%w: %s", ErrUnknownRace, r)
	}
	return info, nil
}

func (c *Catalog) LeaderNames() []string                 { return c.leaderNames }
func (c *Catalog) CityNames() []string                   { return c.cityNames }
func (c *Catalog) RuinTexts() []SiteText                 { return c.ruinTexts }
func (c *Catalog) LeadershipModifier() string            { return c.leadershipModifier }
func (c *Catalog) SiteTexts(k world.SiteKind) []SiteText { return c.siteTexts[k] }
func (c *Catalog) Images() Images                        { return c.images }

func removed[T any, F ~func(*T) bool](v *T, filters []F) bool {
	for _, f := range filters {
		if f != nil && f(v) {
			return true
		}
	}
	return false
}
