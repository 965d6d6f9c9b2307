package template

import (
	"errors"
	"fmt"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/world"
)

var ErrInvalidTemplate = errors.New("invalid template")

type ZoneType string

const (
	ZonePlayerStart ZoneType = "player_start"
	ZoneAiStart     ZoneType = "ai_start"
	ZoneTreasure    ZoneType = "treasure"
	ZoneJunction    ZoneType = "junction"
	ZoneWater       ZoneType = "water"
)

func (t ZoneType) IsStart() bool {
	return t == ZonePlayerStart || t == ZoneAiStart
}

type BorderType string

const (
	BorderOpen     BorderType = "open"
	BorderSemiOpen BorderType = "semi_open"
	BorderClosed   BorderType = "closed"
	BorderWater    BorderType = "water"
)

const (
	MinMapSize        = 24
	MaxMapSize        = 144
	DefaultAiPriority = 3
	MaxAiPriority     = 6
	DefaultGapChance  = 50
)

type RequiredItem struct {
	ID     string                 `json:"id"`
	Amount world.RandomValue[int] `json:"amount"`
}

type LootInfo struct {
	ItemTypes     []catalog.ItemType     `json:"item_types,omitempty"`
	Value         world.RandomValue[int] `json:"value"`
	ItemValue     world.RandomValue[int] `json:"item_value"`
	RequiredItems []RequiredItem         `json:"items,omitempty"`
	Filter        string                 `json:"filter,omitempty"`
}

type GroupInfo struct {
	SubraceTypes    []world.Subrace        `json:"subrace_types,omitempty"`
	Value           world.RandomValue[int] `json:"value"`
	Loot            LootInfo               `json:"loot"`
	Owner           world.Race             `json:"owner,omitempty"`
	Order           world.Order            `json:"order,omitempty"`
	Name            string                 `json:"name,omitempty"`
	LeaderIDs       []string               `json:"leader_ids,omitempty"`
	LeaderModifiers []string               `json:"leader_modifiers,omitempty"`
	AiPriority      *int                   `json:"ai_priority,omitempty"`
	Filter          string                 `json:"filter,omitempty"`
}

type CityInfo struct {
	Garrison   GroupInfo  `json:"garrison"`
	Stack      GroupInfo  `json:"stack"`
	Owner      world.Race `json:"owner,omitempty"`
	Tier       int        `json:"tier"`
	Name       string     `json:"name,omitempty"`
	GapMask    int        `json:"gap_mask"`
	AiPriority *int       `json:"ai_priority,omitempty"`
}

type CapitalInfo struct {
	Garrison   GroupInfo `json:"garrison"`
	Spells     []string  `json:"spells,omitempty"`
	Buildings  []string  `json:"buildings,omitempty"`
	Name       string    `json:"name,omitempty"`
	GapMask    int       `json:"gap_mask"`
	Guardian   *bool     `json:"guardian,omitempty"`
	AiPriority *int      `json:"ai_priority,omitempty"`
}

func (c CapitalInfo) HasGuardian() bool {
	return c.Guardian == nil || *c.Guardian
}

type RuinInfo struct {
	Guard      GroupInfo              `json:"guard"`
	Gold       world.RandomValue[int] `json:"gold"`
	Loot       LootInfo               `json:"loot"`
	Name       string                 `json:"name,omitempty"`
	AiPriority *int                   `json:"ai_priority,omitempty"`
}

type SiteInfo struct {
	Guard       GroupInfo `json:"guard"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	AiPriority  *int      `json:"ai_priority,omitempty"`
}

type MerchantInfo struct {
	SiteInfo
	Goods LootInfo `json:"goods"`
}

type MageInfo struct {
	SiteInfo
	SpellTypes     []catalog.SpellType    `json:"spell_types,omitempty"`
	Value          world.RandomValue[int] `json:"value"`
	SpellLevels    world.RandomValue[int] `json:"spell_level"`
	RequiredSpells []string               `json:"spells,omitempty"`
	Filter         string                 `json:"filter,omitempty"`
}

type MercenaryUnitInfo struct {
	ID     string `json:"id"`
	Level  int    `json:"level"`
	Unique bool   `json:"unique,omitempty"`
}

type MercenaryInfo struct {
	SiteInfo
	SubraceTypes  []world.Subrace        `json:"subrace_types,omitempty"`
	Value         world.RandomValue[int] `json:"value"`
	EnrollValue   world.RandomValue[int] `json:"enroll_value"`
	RequiredUnits []MercenaryUnitInfo    `json:"units,omitempty"`
}

type TrainerInfo struct {
	SiteInfo
}

type MarketStock struct {
	Resource world.Resource         `json:"resource"`
	Infinite bool                   `json:"infinite,omitempty"`
	Value    world.RandomValue[int] `json:"value"`
}

type MarketInfo struct {
	SiteInfo
	ExchangeRates string        `json:"exchange_rates,omitempty"`
	Stock         []MarketStock `json:"stock,omitempty"`
}

type StackGroupInfo struct {
	GroupInfo
	Count int `json:"count"`
}

type BagsInfo struct {
	Loot       LootInfo `json:"loot"`
	Count      int      `json:"count"`
	AiPriority *int     `json:"ai_priority,omitempty"`
}

type Center struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoneOptions is the immutable per-zone configuration.
type ZoneOptions struct {
	ID          int                    `json:"id"`
	Type        ZoneType               `json:"type"`
	Size        int                    `json:"size"`
	Center      *Center                `json:"center,omitempty"`
	PlayerRace  world.Race             `json:"race,omitempty"`
	Capital     CapitalInfo            `json:"capital"`
	Border      BorderType             `json:"border,omitempty"`
	GapChance   *int                   `json:"gap_chance,omitempty"`
	Mines       map[world.Resource]int `json:"mines,omitempty"`
	Cities      []CityInfo             `json:"towns,omitempty"`
	Ruins       []RuinInfo             `json:"ruins,omitempty"`
	Merchants   []MerchantInfo         `json:"merchants,omitempty"`
	Mages       []MageInfo             `json:"mages,omitempty"`
	Mercenaries []MercenaryInfo        `json:"mercenaries,omitempty"`
	Trainers    []TrainerInfo          `json:"trainers,omitempty"`
	Markets     []MarketInfo           `json:"resource_markets,omitempty"`
	Stacks      []StackGroupInfo       `json:"stacks,omitempty"`
	Bags        BagsInfo               `json:"bags"`
}

type Connection struct {
	From  int       `json:"from"`
	To    int       `json:"to"`
	Guard GroupInfo `json:"guard"`
	Size  int       `json:"size"`
}

type Settings struct {
	Forest          int      `json:"forest"`
	StartingGold    int      `json:"starting_gold"`
	ForbiddenUnits  []string `json:"forbidden_units,omitempty"`
	ForbiddenItems  []string `json:"forbidden_items,omitempty"`
	ForbiddenSpells []string `json:"forbidden_spells,omitempty"`
}

type MapTemplate struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Size        int           `json:"size"`
	Settings    Settings      `json:"settings"`
	Zones       []ZoneOptions `json:"zones"`
	Connections []Connection  `json:"connections,omitempty"`
}

// Priority resolves an optional AI priority to its clamped value.
func Priority(p *int) int {
	if p == nil {
		return DefaultAiPriority
	}
	return clamp(*p, 0, MaxAiPriority)
}

func (z ZoneOptions) Gap() int {
	if z.GapChance == nil {
		return DefaultGapChance
	}
	return clamp(*z.GapChance, 0, 100)
}

func (t MapTemplate) Zone(id int) (ZoneOptions, bool) {
	for _, z := range t.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return ZoneOptions{}, false
}

// Normalize applies defaults and clamps ranges in place, then validates the
// zone graph.
func (t *MapTemplate) Normalize() error {
	if t.Size < MinMapSize || t.Size > MaxMapSize {
		return fmt.Errorf("%w: map size %d outside [%d, %d]", ErrInvalidTemplate, t.Size, MinMapSize, MaxMapSize)
	}
	if len(t.Zones) == 0 {
		return fmt.Errorf("%w: no zones", ErrInvalidTemplate)
	}
	t.Settings.Forest = clamp(t.Settings.Forest, 0, 100)
	t.Settings.StartingGold = clamp(t.Settings.StartingGold, 0, 9999)

	seen := map[int]bool{}
	races := map[world.Race]bool{}
	for i := range t.Zones {
		z := &t.Zones[i]
		if seen[z.ID] {
			return fmt.Errorf("%w: duplicate zone id %d", ErrInvalidTemplate, z.ID)
		}
		seen[z.ID] = true
		if err := z.normalize(); err != nil {
			return err
		}
		if !z.Type.IsStart() {
			continue
		}
		if races[z.PlayerRace] {
			return fmt.Errorf("%w: race %s owns more than one start zone", ErrInvalidTemplate, z.PlayerRace)
		}
		races[z.PlayerRace] = true
	}
	for i := range t.Connections {
		c := &t.Connections[i]
		if !seen[c.From] || !seen[c.To] {
			return fmt.Errorf("%w: connection %d-%d references unknown zone", ErrInvalidTemplate, c.From, c.To)
		}
		if c.From == c.To {
			return fmt.Errorf("%w: zone %d connected to itself", ErrInvalidTemplate, c.From)
		}
		c.Size = clamp(c.Size, 0, 1)
		c.Guard.normalize()
	}
	return nil
}

func (z *ZoneOptions) normalize() error {
	switch z.Type {
	case ZonePlayerStart, ZoneAiStart:
		if z.PlayerRace == "" || z.PlayerRace == world.RaceNeutral {
			return fmt.Errorf("%w: start zone %d needs a playable race", ErrInvalidTemplate, z.ID)
		}
	case ZoneTreasure, ZoneJunction, ZoneWater:
	default:
		return fmt.Errorf("%w: zone %d has unknown type %q", ErrInvalidTemplate, z.ID, z.Type)
	}
	if z.Size < 1 {
		z.Size = 1
	}
	switch z.Border {
	case "":
		z.Border = BorderClosed
	case BorderOpen, BorderSemiOpen, BorderClosed, BorderWater:
	default:
		return fmt.Errorf("%w: zone %d has unknown border %q", ErrInvalidTemplate, z.ID, z.Border)
	}
	if z.Center != nil && (z.Center.X < 0 || z.Center.X >= 1 || z.Center.Y < 0 || z.Center.Y >= 1) {
		return fmt.Errorf("%w: zone %d center outside [0,1)", ErrInvalidTemplate, z.ID)
	}
	for r, n := range z.Mines {
		if n < 0 {
			z.Mines[r] = 0
		}
	}

	z.Capital.GapMask = clamp(z.Capital.GapMask, 0, 15)
	z.Capital.Garrison.normalize()
	for i := range z.Cities {
		c := &z.Cities[i]
		c.Tier = clamp(c.Tier, 1, 5)
		c.GapMask = clamp(c.GapMask, 0, 15)
		if c.Owner == "" {
			c.Owner = world.RaceNeutral
		}
		c.Garrison.normalize()
		c.Stack.normalize()
	}
	for i := range z.Ruins {
		z.Ruins[i].Guard.normalize()
		z.Ruins[i].Loot.normalize()
	}
	for i := range z.Merchants {
		z.Merchants[i].Guard.normalize()
		z.Merchants[i].Goods.normalize()
	}
	for i := range z.Mages {
		m := &z.Mages[i]
		m.Guard.normalize()
		if !m.SpellLevels.IsSet() {
			m.SpellLevels = world.Fixed(1)
		}
		m.SpellLevels = world.NewRandomValue(clamp(m.SpellLevels.Min, 1, 5), clamp(m.SpellLevels.Max, 1, 5))
	}
	for i := range z.Mercenaries {
		m := &z.Mercenaries[i]
		m.Guard.normalize()
		for j := range m.RequiredUnits {
			m.RequiredUnits[j].Level = clamp(m.RequiredUnits[j].Level, 1, 99)
		}
	}
	for i := range z.Trainers {
		z.Trainers[i].Guard.normalize()
	}
	for i := range z.Markets {
		z.Markets[i].Guard.normalize()
	}
	for i := range z.Stacks {
		s := &z.Stacks[i]
		s.GroupInfo.normalize()
		if s.Count < 0 {
			s.Count = 0
		}
	}
	z.Bags.Loot.normalize()
	if z.Bags.Count < 0 {
		z.Bags.Count = 0
	}
	return nil
}

func (g *GroupInfo) normalize() {
	if g.Owner == "" {
		g.Owner = world.RaceNeutral
	}
	if g.Order == "" {
		g.Order = world.OrderStand
	}
	g.Loot.normalize()
}

func (l *LootInfo) normalize() {
	for i := range l.RequiredItems {
		if !l.RequiredItems[i].Amount.IsSet() {
			l.RequiredItems[i].Amount = world.Fixed(1)
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
