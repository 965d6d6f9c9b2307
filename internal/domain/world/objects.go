package world

type Unit struct {
	ID        ObjectID `json:"id"`
	UnitID    string   `json:"unit_id"`
	Level     int      `json:"level"`
	HP        int      `json:"hp"`
	Name      string   `json:"name,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

func (u *Unit) ObjectID() ObjectID     { return u.ID }
func (u *Unit) ObjectType() ObjectType { return ObjectUnit }

type Item struct {
	ID     ObjectID `json:"id"`
	ItemID string   `json:"item_id"`
}

func (i *Item) ObjectID() ObjectID     { return i.ID }
func (i *Item) ObjectType() ObjectType { return ObjectItem }

// GroupSlots is a 2x3 formation; even slots are the front row.
const GroupSlots = 6

type Group struct {
	Slots [GroupSlots]ObjectID `json:"slots"`
}

// AddUnit puts a unit into slot. A big unit also takes the paired slot of
// the same column.
func (g *Group) AddUnit(id ObjectID, slot int, big bool) bool {
	if slot < 0 || slot >= GroupSlots || g.Slots[slot] != "" {
		return false
	}
	if !big {
		g.Slots[slot] = id
		return true
	}
	pair := slot + 1
	if slot%2 == 1 {
		pair = slot - 1
	}
	if g.Slots[pair] != "" {
		return false
	}
	g.Slots[slot] = id
	g.Slots[pair] = id
	return true
}

func (g Group) Units() []ObjectID {
	var out []ObjectID
	seen := map[ObjectID]bool{}
	for _, id := range g.Slots {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (g Group) Empty() bool {
	return len(g.Units()) == 0
}

type Inventory struct {
	Items []ObjectID `json:"items,omitempty"`
}

func (inv *Inventory) Add(id ObjectID) {
	inv.Items = append(inv.Items, id)
}

type Fortification struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	Capital    bool       `json:"capital"`
	Tier       int        `json:"tier,omitempty"`
	Name       string     `json:"name,omitempty"`
	Owner      ObjectID   `json:"owner,omitempty"`
	Subrace    ObjectID   `json:"subrace,omitempty"`
	Garrison   Group      `json:"garrison"`
	Inventory  Inventory  `json:"inventory"`
	Visitor    ObjectID   `json:"visitor,omitempty"`
	AiPriority int        `json:"ai_priority"`
	GapMask    int        `json:"gap_mask,omitempty"`
}

func (f *Fortification) ObjectID() ObjectID     { return f.ID }
func (f *Fortification) ObjectType() ObjectType { return ObjectFortification }
func (f *Fortification) Element() *MapElement   { return &f.MapElement }

type Stack struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	Leader     ObjectID   `json:"leader"`
	Group      Group      `json:"group"`
	Inventory  Inventory  `json:"inventory"`
	Owner      ObjectID   `json:"owner,omitempty"`
	Subrace    ObjectID   `json:"subrace,omitempty"`
	Inside     ObjectID   `json:"inside,omitempty"`
	Order      Order      `json:"order"`
	AiPriority int        `json:"ai_priority"`
	Facing     Facing     `json:"facing"`
	Move       int        `json:"move"`
}

func (s *Stack) ObjectID() ObjectID     { return s.ID }
func (s *Stack) ObjectType() ObjectType { return ObjectStack }
func (s *Stack) Element() *MapElement   { return &s.MapElement }

type MercenaryUnit struct {
	UnitID string `json:"unit_id"`
	Level  int    `json:"level"`
	Unique bool   `json:"unique,omitempty"`
}

type SiteItem struct {
	ItemID string `json:"item_id"`
	Amount int    `json:"amount"`
}

type ResourceStock struct {
	Amount   int  `json:"amount"`
	Infinite bool `json:"infinite,omitempty"`
}

type Site struct {
	ID            ObjectID                   `json:"id"`
	MapElement    MapElement                 `json:"element"`
	Kind          SiteKind                   `json:"kind"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	Image         int                        `json:"image"`
	AiPriority    int                        `json:"ai_priority"`
	Goods         []SiteItem                 `json:"goods,omitempty"`
	Spells        []string                   `json:"spells,omitempty"`
	Mercenaries   []MercenaryUnit            `json:"mercenaries,omitempty"`
	ExchangeRates string                     `json:"exchange_rates,omitempty"`
	Stock         map[Resource]ResourceStock `json:"stock,omitempty"`
}

func (s *Site) ObjectID() ObjectID     { return s.ID }
func (s *Site) ObjectType() ObjectType { return ObjectSite }
func (s *Site) Element() *MapElement   { return &s.MapElement }

type Ruin struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	Title      string     `json:"title"`
	Image      int        `json:"image"`
	Guard      Group      `json:"guard"`
	Gold       int        `json:"gold,omitempty"`
	ItemID     string     `json:"item_id,omitempty"`
	AiPriority int        `json:"ai_priority"`
}

func (r *Ruin) ObjectID() ObjectID     { return r.ID }
func (r *Ruin) ObjectType() ObjectType { return ObjectRuin }
func (r *Ruin) Element() *MapElement   { return &r.MapElement }

type Bag struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	Image      int        `json:"image"`
	AiPriority int        `json:"ai_priority"`
	Inventory  Inventory  `json:"inventory"`
}

func (b *Bag) ObjectID() ObjectID     { return b.ID }
func (b *Bag) ObjectType() ObjectType { return ObjectBag }
func (b *Bag) Element() *MapElement   { return &b.MapElement }

type Crystal struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	Resource   Resource   `json:"resource"`
}

func (c *Crystal) ObjectID() ObjectID     { return c.ID }
func (c *Crystal) ObjectType() ObjectType { return ObjectCrystal }
func (c *Crystal) Element() *MapElement   { return &c.MapElement }

type Landmark struct {
	ID         ObjectID   `json:"id"`
	MapElement MapElement `json:"element"`
	TypeID     string     `json:"type_id"`
}

func (l *Landmark) ObjectID() ObjectID     { return l.ID }
func (l *Landmark) ObjectType() ObjectType { return ObjectLandmark }
func (l *Landmark) Element() *MapElement   { return &l.MapElement }

// Mountain is terrain decoration, not a scenario object.
type Mountain struct {
	Size     Position `json:"size"`
	Position Position `json:"position"`
	Image    int      `json:"image"`
	Race     Race     `json:"race"`
}

type Player struct {
	ID        ObjectID `json:"id"`
	Race      Race     `json:"race"`
	Subrace   ObjectID `json:"subrace,omitempty"`
	Capital   ObjectID `json:"capital,omitempty"`
	Gold      int      `json:"gold"`
	Spells    []string `json:"spells,omitempty"`
	Buildings []string `json:"buildings,omitempty"`
}

func (p *Player) ObjectID() ObjectID     { return p.ID }
func (p *Player) ObjectType() ObjectType { return ObjectPlayer }

type SubraceRecord struct {
	ID      ObjectID `json:"id"`
	Subrace Subrace  `json:"subrace"`
	Player  ObjectID `json:"player"`
	Number  int      `json:"number"`
}

func (s *SubraceRecord) ObjectID() ObjectID     { return s.ID }
func (s *SubraceRecord) ObjectType() ObjectType { return ObjectSubrace }
