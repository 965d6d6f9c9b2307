package catalog

import "scenariogen/internal/domain/world"

type Reach string

const (
	ReachAdjacent Reach = "adjacent"
	ReachArcher   Reach = "archer"
	ReachAll      Reach = "all"
)

type UnitInfo struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Level      int           `json:"level"`
	Value      int           `json:"value"`
	HP         int           `json:"hp"`
	Leadership int           `json:"leadership"`
	Reach      Reach         `json:"reach"`
	Big        bool          `json:"big"`
	Support    bool          `json:"support"`
	Leader     bool          `json:"leader"`
	Subrace    world.Subrace `json:"subrace"`
	Race       world.Race    `json:"race"`
	EnrollCost int           `json:"enroll_cost"`
	Move       int           `json:"move"`
}

type ItemType string

const (
	ItemArmor           ItemType = "armor"
	ItemJewel           ItemType = "jewel"
	ItemWeapon          ItemType = "weapon"
	ItemBanner          ItemType = "banner"
	ItemPotionBoost     ItemType = "potion_boost"
	ItemPotionHeal      ItemType = "potion_heal"
	ItemPotionRevive    ItemType = "potion_revive"
	ItemPotionPermanent ItemType = "potion_permanent"
	ItemScroll          ItemType = "scroll"
	ItemWand            ItemType = "wand"
	ItemValuable        ItemType = "valuable"
	ItemOrb             ItemType = "orb"
	ItemTalisman        ItemType = "talisman"
	ItemTravel          ItemType = "travel"
	ItemSpecial         ItemType = "special"
)

type ItemInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  ItemType `json:"type"`
	Value int      `json:"value"`
}

type SpellType string

const (
	SpellAttack      SpellType = "attack"
	SpellLower       SpellType = "lower"
	SpellHeal        SpellType = "heal"
	SpellBoost       SpellType = "boost"
	SpellSummon      SpellType = "summon"
	SpellFog         SpellType = "fog"
	SpellUnfog       SpellType = "unfog"
	SpellRestoreMove SpellType = "restore_move"
	SpellInvisible   SpellType = "invisible"
)

type SpellInfo struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Type  SpellType `json:"type"`
	Level int       `json:"level"`
	Value int       `json:"value"`
}

type LandmarkType string

const (
	LandmarkMisc      LandmarkType = "misc"
	LandmarkBuilding  LandmarkType = "building"
	LandmarkStructure LandmarkType = "structure"
	LandmarkTerrain   LandmarkType = "terrain"
)

type LandmarkInfo struct {
	ID       string         `json:"id"`
	Size     world.Position `json:"size"`
	Type     LandmarkType   `json:"type"`
	Mountain bool           `json:"mountain"`
	Race     world.Race     `json:"race"`
}

type MountainInfo struct {
	Image int        `json:"image"`
	Size  int        `json:"size"`
	Race  world.Race `json:"race"`
}

type RaceInfo struct {
	Race           world.Race     `json:"race"`
	Terrain        world.Terrain  `json:"terrain"`
	NativeResource world.Resource `json:"native_resource"`
	Subrace        world.Subrace  `json:"subrace"`
	GuardianUnitID string         `json:"guardian_unit_id"`
	LeaderIDs      []string       `json:"leader_ids"`
	Buildings      []string       `json:"buildings"`
	Spells         []string       `json:"spells"`
}

type SiteText struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Images lists the image indices objects may be drawn with.
type Images struct {
	Sites     map[world.SiteKind][]int `json:"sites"`
	Ruins     []int                    `json:"ruins"`
	Bags      []int                    `json:"bags"`
	WaterBags []int                    `json:"water_bags"`
}

// Data is the serialized form of a catalog.
type Data struct {
	Units              []UnitInfo                    `json:"units"`
	Items              []ItemInfo                    `json:"items"`
	Spells             []SpellInfo                   `json:"spells"`
	Landmarks          []LandmarkInfo                `json:"landmarks"`
	Mountains          []MountainInfo                `json:"mountains"`
	Races              []RaceInfo                    `json:"races"`
	LeaderNames        []string                      `json:"leader_names"`
	CityNames          []string                      `json:"city_names"`
	SiteTexts          map[world.SiteKind][]SiteText `json:"site_texts"`
	RuinTexts          []SiteText                    `json:"ruin_texts"`
	LeadershipModifier string                        `json:"leadership_modifier"`
	Images             Images                        `json:"images"`
}
