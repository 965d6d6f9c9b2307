package world

type Race string

const (
	RaceHuman   Race = "human"
	RaceDwarf   Race = "dwarf"
	RaceUndead  Race = "undead"
	RaceHeretic Race = "heretic"
	RaceElf     Race = "elf"
	RaceNeutral Race = "neutral"
)

type Subrace string

const (
	SubraceHuman         Subrace = "human"
	SubraceDwarf         Subrace = "dwarf"
	SubraceUndead        Subrace = "undead"
	SubraceHeretic       Subrace = "heretic"
	SubraceElf           Subrace = "elf"
	SubraceNeutral       Subrace = "neutral"
	SubraceNeutralHuman  Subrace = "neutral_human"
	SubraceNeutralElf    Subrace = "neutral_elf"
	SubraceNeutralGreen  Subrace = "neutral_green_skin"
	SubraceNeutralDragon Subrace = "neutral_dragon"
	SubraceNeutralMarsh  Subrace = "neutral_marsh"
	SubraceNeutralWater  Subrace = "neutral_water"
	SubraceNeutralBarbar Subrace = "neutral_barbarian"
	SubraceNeutralWolf   Subrace = "neutral_wolf"
)

type Resource string

const (
	ResourceGold         Resource = "gold"
	ResourceLifeMana     Resource = "life_mana"
	ResourceDeathMana    Resource = "death_mana"
	ResourceInfernalMana Resource = "infernal_mana"
	ResourceRunicMana    Resource = "runic_mana"
	ResourceGroveMana    Resource = "grove_mana"
)

var Resources = []Resource{
	ResourceGold,
	ResourceLifeMana,
	ResourceDeathMana,
	ResourceInfernalMana,
	ResourceRunicMana,
	ResourceGroveMana,
}

type Order string

const (
	OrderNormal Order = "normal"
	OrderStand  Order = "stand"
	OrderGuard  Order = "guard"
	OrderRoam   Order = "roam"
)

type SiteKind string

const (
	SiteMerchant  SiteKind = "merchant"
	SiteMage      SiteKind = "mage"
	SiteMercenary SiteKind = "mercenary"
	SiteTrainer   SiteKind = "trainer"
	SiteMarket    SiteKind = "market"
)

// Facing is one of eight directions a stack looks at, counted clockwise.
type Facing int

const FacingCount = 8
