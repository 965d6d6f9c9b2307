package world

type Terrain string

const (
	TerrainHuman   Terrain = "human"
	TerrainDwarf   Terrain = "dwarf"
	TerrainHeretic Terrain = "heretic"
	TerrainUndead  Terrain = "undead"
	TerrainElf     Terrain = "elf"
	TerrainNeutral Terrain = "neutral"
)

type Ground string

const (
	GroundPlain    Ground = "plain"
	GroundForest   Ground = "forest"
	GroundWater    Ground = "water"
	GroundMountain Ground = "mountain"
)

type Tile struct {
	Terrain   Terrain  `json:"terrain"`
	Ground    Ground   `json:"ground"`
	Road      bool     `json:"road,omitempty"`
	TreeImage int      `json:"tree_image,omitempty"`
	Blocking  ObjectID `json:"blocking,omitempty"`
	Visitable ObjectID `json:"visitable,omitempty"`
}

// SetTerrainGround forces neutral terrain under water and mountains.
func (t *Tile) SetTerrainGround(terrain Terrain, ground Ground) {
	if ground == GroundWater || ground == GroundMountain {
		terrain = TerrainNeutral
	}
	t.Terrain = terrain
	t.Ground = ground
}

func (t Tile) IsWater() bool {
	return t.Ground == GroundWater
}

func (t Tile) IsVisitable() bool {
	return t.Visitable != ""
}

func (t Tile) IsBlockedByObject() bool {
	return t.Blocking != ""
}
