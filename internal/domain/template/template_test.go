package template

import (
	"encoding/json"
	"errors"
	"testing"

	"scenariogen/internal/domain/world"
)

const sampleJSON = `{
  "name": "duel",
  "size": 48,
  "settings": {"forest": 140, "forbidden_units": ["g000uu0001"]},
  "zones": [
    {"id": 0, "type": "player_start", "race": "human", "size": 2,
     "capital": {"garrison": {"value": [300, 400]}, "guardian": false},
     "towns": [{"tier": 9, "gap_mask": 20, "garrison": {"value": 100}}],
     "stacks": [{"count": 2, "value": {"min": 50, "max": 90}}],
     "bags": {"count": 1, "loot": {"items": [{"id": "g000ig0001"}]}}},
    {"id": 1, "type": "treasure", "border": "semi_open",
     "mages": [{"spell_level": [7, 0]}]}
  ],
  "connections": [{"from": 0, "to": 1, "size": 3}]
}`

func TestNormalizeClampsAndDefaults(t *testing.T) {
	var tmpl MapTemplate
	if err := json.Unmarshal([]byte(sampleJSON), &tmpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := tmpl.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if tmpl.Settings.Forest != 100 {
		t.Fatalf("expected forest clamped to 100, got %d", tmpl.Settings.Forest)
	}
	start := tmpl.Zones[0]
	if start.Border != BorderClosed {
		t.Fatalf("expected closed default border, got %s", start.Border)
	}
	if start.Capital.HasGuardian() {
		t.Fatalf("expected guardian disabled")
	}
	city := start.Cities[0]
	if city.Tier != 5 || city.GapMask != 15 || city.Owner != world.RaceNeutral {
		t.Fatalf("unexpected city normalisation %+v", city)
	}
	if city.Garrison.Order != world.OrderStand {
		t.Fatalf("expected stand order default, got %s", city.Garrison.Order)
	}
	if start.Stacks[0].Count != 2 || start.Stacks[0].Value.Max != 90 {
		t.Fatalf("unexpected stack group %+v", start.Stacks[0])
	}
	if start.Bags.Loot.RequiredItems[0].Amount != world.Fixed(1) {
		t.Fatalf("expected required item amount default 1")
	}
	treasure := tmpl.Zones[1]
	if treasure.Gap() != DefaultGapChance {
		t.Fatalf("expected default gap chance, got %d", treasure.Gap())
	}
	if lv := treasure.Mages[0].SpellLevels; lv.Min != 1 || lv.Max != 5 {
		t.Fatalf("expected spell levels clamped to [1,5], got %+v", lv)
	}
	if tmpl.Connections[0].Size != 1 {
		t.Fatalf("expected connection size clamped")
	}
	if Priority(nil) != DefaultAiPriority {
		t.Fatalf("expected default ai priority")
	}
}

func TestNormalizeRejectsBrokenZoneGraph(t *testing.T) {
	tmpl := MapTemplate{
		Size:        48,
		Zones:       []ZoneOptions{{ID: 0, Type: ZoneTreasure}},
		Connections: []Connection{{From: 0, To: 4}},
	}
	if err := tmpl.Normalize(); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected invalid template, got %v", err)
	}

	start := MapTemplate{Size: 48, Zones: []ZoneOptions{{ID: 0, Type: ZonePlayerStart}}}
	if err := start.Normalize(); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected start zone without race to fail, got %v", err)
	}

	small := MapTemplate{Size: 8, Zones: []ZoneOptions{{ID: 0, Type: ZoneTreasure}}}
	if err := small.Normalize(); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected tiny map to fail, got %v", err)
	}
}
