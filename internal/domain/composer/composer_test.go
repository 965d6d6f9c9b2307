package composer

import (
	"errors"
	"testing"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/world"
)

func newTestCatalog(t *testing.T, units ...catalog.UnitInfo) *catalog.Catalog {
	t.Helper()
	if len(units) == 0 {
		units = []catalog.UnitInfo{
			{ID: "lord", Value: 50, Leader: true, Leadership: 2, Reach: catalog.ReachAdjacent, Subrace: world.SubraceHuman},
			{ID: "archmage", Value: 120, Leader: true, Leadership: 3, Reach: catalog.ReachAll, Subrace: world.SubraceHuman},
			{ID: "titan", Value: 200, Leader: true, Leadership: 3, Big: true, Reach: catalog.ReachAdjacent, Subrace: world.SubraceNeutral},
			{ID: "squire", Value: 20, Reach: catalog.ReachAdjacent, Subrace: world.SubraceHuman},
			{ID: "knight", Value: 60, Reach: catalog.ReachAdjacent, Subrace: world.SubraceHuman},
			{ID: "archer", Value: 25, Reach: catalog.ReachArcher, Subrace: world.SubraceHuman},
			{ID: "acolyte", Value: 40, Reach: catalog.ReachAll, Subrace: world.SubraceHuman},
			{ID: "giant", Value: 90, Big: true, Reach: catalog.ReachAdjacent, Subrace: world.SubraceNeutral},
		}
	}
	c, err := catalog.New(catalog.Data{Units: units})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func TestConstrainedSumPartsArePositiveAndSumToTotal(t *testing.T) {
	r := rng.New(11)
	for n := 1; n <= 6; n++ {
		for _, total := range []int{n, 10, 97, 1000} {
			parts := ConstrainedSum(n, total, r)
			if len(parts) != n {
				t.Fatalf("expected %d parts for %d, got %d", n, total, len(parts))
			}
			sum := 0
			for _, p := range parts {
				if p < 1 {
					t.Fatalf("expected positive part, got %d", p)
				}
				sum += p
			}
			if sum != total {
				t.Fatalf("expected sum %d, got %d", total, sum)
			}
		}
	}
	if got := ConstrainedSum(1, 42, r); len(got) != 1 || got[0] != 42 {
		t.Fatalf("expected [42], got %v", got)
	}
	if ConstrainedSum(3, 0, r) != nil {
		t.Fatalf("expected nil for empty total")
	}
	if got := ConstrainedSum(5, 3, r); len(got) != 3 {
		t.Fatalf("expected parts clamped to total, got %v", got)
	}
}

func TestLeaderSlotRules(t *testing.T) {
	if LeaderSlot(&catalog.UnitInfo{Big: true, Reach: catalog.ReachAll}) != 2 {
		t.Fatalf("big leader must take slot 2")
	}
	if LeaderSlot(&catalog.UnitInfo{Reach: catalog.ReachArcher}) != 3 {
		t.Fatalf("ranged leader must take slot 3")
	}
	if LeaderSlot(&catalog.UnitInfo{Support: true, Reach: catalog.ReachAdjacent}) != 3 {
		t.Fatalf("support leader must take slot 3")
	}
	if LeaderSlot(&catalog.UnitInfo{Reach: catalog.ReachAdjacent}) != 2 {
		t.Fatalf("melee leader must take slot 2")
	}
}

func TestLowBudgetFallsBackToWeakestLeader(t *testing.T) {
	c := New(newTestCatalog(t), rng.New(5), DefaultConfig(), nil)
	f, err := c.ComposeStack(Request{Value: world.Fixed(40)})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if f.Leader.ID != "lord" {
		t.Fatalf("expected weakest leader, got %s", f.Leader.ID)
	}
	if f.Units != 1 {
		t.Fatalf("expected a single unit for a budget below any soldier, got %d", f.Units)
	}
}

func TestComposeStackWithoutValueYieldsNothing(t *testing.T) {
	c := New(newTestCatalog(t), rng.New(5), DefaultConfig(), nil)
	f, err := c.ComposeStack(Request{})
	if err != nil || f != nil {
		t.Fatalf("expected no formation, got %+v %v", f, err)
	}
}

func TestComposeStackFailsWithoutLeaders(t *testing.T) {
	cat := newTestCatalog(t, catalog.UnitInfo{ID: "squire", Value: 20, Reach: catalog.ReachAdjacent})
	c := New(cat, rng.New(5), DefaultConfig(), nil)
	_, err := c.ComposeStack(Request{Value: world.Fixed(100)})
	var ce *CompositionError
	if !errors.As(err, &ce) || !errors.Is(err, ErrComposition) {
		t.Fatalf("expected composition error, got %v", err)
	}
	if ce.Value != 100 {
		t.Fatalf("expected value 100 in error, got %d", ce.Value)
	}
}

func TestFormationsKeepSlotInvariants(t *testing.T) {
	c := New(newTestCatalog(t), rng.New(99), DefaultConfig(), nil)
	for i := 0; i < 200; i++ {
		f, err := c.ComposeStack(Request{Value: world.NewRandomValue(60, 700)})
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		if f.Soldiers[f.LeaderSlot] != nil {
			t.Fatalf("soldier placed on the leader slot")
		}
		if f.Leader.Big {
			if f.LeaderSlot != 2 || f.Soldiers[3] != nil {
				t.Fatalf("big leader must own slots 2 and 3")
			}
		}
		for pos := 0; pos < world.GroupSlots; pos += 2 {
			front, back := f.Soldiers[pos], f.Soldiers[pos+1]
			if front != nil && front.Big && front != back {
				t.Fatalf("big unit at %d must occupy its whole column", pos)
			}
			if back != nil && back.Big && front != back {
				t.Fatalf("big unit at %d must occupy its whole column", pos+1)
			}
		}
		if f.Value() > f.Strength && f.Leader.Value <= f.Strength {
			t.Fatalf("formation value %d exceeds strength %d", f.Value(), f.Strength)
		}
	}
}

func TestFilteredOutSlotCarriesValueOver(t *testing.T) {
	c := New(newTestCatalog(t), rng.New(3), DefaultConfig(), nil)
	positions := AllPositions()
	var units GroupUnits
	cons := Constraints{Subraces: []world.Subrace{world.SubraceDwarf}}
	unused := c.CreateGroup(0, positions, &units, []int{30, 50}, cons)
	if unused != 80 {
		t.Fatalf("expected all value carried over, got %d", unused)
	}
	if positions.Size() != world.GroupSlots {
		t.Fatalf("expected no slot filled, got %d free", positions.Size())
	}
	if left := c.TightenGroup(unused, positions, &units, cons); left != 80 {
		t.Fatalf("expected tightening to give up with value intact, got %d", left)
	}
}

func TestLeadershipShortfall(t *testing.T) {
	giant := &catalog.UnitInfo{Value: 90, Big: true}
	squire := &catalog.UnitInfo{Value: 20}
	f := Formation{Leader: &catalog.UnitInfo{Leadership: 2}}
	f.Soldiers[0] = giant
	f.Soldiers[1] = giant
	f.Soldiers[4] = squire
	// 1 for the leader, 2 for the giant, 1 for the squire.
	if got := f.LeadershipShortfall(); got != 2 {
		t.Fatalf("expected shortfall 2, got %d", got)
	}
	if got := f.Value(); got != 110 {
		t.Fatalf("expected soldiers counted once, got %d", got)
	}
}

func TestPickStackLeaderConsumesUntilPaid(t *testing.T) {
	c := New(newTestCatalog(t), rng.New(1), DefaultConfig(), nil)
	leader, unused, consumed := c.PickStackLeader([]int{30, 30, 30}, 0, []string{"lord"})
	if leader == nil || leader.ID != "lord" {
		t.Fatalf("expected requested leader, got %+v", leader)
	}
	if consumed != 2 || unused != 10 {
		t.Fatalf("expected two parts consumed with 10 unused, got %d %d", consumed, unused)
	}
}
