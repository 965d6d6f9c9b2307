package composer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/catalog"
	"scenariogen/internal/domain/rng"
	"scenariogen/internal/domain/world"
)

var ErrComposition = errors.New("could not compose stack")

type CompositionError struct {
	Value int
	Units int
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("%s: value %d, units %d", ErrComposition.Error(), e.Value, e.Units)
}

func (e *CompositionError) Unwrap() error { return ErrComposition }

const (
	maxSoldiers   = 5
	leaderSlot    = 2
	backLeaderPos = 3
)

type Config struct {
	LeaderCoeffStart float64
	LeaderCoeffStep  float64
	LeaderPasses     int
	TightenFailLimit int
}

func DefaultConfig() Config {
	return Config{
		LeaderCoeffStart: 0.65,
		LeaderCoeffStep:  0.15,
		LeaderPasses:     5,
		TightenFailLimit: 200,
	}
}

// GroupUnits mirrors a formation: a big unit appears in both slots of its column.
type GroupUnits [world.GroupSlots]*catalog.UnitInfo

// Constraints narrow the catalog for every pick of one group.
type Constraints struct {
	Subraces []world.Subrace
	Filter   catalog.UnitFilter
}

type Request struct {
	Value     world.RandomValue[int]
	LeaderIDs []string
	Constraints
}

type Formation struct {
	Leader     *catalog.UnitInfo
	LeaderSlot int
	Soldiers   GroupUnits
	Strength   int
	Units      int
	Unused     int
}

// LeadershipShortfall is how many leadership points the leader lacks to
// command its soldiers.
func (f Formation) LeadershipShortfall() int {
	required := 1
	if f.Leader.Big {
		required = 2
	}
	for pos := 0; pos < len(f.Soldiers); pos++ {
		u := f.Soldiers[pos]
		if u == nil {
			continue
		}
		required++
		if u.Big {
			required++
			pos++
		}
	}
	return max(0, required-f.Leader.Leadership)
}

// Value sums the leader and every soldier once.
func (f Formation) Value() int {
	total := f.Leader.Value
	for pos := 0; pos < len(f.Soldiers); pos++ {
		u := f.Soldiers[pos]
		if u == nil {
			continue
		}
		total += u.Value
		if u.Big {
			pos++
		}
	}
	return total
}

type Composer struct {
	cfg       Config
	cat       *catalog.Catalog
	rand      *rng.Random
	forbidden []catalog.UnitFilter
	log       *slog.Logger
}

func New(cat *catalog.Catalog, rand *rng.Random, cfg Config, log *slog.Logger, forbidden ...catalog.UnitFilter) *Composer {
	def := DefaultConfig()
	if cfg.LeaderCoeffStart <= 0 {
		cfg.LeaderCoeffStart = def.LeaderCoeffStart
	}
	if cfg.LeaderCoeffStep <= 0 {
		cfg.LeaderCoeffStep = def.LeaderCoeffStep
	}
	if cfg.LeaderPasses <= 0 {
		cfg.LeaderPasses = def.LeaderPasses
	}
	if cfg.TightenFailLimit <= 0 {
		cfg.TightenFailLimit = def.TightenFailLimit
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Composer{cfg: cfg, cat: cat, rand: rand, forbidden: forbidden, log: log}
}

// ConstrainedSum splits total into n positive parts in random order.
func ConstrainedSum(n, total int, r *rng.Random) []int {
	if total <= 0 || n <= 0 {
		return nil
	}
	n = min(n, total)
	cuts := mapset.New[int]()
	for cuts.Size() < n-1 {
		cuts.Put(r.IntRange(1, total-1))
	}
	points := sorted(cuts)
	parts := make([]int, 0, n)
	prev := 0
	for _, p := range points {
		parts = append(parts, p-prev)
		prev = p
	}
	parts = append(parts, total-prev)
	rng.Shuffle(r, parts)
	return parts
}

// AllPositions returns a fresh set of every formation slot.
func AllPositions() mapset.Set[int] {
	s := mapset.New[int]()
	for i := 0; i < world.GroupSlots; i++ {
		s.Put(i)
	}
	return s
}

// ComposeStack rolls a stack value and turns it into a leader and soldiers.
// A request without a value yields no formation.
func (c *Composer) ComposeStack(req Request) (*Formation, error) {
	if !req.Value.IsSet() {
		return nil, nil
	}
	strength := rng.Pick(c.rand, req.Value)
	soldiersStrength := strength - c.cat.MinLeaderValue()
	maxUnits := 0
	if minSoldier := c.cat.MinSoldierValue(); minSoldier > 0 {
		maxUnits = max(0, min(maxSoldiers, soldiersStrength/minSoldier))
	}
	soldiers := c.rand.IntRange(0, maxUnits)
	unitsTotal := soldiers + 1
	values := ConstrainedSum(unitsTotal, strength, c.rand)

	var (
		leader   *catalog.UnitInfo
		unused   int
		consumed int
	)
	if len(req.LeaderIDs) > 0 {
		leader, unused, consumed = c.PickStackLeader(values, 0, req.LeaderIDs)
	}
	if leader == nil {
		leader, unused, consumed = c.CreateStackLeader(values, 0, req.Constraints)
	}
	if leader == nil {
		return nil, &CompositionError{Value: strength, Units: unitsTotal}
	}

	slot := LeaderSlot(leader)
	positions := AllPositions()
	positions.Remove(slot)
	if leader.Big {
		positions.Remove(slot + 1)
	}

	var units GroupUnits
	if consumed < len(values) {
		unused = c.CreateGroup(unused, positions, &units, values[consumed:], req.Constraints)
	}
	unused = c.TightenGroup(unused, positions, &units, req.Constraints)

	f := &Formation{
		Leader:     leader,
		LeaderSlot: slot,
		Soldiers:   units,
		Strength:   strength,
		Units:      unitsTotal,
		Unused:     unused,
	}
	c.log.Debug("stack composed",
		"value", strength,
		"created", f.Value(),
		"unused", strength-f.Value(),
		"units", unitsTotal,
		"leader", leader.ID,
	)
	return f, nil
}

// LeaderSlot places big leaders on the front of the center column, ranged
// and support leaders behind it, everyone else in front.
func LeaderSlot(u *catalog.UnitInfo) int {
	switch {
	case u.Big:
		return leaderSlot
	case u.Support, u.Reach != catalog.ReachAdjacent:
		return backLeaderPos
	default:
		return leaderSlot
	}
}

// PickStackLeader picks one of the requested leaders and consumes values
// until the leader is paid for.
func (c *Composer) PickStackLeader(values []int, unused int, leaderIDs []string) (*catalog.UnitInfo, int, int) {
	ids := mapset.New[string]()
	for _, id := range leaderIDs {
		ids.Put(id)
	}
	notRequested := func(u *catalog.UnitInfo) bool { return !ids.Has(u.ID) }
	leader := rng.Element(c.rand, c.cat.Leaders(notRequested))
	if leader == nil {
		return nil, unused, 0
	}
	sum := unused
	consumed := 0
	for i, v := range values {
		sum += v
		consumed = i + 1
		if i == 0 && leader.Big {
			continue
		}
		if sum > leader.Value {
			break
		}
	}
	return leader, max(0, sum-leader.Value), consumed
}

// CreateStackLeader searches for a leader whose value fits a window below
// the accumulated value, widening the window after every full pass. When
// nothing fits the weakest leader is taken.
func (c *Composer) CreateStackLeader(values []int, unused int, cons Constraints) (*catalog.UnitInfo, int, int) {
	coeff := c.cfg.LeaderCoeffStart
	canPlaceBig := len(values) < world.GroupSlots
	for pass := 0; pass < c.cfg.LeaderPasses; pass++ {
		acc := unused
		for i, part := range values {
			value := part + acc
			minValue := float64(value) * coeff
			window := func(u *catalog.UnitInfo) bool {
				if !canPlaceBig && u.Big {
					return true
				}
				return float64(u.Value) < minValue || u.Value > value
			}
			filters := append(c.unitFilters(cons), window)
			if leader := rng.Element(c.rand, c.cat.Leaders(filters...)); leader != nil {
				return leader, value - leader.Value, i + 1
			}
			acc = value
		}
		coeff = max(0, coeff-c.cfg.LeaderCoeffStep)
	}

	for _, l := range c.cat.Leaders() {
		if l.Value == c.cat.MinLeaderValue() {
			c.log.Warn("could not pick leader, placing weakest", "leader", l.ID)
			return l, 0, 0
		}
	}
	return nil, unused, 0
}

// CreateGroup spends one value part per soldier. Parts that buy nothing
// are carried over to the next pick.
func (c *Composer) CreateGroup(unused int, positions mapset.Set[int], units *GroupUnits, values []int, cons Constraints) int {
	for i := 0; i < len(values) && positions.Size() > 0; i++ {
		value := values[i] + unused
		coeff := 0.95 - float64(positions.Size())*0.05
		minValue := float64(value) * coeff

		pos := rng.Element(c.rand, sorted(positions))
		front, second := slotPair(pos)
		canPlaceBig := positions.Has(second) && positions.Size() > len(values)

		u := c.pickSoldier(cons, front, canPlaceBig, minValue, value)
		if u == nil {
			unused += values[i]
			continue
		}
		unused = value - u.Value
		c.assign(u, pos, second, front, canPlaceBig, positions, units)
	}
	return unused
}

// TightenGroup keeps spending leftover value while slots are open, giving
// up after a run of failed picks.
func (c *Composer) TightenGroup(unused int, positions mapset.Set[int], units *GroupUnits, cons Constraints) int {
	minSoldier := c.cat.MinSoldierValue()
	coeff := 1 - float64(positions.Size())*0.05
	fails := 0
	for fails < c.cfg.TightenFailLimit && positions.Size() > 0 && unused >= minSoldier {
		value := unused
		minValue := float64(value) * coeff

		pos := rng.Element(c.rand, sorted(positions))
		front, second := slotPair(pos)
		canPlaceBig := positions.Has(second)

		u := c.pickSoldier(cons, front, canPlaceBig, minValue, value)
		if u == nil {
			coeff = max(0, coeff-0.05)
			fails++
			continue
		}
		unused = value - u.Value
		fails = 0
		c.assign(u, pos, second, front, canPlaceBig, positions, units)
		coeff = 1 - float64(positions.Size())*0.05
	}
	return unused
}

// FillGroup composes a group without a leader, e.g. a garrison or a ruin guard.
func (c *Composer) FillGroup(values []int, positions mapset.Set[int], cons Constraints) GroupUnits {
	var units GroupUnits
	unused := c.CreateGroup(0, positions, &units, values, cons)
	c.TightenGroup(unused, positions, &units, cons)
	return units
}

func (c *Composer) pickSoldier(cons Constraints, front, canPlaceBig bool, minValue float64, value int) *catalog.UnitInfo {
	role := func(u *catalog.UnitInfo) bool {
		if !canPlaceBig && u.Big {
			return true
		}
		if canPlaceBig {
			return false
		}
		if front {
			return u.Reach != catalog.ReachAdjacent
		}
		return u.Reach == catalog.ReachAdjacent
	}
	window := func(u *catalog.UnitInfo) bool {
		return float64(u.Value) < minValue || u.Value > value
	}
	filters := append(c.unitFilters(cons), role, window)
	return rng.Element(c.rand, c.cat.Soldiers(filters...))
}

func (c *Composer) assign(u *catalog.UnitInfo, pos, second int, front, canPlaceBig bool, positions mapset.Set[int], units *GroupUnits) {
	if u.Big {
		positions.Remove(pos)
		positions.Remove(second)
		units[pos] = u
		units[second] = u
		return
	}
	if canPlaceBig {
		melee := u.Reach == catalog.ReachAdjacent
		if (front && !melee) || (!front && melee) {
			pos = second
		}
	}
	positions.Remove(pos)
	units[pos] = u
}

func (c *Composer) unitFilters(cons Constraints) []catalog.UnitFilter {
	filters := make([]catalog.UnitFilter, 0, len(c.forbidden)+4)
	filters = append(filters, c.forbidden...)
	if len(cons.Subraces) > 0 {
		filters = append(filters, catalog.SubraceAllowed(cons.Subraces))
	}
	if cons.Filter != nil {
		filters = append(filters, cons.Filter)
	}
	return filters
}

// slotPair reports whether pos is in the front row and the other slot of its column.
func slotPair(pos int) (bool, int) {
	if pos%2 == 0 {
		return true, pos + 1
	}
	return false, pos - 1
}

func sorted(s mapset.Set[int]) []int {
	out := make([]int, 0, s.Size())
	s.Each(func(v int) { out = append(out, v) })
	sort.Ints(out)
	return out
}
