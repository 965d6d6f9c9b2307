package generation

import (
	"math"

	"scenariogen/internal/domain/template"
	"scenariogen/internal/domain/world"
)

// ringRadius places zones without a center on a ring around the middle of
// the map, in template order.
const ringRadius = 0.35

// carveZones assigns every tile to the zone whose center is nearest, with
// squared distances scaled down by the zone size.
func (g *Generator) carveZones() error {
	size := g.Map.Grid.Size()
	n := len(g.zones)
	for i, z := range g.zones {
		c := template.Center{X: 0.5, Y: 0.5}
		switch {
		case z.Options.Center != nil:
			c = *z.Options.Center
		case n > 1:
			angle := 2 * math.Pi * float64(i) / float64(n)
			c = template.Center{X: 0.5 + ringRadius*math.Cos(angle), Y: 0.5 + ringRadius*math.Sin(angle)}
		}
		z.center = template.Center{X: wrap(c.X), Y: wrap(c.Y)}
		// Keep room for the town placed at the center and the tile below its entrance.
		x := clamp(int(z.center.X*float64(size)), 3, size-4)
		y := clamp(int(z.center.Y*float64(size)), 3, size-4)
		z.pos = world.Pos(x, y)
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := world.Pos(x, y)
			var owner *Zone
			best := math.MaxFloat64
			for _, z := range g.zones {
				d := float64(p.DistanceSquared(z.pos)) / float64(max(z.Options.Size, 1))
				if d < best {
					best = d
					owner = z
				}
			}
			owner.addTile(p)
		}
	}

	for _, z := range g.zones {
		if len(z.tiles) == 0 {
			return lackOfSpace(z.ID, "zone")
		}
		if !z.contains(z.pos) {
			z.pos = closestTile(z.tiles, z.pos)
		}
		g.log.Debug("zone carved", "zone", z.ID, "type", z.Options.Type, "center", z.pos, "tiles", len(z.tiles))
	}
	return nil
}

func wrap(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
