package generation

import (
	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/world"
)

// connectWithCenter frees a shortest path from start to the zone center.
// Free tiles cost 1, possible tiles 2 and, when passThroughBlocked is set,
// tiles waiting for obstacles 3. The start tile itself is left untouched.
func (z *Zone) connectWithCenter(start world.Position, straightOnly, passThroughBlocked bool) bool {
	occ := z.g.occ
	grid := z.g.Map.Grid

	closed := mapset.New[world.Position]()
	cameFrom := map[world.Position]world.Position{start: world.InvalidPosition}
	distances := map[world.Position]float64{start: 0}
	open := newFrontier()
	open.push(start, 0)

	for !open.empty() {
		node, _ := open.pop()
		current := node.pos
		if closed.Has(current) {
			continue
		}
		closed.Put(current)

		if current == z.pos {
			for bt := current; cameFrom[bt].Valid(); bt = cameFrom[bt] {
				occ.SetOccupied(bt, TileFree)
			}
			return true
		}

		for _, p := range grid.Neighbors(current, straightOnly) {
			if closed.Has(p) || !z.contains(p) {
				continue
			}
			var cost float64
			switch {
			case occ.IsFree(p):
				cost = 1
			case occ.IsPossible(p):
				cost = 2
			case passThroughBlocked && occ.ShouldBeBlocked(p):
				cost = 3
			default:
				continue
			}
			d := distances[current] + cost
			if best, ok := distances[p]; ok && d >= best {
				continue
			}
			cameFrom[p] = current
			distances[p] = d
			open.push(p, d)
		}
	}
	return false
}

// crunchPath greedily clears tiles from src towards dst, only stepping to
// tiles strictly closer to dst. It stops on reaching dst or any free tile.
// Cleared tiles are added to cleared when it is not nil.
func (z *Zone) crunchPath(src, dst world.Position, straightOnly bool, cleared *mapset.Set[world.Position]) bool {
	occ := z.g.occ
	grid := z.g.Map.Grid
	dirs := world.NeighborDirs(straightOnly)
	record := func(p world.Position) {
		if cleared != nil {
			cleared.Put(p)
		}
	}

	result := false
	end := false
	current := src
	distance := float64(current.DistanceSquared(dst))

	for !end {
		if current == dst {
			result = true
			break
		}
		lastDistance := distance

		// Neighbours are taken relative to the current tile, which moves
		// during the scan.
		for _, d := range dirs {
			if result {
				break
			}
			p := current.Add(d)
			if !grid.InBounds(p) {
				continue
			}
			if p == dst {
				result = true
				end = true
			}
			if float64(p.DistanceSquared(dst)) >= distance {
				continue
			}
			if occ.IsBlocked(p) || !z.contains(p) {
				continue
			}
			if occ.IsPossible(p) {
				occ.SetOccupied(p, TileFree)
				record(p)
				current = p
				distance = float64(current.DistanceSquared(dst))
			} else if occ.IsFree(p) {
				end = true
				result = true
			}
		}

		another := world.InvalidPosition
		if !result && distance >= lastDistance {
			limit := 2 * distance
			for _, p := range grid.Neighbors(current, straightOnly) {
				if float64(current.DistanceSquared(dst)) >= limit {
					continue
				}
				if !z.contains(p) || !occ.IsPossible(p) {
					continue
				}
				record(p)
				another = p
				limit = float64(current.DistanceSquared(dst))
			}
			if another.Valid() {
				record(another)
				occ.SetOccupied(another, TileFree)
				current = another
			}
		}

		if !result && distance >= lastDistance && !another.Valid() {
			z.g.log.Debug("no tile closer to destination", "zone", z.ID, "from", current, "to", dst)
			break
		}
	}
	return result
}

// connectPath frees a path from src to the nearest free tile. When none is
// reachable every explored tile is sealed: possible tiles become blocked and
// all of them leave the zone's possible set.
func (z *Zone) connectPath(src world.Position, straightOnly bool) bool {
	occ := z.g.occ
	grid := z.g.Map.Grid

	closed := mapset.New[world.Position]()
	cameFrom := map[world.Position]world.Position{src: world.InvalidPosition}
	distances := map[world.Position]int{src: 0}
	open := newFrontier()
	open.push(src, 0)

	for !open.empty() {
		node, _ := open.pop()
		current := node.pos
		if closed.Has(current) {
			continue
		}
		closed.Put(current)

		if occ.IsFree(current) {
			bt := current
			for cameFrom[bt].Valid() {
				occ.SetOccupied(bt, TileFree)
				bt = cameFrom[bt]
			}
			occ.SetOccupied(bt, TileFree)
			return true
		}

		for _, p := range grid.Neighbors(current, straightOnly) {
			if closed.Has(p) {
				continue
			}
			if occ.IsBlocked(p) || !z.contains(p) {
				continue
			}
			d := distances[current] + 1
			if best, ok := distances[p]; ok && d >= best {
				continue
			}
			cameFrom[p] = current
			distances[p] = d
			open.push(p, float64(d))
		}
	}

	closed.Each(func(p world.Position) {
		if occ.IsPossible(p) {
			occ.SetOccupied(p, TileBlocked)
		}
		z.possible.Remove(p)
	})
	return false
}

// createRoad lays a road from src to dst or to the first road met on the
// way. Straight steps cost 1; diagonals, tried only when no straight step is
// possible, cost 2.1. Roads never cross water.
func (z *Zone) createRoad(src, dst world.Position) bool {
	occ := z.g.occ
	grid := z.g.Map.Grid

	// A road may already run under src, e.g. below a zone guard.
	grid.SetRoad(src, false)

	closed := mapset.New[world.Position]()
	cameFrom := map[world.Position]world.Position{src: world.InvalidPosition}
	distances := map[world.Position]float64{src: 0}
	open := newFrontier()
	open.push(src, 0)

	for !open.empty() {
		node, _ := open.pop()
		current := node.pos
		if closed.Has(current) {
			continue
		}
		closed.Put(current)

		if current == dst || grid.IsRoad(current) {
			var path []world.Position
			for bt := current; bt.Valid(); bt = cameFrom[bt] {
				path = append(path, bt)
				grid.SetRoad(bt, true)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			road := world.RoadInfo{Source: src, Destination: current, Path: path}
			z.roads = append(z.roads, road)
			z.g.Map.AddRoad(road)
			return true
		}

		currentTile := grid.Tile(current)
		found := false
		cost := 1.0
		visit := func(p world.Position) {
			if closed.Has(p) {
				return
			}
			d := node.cost + cost
			if best, ok := distances[p]; ok && d >= best {
				return
			}
			tile := grid.Tile(p)
			if tile.IsWater() {
				return
			}
			canMove := grid.CanMoveBetween(current, p)
			emptyPath := occ.IsFree(p) && occ.IsFree(current)
			visitable := (tile.IsVisitable() || currentTile.IsVisitable()) && canMove
			completed := p == dst
			if !emptyPath && !visitable && !completed {
				return
			}
			if z.contains(p) || completed {
				cameFrom[p] = current
				distances[p] = d
				open.push(p, d)
				found = true
			}
		}

		grid.ForEachDirectNeighbor(current, visit)
		if !found {
			cost = 2.1
			grid.ForEachDiagonalNeighbor(current, visit)
		}
	}
	z.g.log.Debug("failed to create road", "zone", z.ID, "from", src, "to", dst)
	return false
}
