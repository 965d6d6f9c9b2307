package generation

import (
	"github.com/zyedidia/generic/heap"

	"scenariogen/internal/domain/world"
)

type frontierNode struct {
	pos  world.Position
	cost float64
	seq  int
}

// frontier is a min-queue on cost. Equal costs pop in insertion order.
type frontier struct {
	h   *heap.Heap[frontierNode]
	seq int
}

func newFrontier() *frontier {
	return &frontier{
		h: heap.New(func(a, b frontierNode) bool {
			if a.cost != b.cost {
				return a.cost < b.cost
			}
			return a.seq < b.seq
		}),
	}
}

func (f *frontier) push(p world.Position, cost float64) {
	f.h.Push(frontierNode{pos: p, cost: cost, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() (frontierNode, bool) {
	return f.h.Pop()
}

func (f *frontier) empty() bool {
	return f.h.Size() == 0
}
