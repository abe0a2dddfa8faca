package astar

import (
	"container/heap"

	"github.com/g2mo/A-star-pathfinding/grid_world"
)

// entry is one queued candidate. The same coordinate may be queued more than
// once: a cost improvement enqueues a fresh entry instead of re-keying the
// old one, and the engine discards the stale leftover when it surfaces.
type entry struct {
	coord grid_world.Coord
	fcost int
	seq   uint64
	index int
}

// frontier orders discovered coordinates by ascending f cost, breaking ties
// by insertion order so that runs over boards with many equal-cost cells are
// reproducible.
type frontier struct {
	entries entryHeap
	members map[grid_world.Coord]int
	nextSeq uint64
}

func newFrontier() *frontier {
	return &frontier{
		members: map[grid_world.Coord]int{},
	}
}

func (f *frontier) push(c grid_world.Coord, fcost int) {
	heap.Push(&f.entries, &entry{coord: c, fcost: fcost, seq: f.nextSeq})
	f.nextSeq++
	f.members[c]++
}

// pop removes and returns the cheapest queued coordinate. Callers must check
// Len first.
func (f *frontier) pop() grid_world.Coord {
	e := heap.Pop(&f.entries).(*entry)
	if f.members[e.coord] == 1 {
		delete(f.members, e.coord)
	} else {
		f.members[e.coord]--
	}
	return e.coord
}

// Len counts queued entries, stale duplicates included.
func (f *frontier) Len() int {
	return len(f.entries)
}

type entryHeap []*entry

func (h entryHeap) Len() int {
	return len(h)
}

func (h entryHeap) Less(i, j int) bool {
	if h[i].fcost != h[j].fcost {
		return h[i].fcost < h[j].fcost
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
