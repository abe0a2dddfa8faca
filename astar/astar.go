// Package astar implements shortest-path search over occupancy grids with
// unit step costs and a manhattan heuristic, recording a snapshot of the
// algorithm's internal state at every evaluation so a finished search can be
// replayed step by step.
package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/g2mo/A-star-pathfinding/grid_world"
)

var (
	// ErrInvalidEndpoint is returned when a start or goal cell is blocked
	// or lies outside the grid.
	ErrInvalidEndpoint = errors.New("endpoint is blocked or out of bounds")
	// ErrDimensionMismatch is returned when an endpoint's arity differs
	// from the grid's dimensionality.
	ErrDimensionMismatch = errors.New("endpoint arity does not match the grid")
)

// Grid is the read-only surface a search runs over. *grid_world.Grid
// satisfies it; any bounded occupancy structure can stand in.
type Grid interface {
	Dims() int
	Walkable(grid_world.Coord) bool
}

// Score is the cost triple tracked for a discovered coordinate: g is the
// cheapest known cost from the start, h the heuristic to the goal, and f
// their sum.
type Score struct {
	G, H, F int
}

// Snapshot records the engine state for one evaluation: the coordinate being
// expanded, every coordinate expanded before it in order, and the discovered
// but unexpanded frontier with its scores. The frontier view reflects the
// instant just before Current was taken off the queue, so Current is always
// among its keys.
type Snapshot struct {
	Current  grid_world.Coord
	Visited  []grid_world.Coord
	Frontier map[grid_world.Coord]Score
}

// Result is the outcome of one search. Path runs from start to goal
// inclusive and is nil when the goal is unreachable; the snapshots and the
// counters describe the work done either way.
type Result struct {
	Path            []grid_world.Coord
	Snapshots       []Snapshot
	NodesEvaluated  uint64
	MaxFrontierSize uint64
}

// FindPath searches g from start to goal. See FindPathContext.
func FindPath(g Grid, start, goal grid_world.Coord) (*Result, error) {
	return FindPathContext(context.Background(), g, start, goal)
}

// FindPathContext searches g from start to goal, checking ctx between
// evaluations. Exhausting the frontier without reaching the goal is not an
// error; the result then carries a nil path alongside the full trace.
func FindPathContext(ctx context.Context, g Grid, start, goal grid_world.Coord) (*Result, error) {
	if err := validate(g, start, goal); err != nil {
		return nil, err
	}

	topo := grid_world.TopologyFor(g.Dims())
	if topo == nil {
		return nil, fmt.Errorf("%d axis grid: %w", g.Dims(), ErrDimensionMismatch)
	}

	s := &search{
		grid:    g,
		topo:    topo,
		goal:    goal,
		open:    newFrontier(),
		nodes:   map[grid_world.Coord]*node{},
		visited: map[grid_world.Coord]bool{},
		result:  &Result{},
	}
	return s.run(ctx, start)
}

func validate(g Grid, start, goal grid_world.Coord) error {
	if start.Arity() != g.Dims() {
		return fmt.Errorf("start %v has %d components, grid has %d axes: %w",
			start, start.Arity(), g.Dims(), ErrDimensionMismatch)
	}
	if goal.Arity() != g.Dims() {
		return fmt.Errorf("goal %v has %d components, grid has %d axes: %w",
			goal, goal.Arity(), g.Dims(), ErrDimensionMismatch)
	}
	if !g.Walkable(start) {
		return fmt.Errorf("start %v: %w", start, ErrInvalidEndpoint)
	}
	if !g.Walkable(goal) {
		return fmt.Errorf("goal %v: %w", goal, ErrInvalidEndpoint)
	}
	return nil
}

// node is a discovered coordinate's table entry: its best known scores and
// the predecessor that produced them.
type node struct {
	coord  grid_world.Coord
	score  Score
	parent *node
}

type search struct {
	grid    Grid
	topo    grid_world.Topology
	goal    grid_world.Coord
	open    *frontier
	nodes   map[grid_world.Coord]*node
	visited map[grid_world.Coord]bool
	order   []grid_world.Coord
	result  *Result
}

func (s *search) run(ctx context.Context, start grid_world.Coord) (*Result, error) {
	h := s.topo.Distance(start, s.goal)
	s.nodes[start] = &node{coord: start, score: Score{G: 0, H: h, F: h}}
	s.open.push(start, h)
	s.observeFrontier()

	for s.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := s.open.pop()
		if s.visited[current] {
			// A stale duplicate left behind by a cost improvement;
			// it counts as neither an evaluation nor a snapshot.
			continue
		}

		s.result.NodesEvaluated++
		s.result.Snapshots = append(s.result.Snapshots, s.snapshot(current))

		if current == s.goal {
			s.result.Path = s.pathTo(current)
			return s.result, nil
		}

		s.visited[current] = true
		s.order = append(s.order, current)
		s.expand(current)
		s.observeFrontier()
	}

	// Frontier exhausted: the goal is unreachable from the start.
	return s.result, nil
}

// expand relaxes the walkable, unexpanded neighbors of current. A strictly
// cheaper route re-queues the neighbor and abandons its old entry to the
// stale check at pop time.
func (s *search) expand(current grid_world.Coord) {
	cur := s.nodes[current]
	for _, nb := range s.topo.Neighbors(current) {
		if !s.grid.Walkable(nb) || s.visited[nb] {
			continue
		}

		tentative := cur.score.G + 1
		if known, seen := s.nodes[nb]; seen && tentative >= known.score.G {
			continue
		}

		h := s.topo.Distance(nb, s.goal)
		s.nodes[nb] = &node{
			coord:  nb,
			score:  Score{G: tentative, H: h, F: tentative + h},
			parent: cur,
		}
		s.open.push(nb, tentative+h)
	}
}

// snapshot captures the engine state for the coordinate about to be
// expanded. The queue has already surrendered current, so it is folded back
// in to present the frontier as it stood before the pop.
func (s *search) snapshot(current grid_world.Coord) Snapshot {
	visited := make([]grid_world.Coord, len(s.order))
	copy(visited, s.order)

	front := make(map[grid_world.Coord]Score, len(s.open.members)+1)
	for c := range s.open.members {
		if !s.visited[c] {
			front[c] = s.nodes[c].score
		}
	}
	front[current] = s.nodes[current].score

	return Snapshot{Current: current, Visited: visited, Frontier: front}
}

func (s *search) observeFrontier() {
	if n := uint64(s.open.Len()); n > s.result.MaxFrontierSize {
		s.result.MaxFrontierSize = n
	}
}

func (s *search) pathTo(goal grid_world.Coord) []grid_world.Coord {
	var path []grid_world.Coord
	for n := s.nodes[goal]; n != nil; n = n.parent {
		path = append(path, n.coord)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
