// Package maze produces the occupancy arrays the pathfinder runs over: a
// carved planar labyrinth, a sparsely obstructed volume, and a small fixed
// demo board. Arrays are indexed row first, so a maze of W columns by H rows
// is returned as an H by W array whose far corner is (H-1, W-1).
package maze

import "math/rand"

// Generator builds occupancy arrays from a seeded random source, so a given
// seed always reproduces the same board.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Maze2D carves a labyrinth out of an all-walls board by recursive
// backtracking: from a random cell, repeatedly tunnel two cells toward a
// random uncarved target, backing up whenever none remains. The areas around
// the origin and the far corner are cleared afterward so the usual endpoints
// are always open.
func (g *Generator) Maze2D(width, height int) [][]int {
	grid := make([][]int, height)
	for x := range grid {
		grid[x] = make([]int, width)
		for y := range grid[x] {
			grid[x][y] = 1
		}
	}

	startX := g.between(0, height-1)
	startY := g.between(0, width-1)
	grid[startX][startY] = 0

	stack := [][2]int{{startX, startY}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		targets := carveTargets(grid, cur[0], cur[1])
		if len(targets) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := targets[g.rng.Intn(len(targets))]
		grid[(cur[0]+next[0])/2][(cur[1]+next[1])/2] = 0
		grid[next[0]][next[1]] = 0
		stack = append(stack, next)
	}

	clearArea2D(grid, 0, 0)
	clearArea2D(grid, height-1, width-1)
	return grid
}

// carveTargets lists the wall cells exactly two steps from (x, y), the
// candidate tunnels of the backtracker.
func carveTargets(grid [][]int, x, y int) (targets [][2]int) {
	for _, d := range [][2]int{{0, 2}, {2, 0}, {0, -2}, {-2, 0}} {
		nx, ny := x+d[0], y+d[1]
		if nx >= 0 && nx < len(grid) && ny >= 0 && ny < len(grid[0]) && grid[nx][ny] == 1 {
			targets = append(targets, [2]int{nx, ny})
		}
	}
	return
}

// clearArea2D opens every cell within one step of (x, y).
func clearArea2D(grid [][]int, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < len(grid) && ny >= 0 && ny < len(grid[0]) {
				grid[nx][ny] = 0
			}
		}
	}
}

// AddRandomPaths2D opens a share of randomly chosen interior cells so the
// carved maze gains loops and alternative routes. The share is relative to
// the full cell count; values at or below zero are a no-op.
func (g *Generator) AddRandomPaths2D(grid [][]int, percentage float64) {
	height, width := len(grid), len(grid[0])
	n := int(float64(height*width) * percentage)
	for i := 0; i < n; i++ {
		grid[g.between(1, height-2)][g.between(1, width-2)] = 0
	}
}

// Maze3D obstructs an all-open volume, indexed [depth][height][width], with
// three obstacle families: vertical pillars running along the z axis, solid
// blocks confined to the interior, and wall segments running along the x or
// y axis. Both corner regions stay cleared, and every obstacle keeps off the
// volume's outer edges, so the corner to corner route always exists.
func (g *Generator) Maze3D(width, height, depth int) [][][]int {
	grid := make([][][]int, depth)
	for x := range grid {
		grid[x] = make([][]int, height)
		for y := range grid[x] {
			grid[x][y] = make([]int, width)
		}
	}

	numPillars := minInt(8, height*width/20)
	for i := 0; i < numPillars; i++ {
		x := g.between(2, depth-3)
		y := g.between(2, height-3)
		run := g.between(3, minInt(7, width-2))
		startZ := g.between(0, width-run)
		for z := startZ; z < startZ+run; z++ {
			grid[x][y][z] = 1
		}
	}

	numBlocks := minInt(10, depth*height*width/100)
	for i := 0; i < numBlocks; i++ {
		x := g.between(1, depth-2)
		y := g.between(1, height-2)
		z := g.between(1, width-2)
		size := 2 + g.rng.Intn(2)
		for dx := 0; dx < size; dx++ {
			for dy := 0; dy < size; dy++ {
				for dz := 0; dz < size; dz++ {
					nx, ny, nz := x+dx, y+dy, z+dz
					if nx > 0 && nx < depth-1 && ny > 0 && ny < height-1 && nz > 0 && nz < width-1 {
						grid[nx][ny][nz] = 1
					}
				}
			}
		}
	}

	numWalls := minInt(6, (height+width)/4)
	for i := 0; i < numWalls; i++ {
		if g.rng.Float64() < 0.5 {
			y := g.between(1, height-2)
			z := g.between(1, width-2)
			length := g.between(3, depth/2)
			startX := g.between(0, depth-length)
			for x := startX; x < startX+length; x++ {
				grid[x][y][z] = 1
			}
		} else {
			x := g.between(1, depth-2)
			z := g.between(1, width-2)
			length := g.between(3, height/2)
			startY := g.between(0, height-length)
			for y := startY; y < startY+length; y++ {
				grid[x][y][z] = 1
			}
		}
	}

	clearArea3D(grid, 0, 0, 0)
	clearArea3D(grid, depth-1, height-1, width-1)
	return grid
}

// clearArea3D opens every cell within one step of (x, y, z).
func clearArea3D(grid [][][]int, x, y, z int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				nx, ny, nz := x+dx, y+dy, z+dz
				if nx >= 0 && nx < len(grid) &&
					ny >= 0 && ny < len(grid[0]) &&
					nz >= 0 && nz < len(grid[0][0]) {
					grid[nx][ny][nz] = 0
				}
			}
		}
	}
}

// AddRandomPaths3D opens a share of randomly chosen interior cells of the
// volume. The share is relative to the full cell count; values at or below
// zero are a no-op.
func (g *Generator) AddRandomPaths3D(grid [][][]int, percentage float64) {
	depth, height, width := len(grid), len(grid[0]), len(grid[0][0])
	n := int(float64(depth*height*width) * percentage)
	for i := 0; i < n; i++ {
		grid[g.between(1, depth-2)][g.between(1, height-2)][g.between(1, width-2)] = 0
	}
}

// Sample returns the fixed 8x8 demo board.
func Sample() [][]int {
	return [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 1, 1, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0, 1, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
}

// between returns a uniform value in [lo, hi]. Degenerate ranges collapse to
// lo, which keeps tiny boards from panicking rather than matching any
// particular distribution.
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
