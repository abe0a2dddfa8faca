// Package visualization renders finished searches without a browser: a
// symbolic console sketch of the board, and a png plot of the explored
// region and the path.
package visualization

import (
	"fmt"
	"io"
	"strings"

	"github.com/g2mo/A-star-pathfinding/grid_world"
)

// The console cell symbols.
const (
	symbolWalkable = "."
	symbolObstacle = "#"
	symbolPath     = "*"
	symbolStart    = "S"
	symbolGoal     = "G"
)

// Fprint writes the board with the path overlaid, one space separated symbol
// per cell and one row per line. Volumes print as one section per depth
// layer.
func Fprint(w io.Writer, g *grid_world.Grid, path []grid_world.Coord, start, goal grid_world.Coord) {
	onPath := make(map[grid_world.Coord]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	symbol := func(c grid_world.Coord) string {
		switch {
		case c == start:
			return symbolStart
		case c == goal:
			return symbolGoal
		case onPath[c]:
			return symbolPath
		case g.Walkable(c):
			return symbolWalkable
		}
		return symbolObstacle
	}

	ext := g.Extent()
	if g.Dims() == 2 {
		printSheet(w, ext[0], ext[1], func(x, y int) string {
			return symbol(grid_world.XY(x, y))
		})
		return
	}

	for x := 0; x < ext[0]; x++ {
		fmt.Fprintf(w, "x=%d\n", x)
		layer := x
		printSheet(w, ext[1], ext[2], func(y, z int) string {
			return symbol(grid_world.XYZ(layer, y, z))
		})
	}
}

func printSheet(w io.Writer, rows, cols int, symbol func(r, c int) string) {
	line := make([]string, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			line[c] = symbol(r, c)
		}
		fmt.Fprintln(w, strings.Join(line, " "))
	}
}
