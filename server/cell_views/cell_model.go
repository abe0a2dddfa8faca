// Package cell_views converts finished searches into the flat cell models
// the page views template over, and implements the views themselves: an svg
// board and a numeric readout.
package cell_views

import (
	"fmt"
	"strconv"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/grid_world"
	"github.com/g2mo/A-star-pathfinding/visualization"
)

// Rendered cell sizes in pixels. Volumes draw more columns, so their cells
// shrink.
const (
	cellDimPlanar = 28
	cellDimVolume = 16
)

// Moment is the data model of one replay instant: a finished search plus a
// cursor into its snapshot sequence.
type Moment struct {
	Grid   *grid_world.Grid
	Result *astar.Result
	Start  grid_world.Coord
	Goal   grid_world.Coord
	// Index selects the snapshot on display.
	Index int
	// ShowPath marks the terminal phase, with the path painted over the
	// explored board.
	ShowPath bool
	// Learning labels frontier cells with their f scores.
	Learning bool
}

// Cell is one board rectangle: its sheet position and svg-ready fill and
// label values.
type Cell struct {
	X, Y  int
	Fill  string
	Label string
}

// Frame is one animation step prepared for the views: the whole board plus
// the readout values. Frames are self-contained, so applying only the latest
// one always yields a consistent page.
type Frame struct {
	// Cells is the row-major board sheet; a volume's layers sit side by
	// side on it.
	Cells   [][]Cell
	CellDim int
	// Step is the 1-based evaluation on display, out of Total recorded.
	Step  int
	Total int
	// Current names the coordinate being expanded, scored g/h/f.
	Current string
	G, H, F int
	// FrontierSize counts the discovered, unexpanded cells on display.
	FrontierSize int
	Status       string
	// Evaluated and MaxFrontier summarize the whole run.
	Evaluated   uint64
	MaxFrontier uint64
}

// Convert renders a moment into a frame; it is the conversion handed to the
// view builder.
func Convert(m Moment) Frame {
	sheet := baseSheet(m.Grid)
	frame := Frame{
		Cells:       sheet,
		CellDim:     cellDim(m.Grid),
		Total:       len(m.Result.Snapshots),
		Evaluated:   m.Result.NodesEvaluated,
		MaxFrontier: m.Result.MaxFrontierSize,
		Status:      "searching",
	}

	if m.Index >= 0 && m.Index < len(m.Result.Snapshots) {
		snap := m.Result.Snapshots[m.Index]
		frame.Step = m.Index + 1
		frame.Current = snap.Current.String()
		score := snap.Frontier[snap.Current]
		frame.G, frame.H, frame.F = score.G, score.H, score.F
		frame.FrontierSize = len(snap.Frontier)
		paintSnapshot(sheet, m, snap)
	}

	if m.ShowPath {
		if m.Result.Path != nil {
			frame.Status = fmt.Sprintf("shortest path length %d", len(m.Result.Path))
		} else {
			frame.Status = "no path exists"
		}
		for _, c := range m.Result.Path {
			paint(sheet, m.Grid, c, visualization.Palette.Path, "")
		}
	}

	// Endpoints paint last so they stay visible through every phase.
	paint(sheet, m.Grid, m.Start, visualization.Palette.Start, "")
	paint(sheet, m.Grid, m.Goal, visualization.Palette.Goal, "")
	return frame
}

func cellDim(g *grid_world.Grid) int {
	if g.Dims() == 3 {
		return cellDimVolume
	}
	return cellDimPlanar
}

// baseSheet lays the grid out as rows of cells filled with their occupancy
// color. A volume of extent [D, H, W] becomes an H by D*W sheet, one W-wide
// panel per layer.
func baseSheet(g *grid_world.Grid) [][]Cell {
	ext := g.Extent()
	rows, cols := ext[0], ext[1]
	if g.Dims() == 3 {
		rows, cols = ext[1], ext[0]*ext[2]
	}

	sheet := make([][]Cell, rows)
	for row := range sheet {
		sheet[row] = make([]Cell, cols)
		for col := range sheet[row] {
			fill := visualization.Palette.Wall
			if g.Walkable(coordAt(g, row, col)) {
				fill = visualization.Palette.Empty
			}
			sheet[row][col] = Cell{X: col, Y: row, Fill: visualization.CSS(fill)}
		}
	}
	return sheet
}

func paintSnapshot(sheet [][]Cell, m Moment, snap astar.Snapshot) {
	for _, c := range snap.Visited {
		paint(sheet, m.Grid, c, visualization.Palette.Explored, "")
	}
	for c, score := range snap.Frontier {
		label := ""
		if m.Learning {
			label = strconv.Itoa(score.F)
		}
		paint(sheet, m.Grid, c, visualization.Palette.Frontier, label)
	}

	label := ""
	if m.Learning {
		label = strconv.Itoa(snap.Frontier[snap.Current].F)
	}
	paint(sheet, m.Grid, snap.Current, visualization.Palette.Current, label)
}

func paint(sheet [][]Cell, g *grid_world.Grid, c grid_world.Coord, fill [3]float64, label string) {
	row, col := position(g, c)
	sheet[row][col].Fill = visualization.CSS(fill)
	sheet[row][col].Label = label
}

// position maps a grid coordinate to its sheet row and column.
func position(g *grid_world.Grid, c grid_world.Coord) (row, col int) {
	if g.Dims() == 3 {
		return c.Y, c.X*g.Extent()[2] + c.Z
	}
	return c.X, c.Y
}

// coordAt inverts position.
func coordAt(g *grid_world.Grid, row, col int) grid_world.Coord {
	if g.Dims() == 3 {
		width := g.Extent()[2]
		return grid_world.XYZ(col/width, row, col%width)
	}
	return grid_world.XY(row, col)
}
