package visualization

import (
	"io"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/grid_world"

	"github.com/fogleman/gg"
)

const (
	cellPx      = 24
	panelGutter = 8
)

// WritePNG draws the finished search as a png: the board cells, the explored
// and frontier regions of the final snapshot, the path, and the endpoints.
// Volumes render as a row of per-layer panels.
func WritePNG(w io.Writer, g *grid_world.Grid, res *astar.Result, start, goal grid_world.Coord) error {
	return render(g, res, start, goal).EncodePNG(w)
}

// SavePNG is WritePNG to a file path.
func SavePNG(path string, g *grid_world.Grid, res *astar.Result, start, goal grid_world.Coord) error {
	return render(g, res, start, goal).SavePNG(path)
}

func render(g *grid_world.Grid, res *astar.Result, start, goal grid_world.Coord) *gg.Context {
	marks := newMarks(res)
	ext := g.Extent()

	if g.Dims() == 2 {
		dc := gg.NewContext(ext[1]*cellPx, ext[0]*cellPx)
		drawPanel(dc, 0, ext[0], ext[1], func(x, y int) grid_world.Coord {
			return grid_world.XY(x, y)
		}, g, marks)
		drawPathLine(dc, res)
		drawEndpoint(dc, 0, start.Y, start.X, Palette.Start)
		drawEndpoint(dc, 0, goal.Y, goal.X, Palette.Goal)
		return dc
	}

	panelW := ext[2] * cellPx
	dc := gg.NewContext(ext[0]*(panelW+panelGutter)-panelGutter, ext[1]*cellPx)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for x := 0; x < ext[0]; x++ {
		layer := x
		offset := float64(x * (panelW + panelGutter))
		drawPanel(dc, offset, ext[1], ext[2], func(y, z int) grid_world.Coord {
			return grid_world.XYZ(layer, y, z)
		}, g, marks)
	}
	drawEndpoint(dc, float64(start.X*(panelW+panelGutter)), start.Z, start.Y, Palette.Start)
	drawEndpoint(dc, float64(goal.X*(panelW+panelGutter)), goal.Z, goal.Y, Palette.Goal)
	return dc
}

// marks indexes the result's final snapshot and path for fill lookups.
type marks struct {
	explored map[grid_world.Coord]bool
	frontier map[grid_world.Coord]bool
	onPath   map[grid_world.Coord]bool
	current  grid_world.Coord
	traced   bool
}

func newMarks(res *astar.Result) *marks {
	m := &marks{
		explored: map[grid_world.Coord]bool{},
		frontier: map[grid_world.Coord]bool{},
		onPath:   map[grid_world.Coord]bool{},
	}
	if res == nil {
		return m
	}
	if n := len(res.Snapshots); n > 0 {
		last := res.Snapshots[n-1]
		for _, c := range last.Visited {
			m.explored[c] = true
		}
		for c := range last.Frontier {
			m.frontier[c] = true
		}
		m.current = last.Current
		m.traced = true
	}
	for _, c := range res.Path {
		m.onPath[c] = true
	}
	return m
}

func (m *marks) fill(c grid_world.Coord, walkable bool) [3]float64 {
	switch {
	case !walkable:
		return Palette.Wall
	case m.onPath[c]:
		return Palette.Path
	case m.traced && c == m.current:
		return Palette.Current
	case m.frontier[c]:
		return Palette.Frontier
	case m.explored[c]:
		return Palette.Explored
	}
	return Palette.Empty
}

// drawPanel fills one rows-by-cols sheet of cells starting at the given
// horizontal pixel offset.
func drawPanel(dc *gg.Context, offset float64, rows, cols int, at func(r, c int) grid_world.Coord, g *grid_world.Grid, m *marks) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			coord := at(r, c)
			rgb := m.fill(coord, g.Walkable(coord))
			dc.SetRGB(rgb[0], rgb[1], rgb[2])
			dc.DrawRectangle(offset+float64(c*cellPx), float64(r*cellPx), cellPx, cellPx)
			dc.Fill()
		}
	}
}

// drawPathLine traces the path through the cell centers. Only planar plots
// get the line; a volume's path hops between panels.
func drawPathLine(dc *gg.Context, res *astar.Result) {
	if res == nil || len(res.Path) < 2 || res.Path[0].Arity() != 2 {
		return
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(2)
	dc.MoveTo(center(res.Path[0].Y), center(res.Path[0].X))
	for _, c := range res.Path[1:] {
		dc.LineTo(center(c.Y), center(c.X))
	}
	dc.Stroke()
}

func drawEndpoint(dc *gg.Context, offset float64, col, row int, rgb [3]float64) {
	dc.SetRGB(rgb[0], rgb[1], rgb[2])
	dc.DrawCircle(offset+center(col), center(row), cellPx/3)
	dc.Fill()
}

func center(i int) float64 {
	return float64(i*cellPx) + cellPx/2
}
